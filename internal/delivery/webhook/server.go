package webhook

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	updatesBuffer   = 100
	shutdownTimeout = 5 * time.Second
)

// Path returns the webhook route for a bot token. The token in the path keeps
// strangers from posting fake updates.
func Path(token string) string {
	return "/webhook/" + token
}

// Server receives Telegram updates over HTTPS and answers health checks.
type Server struct {
	srv     *http.Server
	token   string
	updates chan tgbotapi.Update
	logger  *zap.Logger
}

// NewServer creates a server listening on addr. debug enables gin's debug mode.
func NewServer(addr, token string, debug bool, logger *zap.Logger) *Server {
	if debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		token:   token,
		updates: make(chan tgbotapi.Update, updatesBuffer),
		logger:  logger,
	}

	r := gin.New()
	r.Use(requestLogger(logger), recovery(logger))

	r.GET("/", s.health)
	r.POST("/webhook/:token", s.receive)

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Updates returns the channel of received updates.
func (s *Server) Updates() <-chan tgbotapi.Update {
	return s.updates
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server started", zap.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("http server stopped")
	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) receive(c *gin.Context) {
	if subtle.ConstantTimeCompare([]byte(c.Param("token")), []byte(s.token)) != 1 {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		s.logger.Warn("invalid webhook payload", zap.Error(err))
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	select {
	case s.updates <- update:
		c.Status(http.StatusOK)
	case <-c.Request.Context().Done():
		// Telegram retries updates that were not acknowledged.
		c.AbortWithStatus(http.StatusServiceUnavailable)
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// The webhook path carries the bot token, so only the route is logged.
		logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("http handler panic", zap.Any("panic", recovered))
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}
