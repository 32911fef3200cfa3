package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var motivationalMessages = []string{
	"💪 Keep going, Shadow Hunter! You're doing great!",
	"🔥 Push through it, you're getting stronger!",
	"🏋️ Stay focused, you're almost there!",
	"⏳ Don't stop now, you're crushing it!",
	"💥 Just a bit more, you've got this!",
}

// TimerConfig tunes the exercise timer.
type TimerConfig struct {
	MaxSeconds  int
	UpdateEvery int // seconds between progress updates
	MaxPerChat  int
	// Unit is the length of one timer second. Zero means time.Second.
	Unit time.Duration
}

// Timer is a running countdown.
type Timer struct {
	ID        uuid.UUID
	ChatID    int64
	Task      string
	Seconds   int
	StartedAt time.Time

	cancel context.CancelFunc
}

// TimerService runs exercise countdowns in the background and reports
// progress to the chat through a Notifier.
type TimerService struct {
	cfg      TimerConfig
	notifier Notifier
	logger   *zap.Logger

	rndMu sync.Mutex
	rnd   *rand.Rand

	mu     sync.Mutex
	timers map[int64]map[uuid.UUID]*Timer
	wg     sync.WaitGroup
}

// NewTimerService creates a timer service. rnd picks motivational messages.
func NewTimerService(cfg TimerConfig, notifier Notifier, rnd *rand.Rand, logger *zap.Logger) *TimerService {
	if cfg.Unit <= 0 {
		cfg.Unit = time.Second
	}
	if cfg.UpdateEvery <= 0 {
		cfg.UpdateEvery = 10
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &TimerService{
		cfg:      cfg,
		notifier: notifier,
		rnd:      rnd,
		logger:   logger,
		timers:   make(map[int64]map[uuid.UUID]*Timer),
	}
}

// Start launches a countdown for task and returns immediately.
// The countdown stops early when ctx is cancelled or Cancel is called.
func (s *TimerService) Start(ctx context.Context, chatID int64, task string, seconds int) (*Timer, error) {
	task = strings.TrimSpace(task)
	if task == "" || seconds <= 0 || (s.cfg.MaxSeconds > 0 && seconds > s.cfg.MaxSeconds) {
		return nil, ErrInvalidNumericInput
	}

	runCtx, cancel := context.WithCancel(ctx)
	t := &Timer{
		ID:        uuid.New(),
		ChatID:    chatID,
		Task:      task,
		Seconds:   seconds,
		StartedAt: time.Now(),
		cancel:    cancel,
	}

	s.mu.Lock()
	running := s.timers[chatID]
	if s.cfg.MaxPerChat > 0 && len(running) >= s.cfg.MaxPerChat {
		s.mu.Unlock()
		cancel()
		return nil, ErrTimerLimit
	}
	if running == nil {
		running = make(map[uuid.UUID]*Timer)
		s.timers[chatID] = running
	}
	running[t.ID] = t
	s.wg.Add(1)
	s.mu.Unlock()

	s.logger.Info("timer started",
		zap.Int64("chat_id", chatID),
		zap.String("timer_id", t.ID.String()),
		zap.String("task", task),
		zap.Int("seconds", seconds),
	)

	go s.run(runCtx, t)

	return t, nil
}

// Cancel stops every running timer of the chat and reports how many were stopped.
func (s *TimerService) Cancel(chatID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	running := s.timers[chatID]
	for _, t := range running {
		t.cancel()
	}
	return len(running)
}

// Active returns the number of running timers of the chat.
func (s *TimerService) Active(chatID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.timers[chatID])
}

// Wait blocks until every started timer has finished.
func (s *TimerService) Wait() {
	s.wg.Wait()
}

func (s *TimerService) run(ctx context.Context, t *Timer) {
	defer s.wg.Done()
	defer s.remove(t)
	defer t.cancel()

	ticker := time.NewTicker(s.cfg.Unit)
	defer ticker.Stop()

	for left := t.Seconds; left > 0; {
		select {
		case <-ctx.Done():
			s.logger.Info("timer cancelled",
				zap.String("timer_id", t.ID.String()),
				zap.Int("seconds_left", left),
			)
			return
		case <-ticker.C:
			left--
		}

		if left > 0 && left%s.cfg.UpdateEvery == 0 {
			s.notify(ctx, t.ChatID, fmt.Sprintf("⏳ %d seconds remaining for %s", left, t.Task))
			s.notify(ctx, t.ChatID, s.motivation())
		}
	}

	s.notify(ctx, t.ChatID, fmt.Sprintf("✅ Time's up for: %s", t.Task))
	s.logger.Info("timer finished", zap.String("timer_id", t.ID.String()))
}

func (s *TimerService) notify(ctx context.Context, chatID int64, text string) {
	if err := s.notifier.Notify(ctx, chatID, text); err != nil {
		s.logger.Warn("timer notification failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (s *TimerService) motivation() string {
	s.rndMu.Lock()
	defer s.rndMu.Unlock()

	return motivationalMessages[s.rnd.Intn(len(motivationalMessages))]
}

func (s *TimerService) remove(t *Timer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	running := s.timers[t.ChatID]
	delete(running, t.ID)
	if len(running) == 0 {
		delete(s.timers, t.ChatID)
	}
}
