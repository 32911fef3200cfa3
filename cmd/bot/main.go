package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/shadowfit-bot/internal/config"
	"github.com/aliskhannn/shadowfit-bot/internal/delivery/telegram"
	"github.com/aliskhannn/shadowfit-bot/internal/delivery/webhook"
	"github.com/aliskhannn/shadowfit-bot/internal/domain/entities"
	"github.com/aliskhannn/shadowfit-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/shadowfit-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/shadowfit-bot/internal/infra/redis"
	"github.com/aliskhannn/shadowfit-bot/internal/logger"
	"github.com/aliskhannn/shadowfit-bot/internal/repository"
	"github.com/aliskhannn/shadowfit-bot/internal/service"
	"github.com/aliskhannn/shadowfit-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	if err := run(cfg, lg); err != nil {
		lg.Fatal("bot stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, lg *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("parse timezone: %w", err)
	}
	calendar := entities.NewCalendar(loc, cfg.Day.ResetHour)

	store, closeStore, err := openStore(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer closeStore()

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}
	bot.Debug = cfg.Telegram.Debug
	lg.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(telegram.Commands()...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	outbox := telegram.NewOutbox(bot, cfg.Telegram.MessagesPerSecond, cfg.Telegram.Burst)
	reminderStorage := storage.NewReminderStorage()
	notifier := telegram.NewNotifier(outbox, reminderStorage, lg.Named("notifier"))

	progressService := service.NewProgressionService(store, calendar, lg.Named("progress"))
	timerService := service.NewTimerService(service.TimerConfig{
		MaxSeconds:  cfg.Timer.MaxSeconds,
		UpdateEvery: cfg.Timer.UpdateEvery,
		MaxPerChat:  cfg.Timer.MaxPerChat,
		Unit:        time.Second,
	}, notifier, rand.New(rand.NewSource(time.Now().UnixNano())), lg.Named("timer"))
	reminderService := service.NewReminderService(store, calendar, cfg.Reminders.Schedule, lg.Named("reminders"))
	reminderService.SetNotifier(notifier)

	handler := telegram.NewHandler(outbox, lg.Named("telegram"), progressService, timerService, reminderStorage, telegram.Options{
		LeaderboardSize: cfg.Leaderboard.Size,
	})

	server := webhook.NewServer(cfg.Telegram.ListenAddr, cfg.Telegram.Token, cfg.Telegram.Debug, lg.Named("http"))

	updates, err := subscribe(bot, cfg, server, lg)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return handler.Run(gctx, updates)
	})
	g.Go(func() error {
		return server.Run(gctx)
	})
	if cfg.Reminders.Enabled {
		g.Go(func() error {
			return reminderService.Start(gctx)
		})
	}

	err = g.Wait()
	if cfg.Telegram.Mode == config.ModePolling {
		bot.StopReceivingUpdates()
	}
	timerService.Wait()
	lg.Info("shutdown complete")

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// subscribe starts long polling or registers the webhook, depending on the mode.
func subscribe(bot *tgbotapi.BotAPI, cfg *config.Config, server *webhook.Server, lg *zap.Logger) (<-chan tgbotapi.Update, error) {
	if cfg.Telegram.Mode == config.ModeWebhook {
		wh, err := tgbotapi.NewWebhook(cfg.Telegram.WebhookURL + webhook.Path(cfg.Telegram.Token))
		if err != nil {
			return nil, fmt.Errorf("build webhook: %w", err)
		}
		if _, err := bot.Request(wh); err != nil {
			return nil, fmt.Errorf("set webhook: %w", err)
		}
		lg.Info("receiving updates via webhook", zap.String("listen_addr", cfg.Telegram.ListenAddr))
		return server.Updates(), nil
	}

	// A webhook left over from a previous deployment blocks getUpdates.
	if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		lg.Warn("failed to delete webhook", zap.Error(err))
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = cfg.Telegram.Timeout
	lg.Info("receiving updates via long polling")
	return bot.GetUpdatesChan(u), nil
}

// openStore builds the configured progress store. The returned func releases
// its connections.
func openStore(ctx context.Context, cfg *config.Config, lg *zap.Logger) (storage.Store, func(), error) {
	var (
		store   storage.Store
		closeFn = func() {}
	)

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		store = storage.NewMemoryStore()

	case config.DriverFile:
		repo, err := repository.NewFileRepository(cfg.Storage.FilePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open file store: %w", err)
		}
		store = repo

	case config.DriverPostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, nil, err
		}
		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := postgres.Migrate(ctx, postgres.NewTransactor(pool)); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		store = pgrepo.NewProgressRepository(pool)
		closeFn = pool.Close

	case config.DriverRedis:
		client, err := redis.NewClient(ctx, redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		store = redis.NewProgressRepository(client, cfg.Redis.KeyPrefix)
		closeFn = func() { _ = client.Close() }

	default:
		return nil, nil, fmt.Errorf("%w: unknown storage driver %q", config.ErrInvalidConfig, cfg.Storage.Driver)
	}

	lg.Info("progress store ready", zap.String("driver", cfg.Storage.Driver))

	if cfg.Storage.CacheSize > 0 {
		cached, err := storage.NewCachedStore(store, cfg.Storage.CacheSize)
		if err != nil {
			closeFn()
			return nil, nil, err
		}
		return cached, closeFn, nil
	}
	return store, closeFn, nil
}
