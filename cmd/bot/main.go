package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/infra/config"
	idb "homework_status_bot/internal/infra/database"
	"homework_status_bot/internal/infra/httpapi"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

func main() {
	fmt.Println("Homework Status Bot starting...")

	cfg, err := config.Load()
	if err != nil {
		// The logger is not configured yet; use a default one so the failure is visible.
		logrus.New().WithError(err).Fatal("Could not load application configuration")
	}

	log := logger.New(cfg.LogLevel, cfg.Environment)
	mainLogger := logger.Component(log, "main")
	mainLogger.WithFields(logrus.Fields{
		"environment":  cfg.Environment,
		"chat_id":      cfg.TelegramChatID,
		"schedule":     cfg.PollSchedule,
		"dedup_mode":   cfg.DedupMode,
		"process_all":  cfg.ProcessAllHomeworks,
		"state_driver": cfg.StateDriver,
	}).Info("Configuration loaded")

	schedule, err := scheduler.Parse(cfg.PollSchedule)
	if err != nil {
		mainLogger.WithError(err).WithField("fallback", config.DefaultPollSchedule).Error("Invalid poll schedule")
		schedule, _ = scheduler.Parse(config.DefaultPollSchedule)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize checkpoint storage
	store := idb.OpenWithFallback(ctx, cfg.StateDriver, cfg.StateDSN, logger.Component(log, "state"))
	defer store.Close()

	// Initialize Telegram Bot
	bot, online := telegram.NewBot(telegram.BotSettings{
		Token:    cfg.TelegramToken,
		Commands: cfg.BotCommandsEnabled,
	}, logger.Component(log, "telegram"))

	notifier := app.NewNotifier(
		telegram.NewTelebotAdapter(bot),
		cfg.TelegramChatID,
		rate.NewLimiter(rate.Limit(cfg.TelegramRatePerSec), 1),
		logger.Component(log, "notifier"),
	)

	apiClient := practicum.NewClient(
		cfg.PracticumEndpoint,
		cfg.PracticumToken,
		&http.Client{Timeout: cfg.HTTPTimeout},
		logger.Component(log, "practicum"),
	)

	poller := app.NewPoller(apiClient, notifier, store, logger.Component(log, "poller"), app.PollerOptions{
		ProcessAllHomeworks: cfg.ProcessAllHomeworks,
		DedupMode:           app.DedupMode(cfg.DedupMode),
	})
	poller.Restore(ctx)

	if online {
		telegram.RegisterBotCommands(bot, cfg.TelegramChatID, poller, logger.Component(log, "telegram"))
		go bot.Start()
		defer bot.Stop()
		mainLogger.Info("Bot command handlers registered.")
	}

	if cfg.StatusAddr != "" {
		go func() {
			if err := httpapi.Serve(ctx, cfg.StatusAddr, poller, logger.Component(log, "httpapi")); err != nil {
				mainLogger.WithError(err).Error("Status server failed")
			}
		}()
	}

	mainLogger.Info("Application setup complete. Polling starts now.")
	scheduler.NewPollScheduler(schedule, poller.RunOnce, logger.Component(log, "scheduler")).Run(ctx)

	mainLogger.Info("Application shut down gracefully.")
}
