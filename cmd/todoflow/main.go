package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"todoflow/internal/bus"
	"todoflow/internal/config"
	"todoflow/internal/notify"
	"todoflow/internal/repository"
	"todoflow/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("db handle: %v", err)
	}
	defer sqlDB.Close()

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	convRepo := repository.NewConversationRepository(db)

	broker := bus.NewBroker(logger.With("component", "bus"))

	regenerator := service.NewRegenerator(taskRepo, logger.With("component", "regenerator"))
	broker.Subscribe(bus.TopicTaskEvents, regenerator.HandleTaskEvent)

	notifier := service.NewNotifier(convRepo, logger.With("component", "notifier"))
	broker.Subscribe(bus.TopicReminders, notifier.HandleReminder)

	if cfg.TelegramToken != "" {
		api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
		if err != nil {
			log.Fatalf("telegram: %v", err)
		}
		telegram := notify.NewTelegram(api, userRepo, logger.With("component", "telegram"))
		broker.Subscribe(bus.TopicReminders, telegram.HandleReminder)
	}

	sweeper := service.NewSweeper(taskRepo, broker, logger.With("component", "sweeper"))

	scheduler := service.NewSchedulerService(time.UTC)
	if _, err := scheduler.ScheduleInterval(cfg.SweepInterval, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := sweeper.RunSweep(jobCtx, time.Now().UTC()); err != nil {
			logger.Error("sweep failed", "error", err)
		}
	}); err != nil {
		log.Fatalf("schedule sweep: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	logger.Info("todoflow pipeline started", "sweep_interval", cfg.SweepInterval.String())
	<-ctx.Done()
	logger.Info("shutdown complete")
}
