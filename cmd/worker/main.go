package main

import (
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	_ "github.com/lib/pq"

	"github.com/m04kA/TheraConnect-BookingService/internal/config"
	notificationRepo "github.com/m04kA/TheraConnect-BookingService/internal/infra/storage/notification"
	"github.com/m04kA/TheraConnect-BookingService/internal/integrations/notifier"
	"github.com/m04kA/TheraConnect-BookingService/pkg/dbmetrics"
	"github.com/m04kA/TheraConnect-BookingService/pkg/logger"
)

// Воркер доставки уведомлений: читает очередь asynq,
// сохраняет in-app уведомления и дублирует их по email
func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting TheraConnect notification worker...")

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	store := notificationRepo.NewRepository(dbmetrics.Wrap(db, nil))
	sender := notifier.NewEmailSender(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName, log)

	concurrency := cfg.Notifications.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: concurrency,
			Queues:      map[string]int{cfg.Notifications.Queue: 1},
		},
	)

	mux := asynq.NewServeMux()
	notifier.NewHandler(store, sender, log).Register(mux)

	if err := srv.Start(mux); err != nil {
		log.Fatal("Failed to start worker: %v", err)
	}
	log.Info("Worker is consuming queue %q (concurrency=%d)", cfg.Notifications.Queue, concurrency)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down worker...")
	srv.Shutdown()
	log.Info("Worker stopped gracefully")
}
