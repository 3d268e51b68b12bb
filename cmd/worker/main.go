package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/osadebe/kobo/internal/config"
	"github.com/osadebe/kobo/internal/database"
	"github.com/osadebe/kobo/internal/recurring"
	recurringStore "github.com/osadebe/kobo/internal/recurring/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(context.Background(), cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	processor := recurring.NewProcessor(recurringStore.New(db))

	run := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		created, err := processor.Run(ctx, time.Now().UTC())
		if err != nil {
			slog.Error("recurring sweep failed", "error", err)
			return
		}

		slog.Info("recurring sweep complete", "created", created)
	}

	// Sweep once on startup so a restarted worker catches up immediately.
	run()

	scheduler := cron.New()

	if _, err := scheduler.AddFunc(cfg.Worker.RecurringSchedule, run); err != nil {
		slog.Error("invalid recurring schedule", "schedule", cfg.Worker.RecurringSchedule, "error", err)
		os.Exit(1)
	}

	scheduler.Start()
	slog.Info("worker started", "schedule", cfg.Worker.RecurringSchedule)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	slog.Info("shutting down", "signal", sig.String())

	// Stop returns a context that is done once running jobs finish.
	<-scheduler.Stop().Done()
}
