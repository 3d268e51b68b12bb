package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/osadebe/kobo/internal/account"
	accountStore "github.com/osadebe/kobo/internal/account/store"
	"github.com/osadebe/kobo/internal/budget"
	budgetStore "github.com/osadebe/kobo/internal/budget/store"
	"github.com/osadebe/kobo/internal/categorize"
	categorizeStore "github.com/osadebe/kobo/internal/categorize/store"
	"github.com/osadebe/kobo/internal/config"
	"github.com/osadebe/kobo/internal/database"
	koboHttp "github.com/osadebe/kobo/internal/http"
	accountHandler "github.com/osadebe/kobo/internal/http/account"
	budgetHandler "github.com/osadebe/kobo/internal/http/budget"
	categoryHandler "github.com/osadebe/kobo/internal/http/category"
	dashboardHandler "github.com/osadebe/kobo/internal/http/dashboard"
	importHandler "github.com/osadebe/kobo/internal/http/importcsv"
	txHandler "github.com/osadebe/kobo/internal/http/transaction"
	"github.com/osadebe/kobo/internal/importer"
	"github.com/osadebe/kobo/internal/transaction"
	txStore "github.com/osadebe/kobo/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.Auth.JWTSecret == "" {
		slog.Error("JWT_SECRET must be set")
		os.Exit(1)
	}

	db, err := database.New(context.Background(), cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		accountService     = account.NewService(accountStore.New(db))
		transactionService = transaction.NewService(txStore.New(db))
		budgetService      = budget.NewService(budgetStore.New(db), transactionService)
		categorizeService  = categorize.NewService(categorizeStore.New(db))
		importService      = importer.NewService()
	)

	var (
		accountH     = accountHandler.NewHandler(accountService)
		transactionH = txHandler.NewHandler(transactionService)
		budgetH      = budgetHandler.NewHandler(budgetService)
		categoryH    = categoryHandler.NewHandler(categorizeService)
		dashboardH   = dashboardHandler.NewHandler(transactionService)
		importH      = importHandler.NewHandler(importService, transactionService, categorizeService)
	)

	router := koboHttp.New(cfg.Auth.JWTSecret, accountH, transactionH, budgetH, categoryH, dashboardH, importH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
