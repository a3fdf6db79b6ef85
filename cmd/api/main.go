package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/moneymanager/internal/account"
	accountStore "github.com/MrJamesThe3rd/moneymanager/internal/account/store"
	"github.com/MrJamesThe3rd/moneymanager/internal/category"
	categoryStore "github.com/MrJamesThe3rd/moneymanager/internal/category/store"
	"github.com/MrJamesThe3rd/moneymanager/internal/clock"
	"github.com/MrJamesThe3rd/moneymanager/internal/config"
	"github.com/MrJamesThe3rd/moneymanager/internal/database"
	"github.com/MrJamesThe3rd/moneymanager/internal/export"
	mmHttp "github.com/MrJamesThe3rd/moneymanager/internal/http"
	accountHandler "github.com/MrJamesThe3rd/moneymanager/internal/http/account"
	analyticsHandler "github.com/MrJamesThe3rd/moneymanager/internal/http/analytics"
	categoryHandler "github.com/MrJamesThe3rd/moneymanager/internal/http/category"
	exportHandler "github.com/MrJamesThe3rd/moneymanager/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/moneymanager/internal/http/importer"
	matchingHandler "github.com/MrJamesThe3rd/moneymanager/internal/http/matching"
	txHandler "github.com/MrJamesThe3rd/moneymanager/internal/http/transaction"
	"github.com/MrJamesThe3rd/moneymanager/internal/importer"
	"github.com/MrJamesThe3rd/moneymanager/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/moneymanager/internal/matching/store"
	"github.com/MrJamesThe3rd/moneymanager/internal/report"
	"github.com/MrJamesThe3rd/moneymanager/internal/schedule"
	"github.com/MrJamesThe3rd/moneymanager/internal/telegram"
	"github.com/MrJamesThe3rd/moneymanager/internal/transaction"
	txStore "github.com/MrJamesThe3rd/moneymanager/internal/transaction/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("money manager stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return err
	}

	var (
		transactionService = transaction.NewService(txStore.New(db))
		categoryService    = category.NewService(categoryStore.New(db))
		accountService     = account.NewService(accountStore.New(db))
		matchingService    = matching.NewService(matchingStore.New(db))
		importService      = importer.NewService(loc)
		reportService      = report.NewService(
			transactionService, categoryService, accountService,
			clock.NewReal(), loc,
			report.Options{Product: cfg.App.Name, Owner: cfg.App.Owner},
		)
		bundleService = export.NewService(reportService)
	)

	handlers := mmHttp.Handlers{
		Transactions: txHandler.NewHandler(transactionService, loc),
		Categories:   categoryHandler.NewHandler(categoryService),
		Accounts:     accountHandler.NewHandler(accountService),
		Import:       importHandler.NewHandler(importService, transactionService, matchingService, cfg.Server.MaxUploadBytes),
		Matching:     matchingHandler.NewHandler(matchingService),
		Analytics:    analyticsHandler.NewHandler(reportService),
		Exports:      exportHandler.NewHandler(reportService, bundleService, clock.NewReal()),
	}

	router := mmHttp.New(handlers, mmHttp.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Timeout:        cfg.Server.Timeout,
	})

	bot, err := newBot(cfg, reportService)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "addr", srv.Addr, "time_zone", loc.String())

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving http: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if bot != nil {
		g.Go(func() error { return bot.Run(ctx) })

		if cfg.Schedule.Spec != "" {
			job := schedule.NewMonthlyBudget(reportService, bundleService, bot, cfg.Schedule.ChatID)

			g.Go(func() error { return schedule.Run(ctx, cfg.Schedule.Spec, loc, job) })
		}
	}

	return g.Wait()
}

// newBot connects to the Bot API before anything is served. It returns nil
// when no token is configured.
func newBot(cfg *config.Config, reports telegram.Reporter) (*telegram.Bot, error) {
	if cfg.Telegram.Token == "" {
		if cfg.Schedule.Spec != "" {
			slog.Warn("REPORT_SCHEDULE is set but TELEGRAM_TOKEN is not, scheduled reports are disabled")
		}

		return nil, nil
	}

	api, err := telegram.NewAPI(cfg.Telegram.Token, cfg.Telegram.APIEndpoint, nil)
	if err != nil {
		return nil, err
	}

	if len(cfg.Telegram.AllowedChatIDs) == 0 {
		slog.Warn("TELEGRAM_ALLOWED_CHAT_IDS is empty, the bot will refuse every chat")
	}

	return telegram.NewBot(api, reports, cfg.Telegram.AllowedChatIDs), nil
}
