package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/astritdwi/smartbudget/internal/cli"
	"github.com/astritdwi/smartbudget/internal/core"
	apphttp "github.com/astritdwi/smartbudget/internal/http"
	"github.com/astritdwi/smartbudget/internal/services"
)

// insightsInterval is how often the background recheck logs the
// end-of-month projection.
const insightsInterval = time.Hour

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	store := cli.InitStore(logger, cfg)
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Store close error", "error", err)
		}
	}()

	budget := services.NewBudgetService(store, time.Now)
	budget.Load(context.Background())
	budget.SetTrendWindow(cfg.TrendWindowDays)
	settings := services.NewSettingsService(store, cfg.DefaultTheme, cfg.DefaultLanguage)
	suggest := services.NewSuggestionService(cfg.SuggestDelay, nil)

	srv := apphttp.NewServer(":"+cfg.Port, budget, settings, suggest)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting smartbudget server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(insightsInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				ins := budget.Insights(core.Money{})
				logger.Info("Periodic insight recheck",
					"status", string(ins.Status.Status),
					"end_balance", ins.Prediction.EndBalance,
					"days_remaining", ins.Prediction.DaysRemaining)
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
