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

	"github.com/cmlabs-hris/leave-calendar-go/internal/config"
	"github.com/cmlabs-hris/leave-calendar-go/internal/domain/calendar"
	appHTTP "github.com/cmlabs-hris/leave-calendar-go/internal/handler/http"
	"github.com/cmlabs-hris/leave-calendar-go/internal/pkg/cron"
	"github.com/cmlabs-hris/leave-calendar-go/internal/pkg/database"
	"github.com/cmlabs-hris/leave-calendar-go/internal/pkg/sse"
	"github.com/cmlabs-hris/leave-calendar-go/internal/repository/hrapi"
	"github.com/cmlabs-hris/leave-calendar-go/internal/repository/postgresql"
	calendarService "github.com/cmlabs-hris/leave-calendar-go/internal/service/calendar"
	"github.com/go-chi/httplog/v3"
)

const version = "v1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "leave-calendar"),
		slog.String("version", version),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	var (
		lines   calendar.TextLineSource
		records calendar.RecordSource
	)

	if cfg.HRAPI.BaseURL != "" {
		client := hrapi.NewClient(hrapi.Config{
			BaseURL:     cfg.HRAPI.BaseURL,
			APIKey:      cfg.HRAPI.APIKey,
			EmployeeID:  cfg.HRAPI.EmployeeID,
			PTOPagePath: cfg.HRAPI.PTOPagePath,
			Timeout:     cfg.HRAPI.Timeout,
		})
		lines = client
		records = client
		slog.Info("HR API source enabled", "base_url", cfg.HRAPI.BaseURL)
	}

	if cfg.Database.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{})
		cancel()
		if err != nil {
			slog.Error("Error connecting to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		records = postgresql.NewLeaveEventRepository(db, cfg.Database.EmployeeID)
		slog.Info("HRIS database source enabled", "host", cfg.Database.Host, "name", cfg.Database.Name)
	}

	if lines == nil && records == nil {
		slog.Warn("No leave data source configured; every year renders as empty")
	}

	defaultLocale, _ := calendar.ParseLocale(cfg.Calendar.DefaultLocale)

	hub := sse.NewHub()
	calendarSvc := calendarService.NewCalendarService(
		calendarService.NewYearLoader(lines, records),
		hub,
		calendarService.Config{
			DefaultLocale: defaultLocale,
			SessionTTL:    cfg.Calendar.SessionTTL,
			FetchTimeout:  cfg.Calendar.FetchTimeout,
		},
	)

	scheduler := cron.NewScheduler()
	if err := cron.NewSessionJobs(calendarSvc).RegisterJobs(scheduler, cfg.Calendar.SessionSweepInterval); err != nil {
		slog.Error("Error registering cron jobs", "error", err)
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()

	calendarHandler := appHTTP.NewCalendarHandler(calendarSvc, defaultLocale)
	router := appHTTP.NewRouter(logger, appHTTP.RouterConfig{
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
		DefaultLocale:  defaultLocale,
	}, calendarHandler)

	// No WriteTimeout: session streams stay open.
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	server.RegisterOnShutdown(hub.CloseAll)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			slog.Error("Server error", "error", err)
		}
	case <-ctx.Done():
		slog.Info("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
}
