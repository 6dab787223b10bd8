package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"leavely/internal/calendar"
	"leavely/internal/config"
	"leavely/internal/handler"
	"leavely/internal/httpapi"
	"leavely/internal/ics"
	"leavely/internal/repository"
	"leavely/internal/service"
	"leavely/pkg/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logrus.Info("Initializing config...")
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load config")
	}
	cfg.ConfigureLogger()
	logrus.Info("Config initialized...")

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logrus.WithError(err).Fatal("Failed to create database directory")
		}
	}

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		logrus.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatal("Failed to get database instance:", err)
	}

	// WAL lets readers proceed while a write is in flight.
	if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL"); err != nil {
		logrus.Infof("Warning: Failed to enable WAL: %v", err)
	}

	leaveRepo, err := repository.NewGormLeaveRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create leave repository")
	}

	holidayService := service.NewHolidayService(calendar.DefaultTable())
	if cfg.HolidaysFile != "" {
		if _, err := holidayService.LoadFromFile(cfg.HolidaysFile); err != nil {
			logrus.WithError(err).Fatal("Failed to load holidays file")
		}
	}

	formatter := ics.NewFormatter(cfg.CalendarName, cfg.DisplayTimezone)
	leaveService := service.NewLeaveService(leaveRepo, holidayService, formatter, cfg.Location, cfg.WeekStart)

	router := httpapi.NewRouter(httpapi.RouterParams{
		Leaves:     leaveService,
		Holidays:   holidayService,
		CORSOrigin: cfg.CORSOrigin,
		RateLimit:  cfg.RateLimit,
	})

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.Infof("HTTP server listening on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("HTTP server failed")
			stop()
		}
	}()

	if cfg.TelegramEnabled() {
		client, err := telegram.NewClient(cfg.TelegramToken, cfg.TelegramDebug)
		if err != nil {
			logrus.Fatal("Failed to create Telegram client:", err)
		}
		logrus.Infof("Authorized on account %s", client.Bot.Self.UserName)

		botHandler := handler.NewHandler(client.Bot, leaveService, holidayService)
		go botHandler.HandleUpdates(ctx, client.Updates())
		defer client.Stop()
	} else {
		logrus.Info("TELEGRAM_BOT_TOKEN not set, bot disabled")
	}

	logrus.Info("Leavely started. Press Ctrl+C to stop.")
	<-ctx.Done()
	logrus.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Graceful shutdown failed")
	}

	if err := sqlDB.Close(); err != nil {
		logrus.Infof("Error closing database: %v", err)
	}

	logrus.Info("Leavely stopped gracefully")
}
