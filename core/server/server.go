package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"counsel-api/core/cache"
	"counsel-api/core/config"
	"counsel-api/core/database"
	"counsel-api/core/logger"
	"counsel-api/core/middleware"
	"counsel-api/core/queue"
	"counsel-api/modules/auth"
	"counsel-api/modules/availability"
	"counsel-api/modules/booking"
	"counsel-api/modules/calendar"
	"counsel-api/modules/meeting"
	"counsel-api/modules/notification"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Run boots the API server and the background worker, and blocks until a
// shutdown signal arrives.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.App.LogLevel)
	logger.Info("Starting server", "app", cfg.App.Name, "env", cfg.App.Env)

	db, err := database.InitDB(database.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
	})
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}

	redisCache, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		return fmt.Errorf("init redis: %w", err)
	}

	queueClient := queue.NewClient(cfg.Redis)
	defer queueClient.Close()
	worker, mux := queue.NewServer(cfg.Redis)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.RequestID())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	mw := middleware.NewMiddleware()

	// Wiring order follows the dependency chain: auth feeds provider calls,
	// calendar feeds availability, everything feeds booking.
	tokenService := auth.Init(e, redisCache)
	calendarService := calendar.Init(e, &db, mw)
	availabilityService := availability.Init(e, &db, calendarService, mw)
	meetingProvider := meeting.Init(e, tokenService)
	notificationService := notification.Init(e, &db, queueClient, mux, mw)
	booking.Init(e, availabilityService, meetingProvider, calendarService, notificationService, tokenService, mw)

	errCh := make(chan error, 2)
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()
	go func() {
		if err := worker.Run(mux); err != nil {
			errCh <- fmt.Errorf("worker: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	worker.Shutdown()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
		return err
	}

	logger.Info("Server stopped")
	return nil
}
