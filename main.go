package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/druktrails/bhutan-tourism-api/api"
	"github.com/druktrails/bhutan-tourism-api/api/handlers"
	"github.com/druktrails/bhutan-tourism-api/api/scheduler"
	"github.com/druktrails/bhutan-tourism-api/config"
	"github.com/druktrails/bhutan-tourism-api/databases"
)

const shutdownTimeout = 20 * time.Second

func main() {
	a := handlers.App{}
	a.Config = *config.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	initCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	err := a.Initialize(initCtx) //initialize database and router
	cancel()
	if err != nil {
		zap.S().Fatalw("failed to initialize", "error", err)
	}

	db := a.Database()
	s := scheduler.NewScheduler(
		databases.NewTourRequestDatabase(db, databases.NewTourDatabase(db)),
		databases.NewSchedulerLockDatabase(db),
		a.Mailer,
		a.Config.AdminNotifyEmail,
		handlers.AdminURL(a.Config.BaseURL, "/tour-requests"),
		a.Config.DigestSchedule,
	)
	if err := s.Start(); err != nil {
		zap.S().Fatalw("failed to start scheduler", "error", err)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   a.Config.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", api.RequestIDHeader},
		ExposedHeaders:   []string{api.RequestIDHeader, "Retry-After"},
		AllowCredentials: false,
		MaxAge:           600,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%v", a.Config.Port),
		Handler:           c.Handler(a.Router),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      a.Config.RequestTimeout + 15*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		zap.S().Infow("bhutan-tourism-api is up and running",
			"port", a.Config.Port,
			"url", a.Config.BaseURL,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Fatalw("server stopped", "error", err)
		}
	}()

	<-ctx.Done()
	zap.S().Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.S().Errorw("failed to shut down http server", "error", err)
	}
	s.Stop()
	if err := a.Close(shutdownCtx); err != nil {
		zap.S().Errorw("failed to disconnect from database", "error", err)
	}
	_ = zap.L().Sync()
}
