package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saulo-duarte/quizmaster/internal/config"
	"github.com/saulo-duarte/quizmaster/internal/container"
	"github.com/saulo-duarte/quizmaster/internal/router"
)

func main() {
	c := container.New()
	cfg := config.Get()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.New(c.RouterConfig()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		config.Logger.WithField("port", cfg.Port).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Logger.WithError(err).Fatal("HTTP server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		config.Logger.WithError(err).Error("Graceful shutdown failed")
	}
	config.Logger.Info("HTTP server stopped")
}
