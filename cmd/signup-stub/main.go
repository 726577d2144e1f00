package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"signup-qa/internal/modules/signupstub"
	"signup-qa/internal/pkg/config"
	"signup-qa/internal/pkg/log"
)

func main() {
	addr := flag.String("addr", config.GetEnvOrDefault("STUB_ADDR", ":8080"), "listen address")
	resendLimit := flag.Int("resend-limit", config.GetIntOrDefault("STUB_RESEND_LIMIT", 0), "per-email resend quota, 0 for the default")
	env := flag.String("env", config.GetEnvOrDefault("ENV", "development"), "environment name")
	flag.Parse()

	level := slog.LevelDebug
	if *env == "production" {
		level = slog.LevelInfo
	}
	log.Init(level, *env)
	logger := log.GetLogger()

	mod := signupstub.New(signupstub.Options{
		ResendLimit: *resendLimit,
		Logger:      logger,
	})

	go func() {
		logger.Info("signup stub listening", log.String("addr", *addr))
		if err := mod.Echo.Start(*addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := mod.Echo.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", err)
	}
	logger.Info("signup stub stopped")
}
