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

	"github.com/yourname/squeezer/internal/app/compresshttp"
	"github.com/yourname/squeezer/internal/config"
	"github.com/yourname/squeezer/internal/logger"
)

// main поднимает сервис сжатия и корректно завершает его по сигналу.
func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	addr := flag.String("addr", "", "listen address (overrides api_addr)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	listen := cfg.APIAddr
	if *addr != "" {
		listen = *addr
	}

	h := compresshttp.New(compresshttp.Config{
		MaxUploadBytes: cfg.MaxUploadBytes,
		Logger:         logger.L,
	})

	server := &http.Server{
		Addr:              listen,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("API shutdown error", slog.Any("error", err))
		}
	}()

	logger.Info("API listening", slog.String("addr", listen), slog.Int64("max_upload_bytes", cfg.MaxUploadBytes))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("API serve", slog.Any("error", err))
		os.Exit(1)
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("API final shutdown error", slog.Any("error", err))
	}
}
