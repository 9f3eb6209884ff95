package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yourname/squeezer/internal/app/webui"
	"github.com/yourname/squeezer/internal/logger"
	adapters "github.com/yourname/squeezer/internal/usecase/submission/adapters/service"
)

func newUICmd(root *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Serve the web form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = root.cfg.UIAddr
			}
			return runUI(cmd.Context(), root, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default ui_addr)")

	return cmd
}

func runUI(ctx context.Context, root *rootOptions, addr string) error {
	cfg := root.cfg
	cl := buildClient(cfg, cfg.DownloadDir)
	defer cl.ctrl.Close()

	handler, _, err := webui.New(webui.Config{
		Controller:     cl.ctrl,
		Artifacts:      cl.store,
		DownloadName:   cfg.DownloadName,
		MaxUploadBytes: cfg.MaxUploadBytes,
		Logger:         logger.L,
	})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if rep := adapters.NewHealthAdapter(nil).Check(ctx, cfg.APIURL); rep.OK {
		logger.Info("compression service ready", slog.String("api_url", cfg.APIURL), slog.Duration("latency", rep.Latency))
	} else {
		logger.Warn("compression service unavailable", slog.String("api_url", cfg.APIURL), slog.Any("error", rep.Err))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("UI listening", slog.String("addr", addr), slog.String("api_url", cfg.APIURL))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	// Сценарий graceful shutdown при получении SIGTERM/SIGINT.
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("UI shutdown error", slog.Any("error", err))
			return err
		}
		return nil
	})

	return g.Wait()
}
