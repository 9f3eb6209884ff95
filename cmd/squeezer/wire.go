package main

import (
	"log/slog"

	"github.com/yourname/squeezer/internal/artifact"
	"github.com/yourname/squeezer/internal/config"
	"github.com/yourname/squeezer/internal/download"
	"github.com/yourname/squeezer/internal/logger"
	"github.com/yourname/squeezer/internal/usecase/submission"
	"github.com/yourname/squeezer/pkg/compressclient"
)

// client — собранные компоненты клиентской стороны.
type client struct {
	store *artifact.Store
	ctrl  *submission.Controller
}

func buildClient(cfg *config.Config, downloadDir string) *client {
	store := artifact.NewStore(
		artifact.WithLogger(logger.L),
		artifact.WithRevokeHook(func(id string) {
			logger.Debug("artifact released", slog.String("id", id))
		}),
	)

	ctrl := submission.New(submission.Deps{
		Client:       compressclient.New(cfg.RequestTimeout),
		BaseURL:      cfg.APIURL,
		Store:        store,
		Saver:        download.NewDirSaver(downloadDir),
		DownloadName: cfg.DownloadName,
		Timeout:      cfg.RequestTimeout,
		Logger:       logger.L,
		OnChange: func(s submission.State) {
			logger.Debug("state changed", slog.String("state", s.Name()))
		},
	})

	return &client{store: store, ctrl: ctrl}
}
