package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yourname/squeezer/internal/config"
	"github.com/yourname/squeezer/internal/logger"
)

// rootOptions — persistent-флаги, общие для всех подкоманд.
type rootOptions struct {
	configPath string
	apiURL     string
	logLevel   string
	logFormat  string

	cfg *config.Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "squeezer",
		Short:        "Compress images through the squeezer service",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "path to config.yaml (default $CONFIG_PATH or ./config.yaml)")
	pf.StringVar(&opts.apiURL, "api-url", "", "compression service base URL")
	pf.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&opts.logFormat, "log-format", "", "text or json")

	cmd.AddCommand(
		newCompressCmd(opts),
		newUICmd(opts),
		newPingCmd(opts),
	)
	return cmd
}

// load читает конфигурацию и накладывает поверх неё явно заданные флаги.
func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.APIURL = o.apiURL
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Init(cfg.Log.Level, cfg.Log.Format)
	o.cfg = cfg
	return nil
}
