package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	adapters "github.com/yourname/squeezer/internal/usecase/submission/adapters/service"
	"github.com/yourname/squeezer/pkg/compressclient"
)

func newPingCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the compression service is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rep := adapters.NewHealthAdapter(compressclient.New(root.cfg.RequestTimeout)).Check(cmd.Context(), root.cfg.APIURL)
			if !rep.OK {
				return rep.Err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s ok (%s)\n", rep.BaseURL, rep.Latency.Round(time.Millisecond))
			return nil
		},
	}
}
