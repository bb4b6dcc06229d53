// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-note-sync/internal/client"
	"github.com/MKhiriev/go-note-sync/internal/config"
	"github.com/MKhiriev/go-note-sync/internal/service"
)

func (c *cli) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the sync daemon",
		Long: `Run the sync daemon until SIGINT or SIGTERM.

The daemon runs a pass at start (unless --sync-on-load=false), repeats it
every --sync-interval, reloads the JSON config file when it changes and
serves the control API when --address is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.clientConfig()
			if err != nil {
				return err
			}

			log, err := c.logger(cfg.Log, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.ErrOrStderr()
			app, err := client.NewApp(ctx, cfg, client.Options{
				LoadConfig: func() (*config.ClientConfig, error) {
					return config.GetClientConfig(c.root.PersistentFlags())
				},
				Notifier: service.NotifierFunc(func(_ context.Context, message string) {
					fmt.Fprintf(out, "%s: %s\n", client.AppName, message)
				}),
				BuildInfo: c.info,
			}, log)
			if err != nil {
				log.Err(err).Msg("init client app error")
				return err
			}
			defer app.Close()

			if err = app.Run(ctx); err != nil {
				log.Err(err).Msg("client run error")
				return err
			}
			return nil
		},
	}
}
