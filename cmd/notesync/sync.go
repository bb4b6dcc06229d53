// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-note-sync/internal/client"
	"github.com/MKhiriev/go-note-sync/internal/tui"
	"github.com/MKhiriev/go-note-sync/models"
)

func (c *cli) syncCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one sync pass and print its result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.clientConfig()
			if err != nil {
				return err
			}

			log, err := c.logger(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
			defer stop()

			app, err := client.NewApp(ctx, cfg, client.Options{BuildInfo: c.info}, log)
			if err != nil {
				return err
			}
			defer app.Close()

			run := func(ctx context.Context) (models.SyncResult, error) {
				return app.SyncOnce(ctx, models.TriggerManual)
			}

			var result models.SyncResult
			if !plain && tui.IsTerminal(os.Stdout) {
				result, err = tui.RunSync(ctx, run, os.Stdin, os.Stdout)
			} else {
				ctx, stopInterrupt := signal.NotifyContext(ctx, os.Interrupt)
				defer stopInterrupt()
				result, err = run(ctx)
			}

			if result.Status != "" {
				fmt.Fprintln(cmd.OutOrStdout(), tui.RenderSyncResult(result))
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Print the result without the progress spinner")
	return cmd
}
