// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-note-sync/internal/adapter"
	"github.com/MKhiriev/go-note-sync/internal/tui"
)

var errNoToken = errors.New("the backend token is not set, pass --token or set BACKEND_TOKEN")

func (c *cli) quotaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quota",
		Short: "Show the plan and usage of the backend account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.clientConfig()
			if err != nil {
				return err
			}
			if cfg.Backend.Token == "" {
				return errNoToken
			}

			log, err := c.logger(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			backend, err := adapter.NewBackendAdapter(cfg.Backend, log)
			if err != nil {
				return err
			}

			quota, err := backend.GetQuota(cmd.Context())
			if err != nil {
				return fmt.Errorf("get quota: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderQuota(quota, time.Now()))
			return nil
		},
	}
}
