// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-note-sync/internal/service"
	"github.com/MKhiriev/go-note-sync/internal/tui"
	"github.com/MKhiriev/go-note-sync/internal/utils"
)

var errNoControlAPI = errors.New("the control API address is not set, pass --address or set SERVER_ADDRESS")

func (c *cli) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the state of a running daemon",
		Long:  "Query the control API of a running daemon started with --address.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.structuredConfig()
			if err != nil {
				return err
			}
			if cfg.Server.HTTPAddress == "" {
				return errNoControlAPI
			}

			status, err := fetchStatus(cmd.Context(), utils.NewHTTPClient(), cfg.Server.HTTPAddress, cfg.Server.AuthToken)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderStatus(status))
			return nil
		},
	}
}

// fetchStatus calls GET /api/status of the daemon listening on address. A
// listener bound to all interfaces is reached through the loopback.
func fetchStatus(ctx context.Context, client *utils.HTTPClient, address, token string) (service.Status, error) {
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		return service.Status{}, fmt.Errorf("control API address %q: %w", address, err)
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}

	var (
		status  service.Status
		failure utils.ErrorResponse
	)
	req := client.R().
		SetContext(ctx).
		SetResult(&status).
		SetError(&failure)
	if token != "" {
		req.SetAuthToken(token)
	}

	resp, err := req.Get(fmt.Sprintf("http://%s/api/status", net.JoinHostPort(host, port)))
	if err != nil {
		return service.Status{}, fmt.Errorf("daemon is not reachable: %w", err)
	}
	if resp.IsError() {
		if failure.Error != "" {
			return service.Status{}, fmt.Errorf("daemon answered %d: %s", resp.StatusCode(), failure.Error)
		}
		return service.Status{}, fmt.Errorf("daemon answered %d", resp.StatusCode())
	}
	return status, nil
}
