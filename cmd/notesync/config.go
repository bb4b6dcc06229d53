// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-note-sync/internal/config"
)

var errNoConfigPath = errors.New("no config file path, pass it as an argument or with --config")

func (c *cli) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the JSON config file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write the current settings to a JSON config file",
		Long: `Write the settings merged from defaults, environment variables and flags to
a JSON config file. The path defaults to --config. The file is readable by
the owner only since it holds the token and the salt.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.GetBaseConfig(c.root.PersistentFlags())
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			path := cfg.JSONFilePath
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return errNoConfigPath
			}

			cfg.JSONFilePath = ""
			if err = config.SaveJSON(path, cfg); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "config written to %s\n", path)
			return nil
		},
	})
	return cmd
}
