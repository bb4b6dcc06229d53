// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-note-sync/internal/client"
	"github.com/MKhiriev/go-note-sync/internal/config"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/models"
)

// cli is shared by the subcommands.
type cli struct {
	root *cobra.Command
	info models.AppBuildInfo
}

func newRootCmd(info models.AppBuildInfo) *cobra.Command {
	c := &cli{info: info}

	c.root = &cobra.Command{
		Use:   client.AppName,
		Short: "Sync captured notes into a local document store",
		Long: `notesync pulls the records captured through the note-push backend, renders
them as markdown and appends them to the selected document of the local
document store, grouped under timestamp headings.

Settings are read from defaults, environment variables, flags and the JSON
file given by --config, the JSON file having the last word.`,
		SilenceUsage: true,
	}
	config.RegisterFlags(c.root.PersistentFlags())

	c.root.AddCommand(
		c.runCmd(),
		c.syncCmd(),
		c.quotaCmd(),
		c.statusCmd(),
		c.encryptCmd(),
		c.configCmd(),
		c.versionCmd(),
	)
	return c.root
}

// clientConfig loads and validates the configuration from all sources.
func (c *cli) clientConfig() (*config.ClientConfig, error) {
	cfg, err := config.GetClientConfig(c.root.PersistentFlags())
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

// structuredConfig loads the merged configuration without the checks that
// only the sync pipeline needs.
func (c *cli) structuredConfig() (*config.StructuredConfig, error) {
	cfg, err := config.GetStructuredConfig(c.root.PersistentFlags())
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

// logger writes to the configured log file, or to fallback when there is
// none.
func (c *cli) logger(cfg config.ClientLog, fallback io.Writer) (*logger.Logger, error) {
	return logger.NewClientLogger(client.AppName, logger.FileOptions{
		Path:       cfg.File,
		Level:      cfg.Level,
		MaxSizeMB:  cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAgeDays: cfg.MaxAgeDays,
		Output:     fallback,
	})
}
