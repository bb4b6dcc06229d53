// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-note-sync/internal/crypto"
)

func (c *cli) encryptCmd() *cobra.Command {
	var copyToClipboard bool

	cmd := &cobra.Command{
		Use:   "encrypt <text>",
		Short: "Encrypt a text note with the configured salt",
		Long: `Encrypt a text note the way capture clients do, so it can be pushed as a
secret text record. The salt and scheme come from --salt and --crypto-scheme.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.structuredConfig()
			if err != nil {
				return err
			}

			cipher, err := crypto.New(cfg.Crypto.Scheme)
			if err != nil {
				return err
			}
			dc, err := cipher.DeriveContext(cfg.Crypto.Salt)
			if err != nil {
				return err
			}

			ciphertext, err := cipher.EncryptText(args[0], dc)
			if err != nil {
				return err
			}

			if copyToClipboard {
				if err = clipboard.WriteAll(ciphertext); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), ciphertext)
			return nil
		},
	}
	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Also put the ciphertext on the clipboard")
	return cmd
}
