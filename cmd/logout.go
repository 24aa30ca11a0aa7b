// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"examdesk/cli/internal/keychain"
)

// logoutCmd removes the stored bearer token.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored token from the OS keychain",
	RunE: func(cmd *cobra.Command, args []string) error {
		km, err := keychain.GetManager()
		if err != nil {
			return fmt.Errorf("open keychain: %w", err)
		}
		if err := km.Clear(); err != nil {
			return fmt.Errorf("clear token: %w", err)
		}
		done(cmd, "Stored token removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
