// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version holds the CLI version information.
	// This value is typically set at build time using -ldflags.
	Version = "0.0.0-dev"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show CLI and backend version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printVersion(cmd)
	},
}

// printVersion prints the CLI version and, when reachable, the backend's.
// The backend lookup is silent: an offline server only yields "unknown".
func printVersion(cmd *cobra.Command) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	backendVersion := "unknown"
	h, err := quietCall(cmd.Context(), func(ctx context.Context) (string, error) {
		h, err := s.api.Health(ctx)
		return h.Version, err
	})
	if err == nil && h != "" {
		backendVersion = h
	}
	fmt.Fprintf(cmd.OutOrStdout(), "examdesk %s\nbackend %s\n", Version, backendVersion)
	return nil
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
