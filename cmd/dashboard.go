// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"examdesk/cli/internal/api"
)

var recentLimit int

type dashboardView struct {
	Stats  api.DashboardStats `json:"stats"`
	Recent []api.Attempt      `json:"recent_attempts"`
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show platform statistics and recent attempts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		stats, err := call(cmd, s, "Loading dashboard", func(ctx context.Context) (api.DashboardStats, error) {
			return s.api.DashboardStats(ctx)
		})
		if err != nil {
			return err
		}
		recent, err := call(cmd, s, "Loading recent attempts", func(ctx context.Context) ([]api.Attempt, error) {
			return s.api.RecentAttempts(ctx, recentLimit)
		})
		if err != nil {
			return err
		}

		view := dashboardView{Stats: stats, Recent: recent}
		if jsonOutput {
			return renderRecord(cmd, view, nil)
		}
		if err := renderRecord(cmd, view, [][]string{
			{"Exams", fmt.Sprintf("%d (%d published)", stats.TotalExams, stats.PublishedExams)},
			{"Attempts", strconv.Itoa(stats.TotalAttempts)},
			{"Average score", fmt.Sprintf("%.1f%%", stats.AverageScore)},
			{"Pass rate", fmt.Sprintf("%.1f%%", stats.PassRate)},
			{"Folders", strconv.Itoa(stats.TotalFolders)},
			{"Files", strconv.Itoa(stats.TotalFiles)},
		}); err != nil {
			return err
		}
		return render(cmd, recent, func() pterm.TableData { return attemptRows(recent) })
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the backend is reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		h, err := call(cmd, s, "Checking backend health", func(ctx context.Context) (api.Health, error) {
			return s.api.Health(ctx)
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			return renderRecord(cmd, h, nil)
		}
		done(cmd, "%s is %s", s.gw.BaseURL(), h.Status)
		return nil
	},
}

func init() {
	dashboardCmd.Flags().IntVar(&recentLimit, "recent", 5, "Number of recent attempts to show")
	rootCmd.AddCommand(dashboardCmd, healthCmd)
}
