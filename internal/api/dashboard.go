// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"context"
	"net/url"
	"strconv"

	"examdesk/cli/internal/backend"
)

// DashboardStats calls GET /dashboard/stats.
func (s *Service) DashboardStats(ctx context.Context) (DashboardStats, error) {
	return backend.Do[DashboardStats](ctx, s.gw, backend.Get("/dashboard/stats", nil))
}

// RecentAttempts calls GET /dashboard/recent-attempts.
func (s *Service) RecentAttempts(ctx context.Context, limit int) ([]Attempt, error) {
	var q url.Values
	if limit > 0 {
		q = url.Values{"limit": {strconv.Itoa(limit)}}
	}
	return backend.Do[[]Attempt](ctx, s.gw, backend.Get("/dashboard/recent-attempts", q))
}
