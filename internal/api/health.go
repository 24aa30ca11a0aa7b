// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"context"

	"examdesk/cli/internal/backend"
)

// Health calls GET /health.
func (s *Service) Health(ctx context.Context) (Health, error) {
	return backend.Do[Health](ctx, s.gw, backend.Get("/health", nil))
}
