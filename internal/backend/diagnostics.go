// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"log/slog"

	apperrors "examdesk/cli/internal/errors"
	"examdesk/cli/internal/logging"
)

// report logs one categorized line per failed attempt.
// Client errors log at warn; transient failures that will be retried log at info.
func (c *Client) report(d Descriptor, requestID string, attempt int, err *apperrors.E) {
	attrs := []any{
		slog.String("category", err.Kind.Label()),
		slog.String("method", d.Method),
		slog.String("path", d.Path),
		slog.Int("attempt", attempt),
		slog.String("request_id", requestID),
		slog.String("message", logging.Mask(err.Message)),
	}
	if err.Status != 0 {
		attrs = append(attrs, slog.Int("status", err.Status))
	}

	switch err.Kind {
	case apperrors.ServerError, apperrors.Network:
		if attempt < c.retry.attempts() {
			c.log.Info("request failed, will retry", attrs...)
			return
		}
		c.log.Error("request failed", attrs...)
	case apperrors.Unauthorized:
		c.log.Warn("request unauthorized, clearing stored token", attrs...)
	case apperrors.Unknown:
		c.log.Error("request failed", attrs...)
	default:
		c.log.Warn("request rejected", attrs...)
	}
}
