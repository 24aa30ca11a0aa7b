// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package api binds the exam platform REST resources to the request gateway.
// Each function only shapes the request (method, path, query, body); errors are
// the gateway's normalized errors, returned untouched.
package api

import (
	"net/url"
	"strconv"

	"examdesk/cli/internal/backend"
)

// Service exposes the platform endpoints.
type Service struct {
	gw *backend.Client
}

// New returns a Service sending through gw.
func New(gw *backend.Client) *Service {
	return &Service{gw: gw}
}

// page builds skip/limit query parameters. A non-positive limit leaves the
// server default in place.
func page(skip, limit int) url.Values {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(max(skip, 0)))
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

func id(n int) string { return strconv.Itoa(n) }
