// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend is the single request gateway for the exam platform REST API.
// Every endpoint call funnels through Client.Send, which owns the base URL,
// default headers, bearer credentials, per-attempt timeout, error classification
// and the retry policy for transient failures.
//
// Credentials are injected rather than read from global state; the keychain
// package provides the persisted implementation.
package backend

import "sync"

// Credentials supplies the bearer token for outgoing requests.
// Clear is called when the backend answers 401 and must be idempotent.
type Credentials interface {
	Token() (string, bool)
	Clear() error
}

// StaticToken is an in-memory Credentials implementation.
// It is used for tokens passed on the command line and in tests.
type StaticToken struct {
	mu    sync.RWMutex
	token string
}

// NewStaticToken returns credentials holding token. An empty token means none.
func NewStaticToken(token string) *StaticToken {
	return &StaticToken{token: token}
}

// Token returns the held token and whether one is present.
func (s *StaticToken) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Clear forgets the token.
func (s *StaticToken) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// Set replaces the held token.
func (s *StaticToken) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

type noCredentials struct{}

func (noCredentials) Token() (string, bool) { return "", false }
func (noCredentials) Clear() error          { return nil }
