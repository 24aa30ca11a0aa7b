// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain provides centralized, thread-safe keychain operations for examdesk.
// This module manages all interactions with the OS keychain/credential store for the
// platform bearer token.
//
// The Manager satisfies the request gateway's credentials contract: the gateway reads
// the token on every request and clears it when the backend answers 401.
package keychain

import (
	"errors"
	"os"
	"runtime"
	"sync"

	"github.com/99designs/keyring"

	"examdesk/cli/internal/xdg"
)

// Global keychain manager instance
var (
	globalManager *Manager
	mu            sync.Mutex
)

// Manager provides centralized, thread-safe operations for the OS keychain.
type Manager struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "examdesk"

// KeyAuthToken is the key under which the bearer token is stored.
const KeyAuthToken = "auth_token"

// PasswordEnv unlocks the encrypted file backend used when no native store exists.
const PasswordEnv = "EXAMDESK_KEYRING_PASSWORD"

// NewManager creates a new keychain manager with the OS keyring initialized.
func NewManager() (*Manager, error) {
	ring, err := openRing()
	if err != nil {
		return nil, err
	}
	return &Manager{ring: ring}, nil
}

// NewManagerWithRing wraps an already opened keyring (e.g. keyring.NewArrayKeyring in tests).
func NewManagerWithRing(ring keyring.Keyring) *Manager {
	return &Manager{ring: ring}
}

// GetManager returns the global keychain manager instance.
// If not initialized, it will be created on first call.
// If initialization fails, it will retry on subsequent calls.
func GetManager() (*Manager, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalManager != nil {
		return globalManager, nil
	}

	m, err := NewManager()
	if err != nil {
		return nil, err
	}
	globalManager = m
	return globalManager, nil
}

// openRing opens the OS keyring, preferring native platform backends.
// On Linux without a secret service, an encrypted file in the config dir is used.
func openRing() (keyring.Keyring, error) {
	var allowed []keyring.BackendType
	switch runtime.GOOS {
	case "darwin":
		allowed = []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend, keyring.FileBackend}
	case "windows":
		allowed = []keyring.BackendType{keyring.WinCredBackend}
	default:
		allowed = []keyring.BackendType{
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		}
	}

	cfg := keyring.Config{
		ServiceName:      ServiceName,
		AllowedBackends:  allowed,
		PassPrefix:       ServiceName,
		WinCredPrefix:    ServiceName,
		FilePasswordFunc: filePassword,
	}
	if dir, err := xdg.StateDir(); err == nil {
		cfg.FileDir = dir
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, errors.New("no credential store available; pass --token or set EXAMDESK_TOKEN")
	}
	return ring, nil
}

func filePassword(string) (string, error) {
	if pw := os.Getenv(PasswordEnv); pw != "" {
		return pw, nil
	}
	return "", errors.New(PasswordEnv + " is not set")
}

// SaveToken stores the bearer token in the OS keychain.
// This method is thread-safe.
func (m *Manager) SaveToken(token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ring.Set(keyring.Item{Key: KeyAuthToken, Data: []byte(token), Label: ServiceName + " token"})
}

// LoadToken retrieves the bearer token from the keychain.
// This method is thread-safe.
func (m *Manager) LoadToken() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, err := m.ring.Get(KeyAuthToken)
	if err != nil {
		return "", err
	}
	if len(it.Data) == 0 {
		return "", errors.New("empty access token")
	}
	return string(it.Data), nil
}

// Token reports the stored token; a missing or unreadable entry means none.
func (m *Manager) Token() (string, bool) {
	token, err := m.LoadToken()
	if err != nil {
		return "", false
	}
	return token, true
}

// Clear removes the stored token. Removing an absent token is not an error.
// This method is thread-safe.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ring.Remove(KeyAuthToken); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}
