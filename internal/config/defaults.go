// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	DefaultInactivityTimeout = 15 * time.Minute
	DefaultLockCheckInterval = 10 * time.Second
	DefaultRequestTimeout    = 30 * time.Second
	DefaultHTTPAddress       = "127.0.0.1:8484"
	DefaultRemoteAddress     = "http://localhost:8080"
	DefaultLogLevel          = "info"
	vaultFileName            = "vault.db"
)

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "osteo-vault")
	}
	return ".osteo-vault"
}

func defaults() *StructuredConfig {
	dataDir := defaultDataDir()
	return &StructuredConfig{
		App: App{
			InactivityTimeout: DefaultInactivityTimeout,
			LogLevel:          DefaultLogLevel,
			LogDir:            dataDir,
		},
		Storage: Storage{
			Vault:     Vault{Path: filepath.Join(dataDir, vaultFileName)},
			BackupDir: dataDir,
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    DefaultRemoteAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Workers: Workers{LockCheckInterval: DefaultLockCheckInterval},
	}
}
