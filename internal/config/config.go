// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// client, the local API server and the admin CLI.
type StructuredConfig struct {
	// App holds application behaviour: demo mode, inactivity timeout, logging.
	App App `envPrefix:"APP_"`

	// Storage holds the local vault location and the backup directory.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listen addresses of the local HTTP API and gRPC health.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds settings of the remote backend adapter.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds background job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// FilePath is the optional path to a JSON (.json) or YAML (.yaml, .yml)
	// configuration file.
	FilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// DemoMode routes every entity type to the remote backend as ephemeral
	// demo traffic. Env: APP_DEMO_MODE
	DemoMode bool `env:"DEMO_MODE"`

	// InactivityTimeout is how long an unlocked vault may stay idle before it
	// locks itself. Env: APP_INACTIVITY_TIMEOUT
	InactivityTimeout time.Duration `env:"INACTIVITY_TIMEOUT"`

	// LogLevel is a zerolog level name. Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// LogDir is where the interactive client writes its log file.
	// Env: APP_LOG_DIR
	LogDir string `env:"LOG_DIR"`
}

// Storage groups local persistence settings.
type Storage struct {
	// Vault holds the encrypted vault database settings.
	Vault Vault `envPrefix:"VAULT_"`

	// BackupDir is where exported archives are written.
	// Env: STORAGE_BACKUP_DIR
	BackupDir string `env:"BACKUP_DIR"`
}

// Vault holds the SQLite vault file location.
type Vault struct {
	// Path is the SQLite file holding the encrypted entries.
	// Env: STORAGE_VAULT_PATH
	Path string `env:"PATH"`
}

// Server holds settings of the local inbound transports.
type Server struct {
	// HTTPAddress is the local HTTP API listen address. Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the gRPC health listen address; empty disables it.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds settings of the remote backend adapter. When DatabaseURI is
// set the Postgres adapter is used, otherwise the HTTP one.
type Adapter struct {
	// HTTPAddress is the base URL of the remote REST backend.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// DatabaseURI is a Postgres DSN for direct remote storage.
	// Env: ADAPTER_DATABASE_URI
	DatabaseURI string `env:"DATABASE_URI"`

	// Token is the bearer token sent to the REST backend.
	// Env: ADAPTER_TOKEN
	Token string `env:"TOKEN"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds background job settings.
type Workers struct {
	// LockCheckInterval is how often the inactivity job checks the clock.
	// Env: WORKERS_LOCK_CHECK_INTERVAL
	LockCheckInterval time.Duration `env:"LOCK_CHECK_INTERVAL"`
}

// GetStructuredConfig loads the configuration from the process environment
// and os.Args.
func GetStructuredConfig() (*StructuredConfig, error) {
	return Load(os.Args[0], os.Args[1:])
}

// Load assembles the configuration from env, the given command-line
// arguments and the optional config file, then applies defaults and
// validates the result.
func Load(name string, args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(name, args).
		withFile().
		build()
}
