package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_EmptyBuilderAppliesDefaults(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)

	assert.Equal(t, DefaultInactivityTimeout, cfg.App.InactivityTimeout)
	assert.Equal(t, DefaultLockCheckInterval, cfg.Workers.LockCheckInterval)
	assert.Equal(t, DefaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.NotEmpty(t, cfg.Storage.Vault.Path)
	assert.False(t, cfg.App.DemoMode)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuild_Priority(t *testing.T) {
	b := newConfigBuilder()
	b.file = &StructuredConfig{
		App:     App{InactivityTimeout: time.Hour, LogLevel: "debug"},
		Storage: Storage{Vault: Vault{Path: "/file.db"}},
	}
	b.env = &StructuredConfig{
		App:     App{InactivityTimeout: 30 * time.Minute},
		Storage: Storage{Vault: Vault{Path: "/env.db"}},
	}
	b.flags = &StructuredConfig{Storage: Storage{Vault: Vault{Path: "/flag.db"}}}

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "/flag.db", cfg.Storage.Vault.Path)
	assert.Equal(t, 30*time.Minute, cfg.App.InactivityTimeout)
	assert.Equal(t, "debug", cfg.App.LogLevel)
}

func TestBuild_DemoModeFromFileSurvivesUnsetFlag(t *testing.T) {
	b := newConfigBuilder()
	b.file = &StructuredConfig{App: App{DemoMode: true}}
	b.flags = &StructuredConfig{}

	cfg, err := b.build()
	require.NoError(t, err)
	assert.True(t, cfg.App.DemoMode)
}

func TestBuild_Validation(t *testing.T) {
	b := newConfigBuilder()
	b.flags = &StructuredConfig{
		App:     App{InactivityTimeout: time.Second},
		Workers: Workers{LockCheckInterval: time.Minute},
	}

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidWorkerConfigs)
}

func TestValidate(t *testing.T) {
	valid := func() *StructuredConfig {
		return &StructuredConfig{
			App:     App{InactivityTimeout: time.Minute},
			Storage: Storage{Vault: Vault{Path: "v.db"}},
			Adapter: Adapter{HTTPAddress: "http://x"},
			Workers: Workers{LockCheckInterval: time.Second},
		}
	}

	require.NoError(t, valid().validate())

	c := valid()
	c.Storage.Vault.Path = ""
	assert.ErrorIs(t, c.validate(), ErrInvalidStorageConfigs)

	c = valid()
	c.App.InactivityTimeout = -time.Second
	assert.ErrorIs(t, c.validate(), ErrInvalidAppConfigs)

	c = valid()
	c.Workers.LockCheckInterval = 0
	assert.ErrorIs(t, c.validate(), ErrInvalidWorkerConfigs)

	c = valid()
	c.Adapter.HTTPAddress = ""
	assert.ErrorIs(t, c.validate(), ErrInvalidAdapterConfigs)

	c.Adapter.DatabaseURI = "postgres://x"
	assert.NoError(t, c.validate())
}

func TestLoad_EnvFlagsAndFile(t *testing.T) {
	p := writeConfigFile(t, "c.yaml", "app:\n  log_level: error\nstorage:\n  backup_dir: /from/file\n")
	setEnvVars(t, map[string]string{
		"CONFIG":             p,
		"STORAGE_BACKUP_DIR": "/from/env",
	})

	cfg, err := Load("test", []string{"-vault", "/from/flag.db"})
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.App.LogLevel)
	assert.Equal(t, "/from/env", cfg.Storage.BackupDir)
	assert.Equal(t, "/from/flag.db", cfg.Storage.Vault.Path)
}

func TestLoad_BadFile(t *testing.T) {
	clearConfigEnv(t)
	_, err := Load("test", []string{"-c", "/does/not/exist.json"})
	require.Error(t, err)
}
