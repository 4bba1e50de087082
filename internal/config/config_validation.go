// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks the merged configuration after defaults are applied.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.Vault.Path == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.InactivityTimeout <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Workers.LockCheckInterval <= 0 || cfg.Workers.LockCheckInterval > cfg.App.InactivityTimeout {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Adapter.HTTPAddress == "" && cfg.Adapter.DatabaseURI == "" {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
