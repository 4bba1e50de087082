package service

import (
	"errors"

	"github.com/MKhiriev/osteo-vault/internal/crypto"
	"github.com/MKhiriev/osteo-vault/internal/validators"
)

var (
	ErrVaultLocked            = errors.New("vault is locked")
	ErrIntegrity              = errors.New("vault entry failed authentication")
	ErrRestore                = errors.New("restore failed")
	ErrVaultAlreadyConfigured = errors.New("vault is already configured")
	ErrAlreadyUnlocked        = errors.New("vault is already unlocked")
	ErrVaultNotConfigured     = errors.New("vault is not configured")
	ErrWrongCredential        = errors.New("credential does not open this vault")

	ErrInvalidRecord  = validators.ErrInvalidRecord
	ErrWeakCredential = crypto.ErrWeakCredential
)
