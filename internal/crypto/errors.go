package crypto

import (
	"errors"

	"github.com/MKhiriev/osteo-vault/internal/validators"
)

var (
	// ErrWeakCredential is returned when a credential does not meet the policy.
	ErrWeakCredential = validators.ErrWeakCredential
	// ErrDerivation is returned when Argon2id cannot run with the given input.
	ErrDerivation = errors.New("key derivation failed")
	// ErrDecrypt is returned when authenticated decryption fails.
	ErrDecrypt = errors.New("decryption failed")
	// ErrKeyDestroyed is returned when a destroyed key is used.
	ErrKeyDestroyed = errors.New("key destroyed")
)
