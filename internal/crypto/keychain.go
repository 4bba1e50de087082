// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/MKhiriev/osteo-vault/internal/validators"
	"github.com/MKhiriev/osteo-vault/models"
	"golang.org/x/crypto/argon2"
)

const (
	// SaltSize is the length of a freshly generated salt.
	SaltSize = 16
	// KeySize is the AES-256 key length.
	KeySize = 32
	// MinSaltSize is the shortest salt accepted by DeriveKey.
	MinSaltSize = 8
)

// CanaryPlaintext is the known value sealed into the vault metadata. Opening
// it proves a derived key is the vault key without touching any record.
var CanaryPlaintext = []byte("osteo-vault:canary:v1")

// CanaryAAD binds the canary ciphertext to its purpose.
var CanaryAAD = []byte("osteo-vault/canary")

// DefaultKDFParams are the Argon2id parameters used for new vaults:
// 3 passes over 64 MiB with 4 lanes, 32-byte output.
var DefaultKDFParams = models.KDFParams{
	Time:    3,
	Memory:  64 * 1024,
	Threads: 4,
	KeyLen:  KeySize,
}

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct {
	params    models.KDFParams
	validator validators.Validator
	rand      io.Reader
}

// NewKeyChainService constructs a [KeyChainService] with [DefaultKDFParams].
func NewKeyChainService() KeyChainService {
	return NewKeyChainServiceWithParams(DefaultKDFParams)
}

// NewKeyChainServiceWithParams constructs a [KeyChainService] with custom
// Argon2id parameters. Tests use it to keep derivation cheap.
func NewKeyChainServiceWithParams(params models.KDFParams) KeyChainService {
	return &keyChainService{
		params:    params,
		validator: validators.NewCredentialValidator(),
		rand:      rand.Reader,
	}
}

// GenerateSalt implements [KeyChainService].
func (k *keyChainService) GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(k.rand, salt); err != nil {
		return nil, fmt.Errorf("%w: read salt: %w", ErrDerivation, err)
	}
	return salt, nil
}

// Params implements [KeyChainService].
func (k *keyChainService) Params() models.KDFParams {
	return k.params
}

// DeriveKey implements [KeyChainService].
func (k *keyChainService) DeriveKey(credential string, salt []byte) (*SecretKey, error) {
	return k.DeriveKeyWithParams(credential, salt, k.params)
}

// DeriveKeyWithParams implements [KeyChainService]. The policy is checked
// before any work is done; the byte copy of the credential is zeroed after
// derivation.
func (k *keyChainService) DeriveKeyWithParams(credential string, salt []byte, params models.KDFParams) (key *SecretKey, err error) {
	if err := k.validator.Validate(context.Background(), credential); err != nil {
		return nil, err
	}
	if err := ValidateParams(params); err != nil {
		return nil, err
	}
	if len(salt) < MinSaltSize {
		return nil, fmt.Errorf("%w: salt too short", ErrDerivation)
	}

	defer func() {
		if r := recover(); r != nil {
			key, err = nil, fmt.Errorf("%w: %v", ErrDerivation, r)
		}
	}()

	pw := []byte(credential)
	defer Zero(pw)

	raw := argon2.IDKey(pw, salt, params.Time, params.Memory, params.Threads, params.KeyLen)
	return NewSecretKey(raw), nil
}

// Ceilings for Argon2id parameters read from an archive.
const (
	MaxKDFTime    = 16
	MaxKDFMemory  = 1024 * 1024 // KiB, 1 GiB
	MaxKDFThreads = 16
)

// ValidateParams rejects parameter sets Argon2id cannot run with, that
// would not produce an AES-256 key, or that exceed the ceilings above.
func ValidateParams(p models.KDFParams) error {
	switch {
	case p.Time < 1:
		return fmt.Errorf("%w: time must be at least 1", ErrDerivation)
	case p.Time > MaxKDFTime:
		return fmt.Errorf("%w: time above %d", ErrDerivation, MaxKDFTime)
	case p.Threads < 1:
		return fmt.Errorf("%w: threads must be at least 1", ErrDerivation)
	case p.Threads > MaxKDFThreads:
		return fmt.Errorf("%w: threads above %d", ErrDerivation, MaxKDFThreads)
	case p.Memory < 8*uint32(p.Threads):
		return fmt.Errorf("%w: memory too small for %d threads", ErrDerivation, p.Threads)
	case p.Memory > MaxKDFMemory:
		return fmt.Errorf("%w: memory above 1 GiB", ErrDerivation)
	case p.KeyLen != KeySize:
		return fmt.Errorf("%w: key length must be %d", ErrDerivation, KeySize)
	}
	return nil
}

// Seal implements [KeyChainService].
func (k *keyChainService) Seal(key *SecretKey, plaintext, aad []byte) (ciphertext, nonce []byte, err error) {
	err = key.Use(func(raw []byte) error {
		gcm, err := newGCM(raw)
		if err != nil {
			return err
		}

		nonce = make([]byte, gcm.NonceSize())
		if _, err := io.ReadFull(k.rand, nonce); err != nil {
			return fmt.Errorf("generate nonce: %w", err)
		}

		ciphertext = gcm.Seal(nil, nonce, plaintext, aad)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return ciphertext, nonce, nil
}

// Open implements [KeyChainService].
func (k *keyChainService) Open(key *SecretKey, ciphertext, nonce, aad []byte) ([]byte, error) {
	var plaintext []byte
	err := key.Use(func(raw []byte) error {
		gcm, err := newGCM(raw)
		if err != nil {
			return err
		}
		if len(nonce) != gcm.NonceSize() {
			return ErrDecrypt
		}

		plaintext, err = gcm.Open(nil, nonce, ciphertext, aad)
		if err != nil {
			return ErrDecrypt
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
