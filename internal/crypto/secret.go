// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"errors"
	"sync"
)

// SecretKey holds derived key material. Its bytes are overwritten with zeros
// on Destroy. It never formats, logs or serializes its contents.
type SecretKey struct {
	mu        sync.RWMutex
	b         []byte
	destroyed bool
}

// NewSecretKey takes ownership of b. The caller must not keep a reference.
func NewSecretKey(b []byte) *SecretKey {
	return &SecretKey{b: b}
}

// Use calls fn with the key bytes. fn must not retain the slice.
func (k *SecretKey) Use(fn func(key []byte) error) error {
	if k == nil {
		return ErrKeyDestroyed
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.destroyed {
		return ErrKeyDestroyed
	}
	return fn(k.b)
}

// Destroy zeroes the key bytes. It is safe to call more than once.
func (k *SecretKey) Destroy() {
	if k == nil {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	Zero(k.b)
	k.b = nil
	k.destroyed = true
}

// Destroyed reports whether Destroy has been called.
func (k *SecretKey) Destroyed() bool {
	if k == nil {
		return true
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.destroyed
}

// Len returns the key length in bytes, 0 once destroyed.
func (k *SecretKey) Len() int {
	if k == nil {
		return 0
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.b)
}

func (k *SecretKey) String() string   { return "SecretKey(REDACTED)" }
func (k *SecretKey) GoString() string { return k.String() }

// MarshalJSON always fails; key material is never serialized.
func (k *SecretKey) MarshalJSON() ([]byte, error) {
	return nil, errors.New("secret key cannot be serialized")
}

// MarshalText always fails; key material is never serialized.
func (k *SecretKey) MarshalText() ([]byte, error) {
	return nil, errors.New("secret key cannot be serialized")
}

// Zero overwrites b with zeros.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
