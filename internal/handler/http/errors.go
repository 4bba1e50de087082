// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrMissingCredential is returned by the backup import endpoint when the
	// X-Vault-Credential header is absent.
	ErrMissingCredential = errors.New("missing `X-Vault-Credential` header")

	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrRecordNotFound is returned by the record endpoint when neither the
	// vault nor the remote backend holds the record.
	ErrRecordNotFound = errors.New("record not found")
)
