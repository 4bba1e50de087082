// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	pinRule      = "required,number,min=4,max=8"
	passwordRule = "required,min=8,max=1024"
)

// CredentialValidator enforces the vault credential policy: a numeric PIN
// of 4 to 8 digits, or a password of at least 8 characters that is not
// only whitespace.
type CredentialValidator struct {
	validate *validator.Validate
}

// NewCredentialValidator returns the vault credential policy.
func NewCredentialValidator() Validator {
	return &CredentialValidator{validate: validator.New()}
}

// Validate accepts a string credential. Fields are ignored.
func (v *CredentialValidator) Validate(_ context.Context, obj any, _ ...string) error {
	var credential string
	switch value := obj.(type) {
	case string:
		credential = value
	case *string:
		if value == nil {
			return ErrWeakCredential
		}
		credential = *value
	default:
		return ErrUnsupportedType
	}

	if v.validate.Var(credential, pinRule) == nil {
		return nil
	}
	if strings.TrimSpace(credential) != "" && v.validate.Var(credential, passwordRule) == nil {
		return nil
	}
	return ErrWeakCredential
}
