// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators holds input validation used by the vault services.
//
// Validator is a generic interface so services can take either the
// credential policy or the record-address checks without knowing which.
package validators

import "context"

// Validator validates an input value. Optional field names restrict the
// check to a subset of fields where the implementation supports it.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
