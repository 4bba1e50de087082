package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrWeakCredential    = errors.New("credential must be a 4-8 digit PIN or a password of at least 8 characters")
	ErrInvalidEntityType = errors.New("invalid entity type")
	ErrInvalidID         = errors.New("invalid record id")
	ErrInvalidRecord     = errors.New("record must be a JSON document")
	ErrNegativeAmount    = errors.New("invoice amount must not be negative")
)
