package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCredentialValidator(t *testing.T) {
	v := NewCredentialValidator()
	ctx := context.Background()

	tests := []struct {
		name       string
		credential any
		wantErr    error
	}{
		{name: "4 digit pin", credential: "1234"},
		{name: "8 digit pin", credential: "12345678"},
		{name: "password", credential: "correct horse"},
		{name: "unicode password", credential: "пароль-секрет"},
		{name: "pointer", credential: func() *string { s := "9876"; return &s }()},
		{name: "3 digit pin", credential: "123", wantErr: ErrWeakCredential},
		{name: "short password", credential: "abc123", wantErr: ErrWeakCredential},
		{name: "signed number", credential: "-123", wantErr: ErrWeakCredential},
		{name: "empty", credential: "", wantErr: ErrWeakCredential},
		{name: "whitespace only", credential: strings.Repeat(" ", 10), wantErr: ErrWeakCredential},
		{name: "nil pointer", credential: (*string)(nil), wantErr: ErrWeakCredential},
		{name: "wrong type", credential: 1234, wantErr: ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.credential)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
