package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken("test-issuer", "cabinet-1", time.Hour, "secret-key")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return []byte("secret-key"), nil
	}, jwt.WithIssuer("test-issuer"))
	if err != nil {
		t.Fatalf("expected token to verify, got: %v", err)
	}

	sub, _ := parsed.Claims.GetSubject()
	if sub != "cabinet-1" {
		t.Errorf("expected subject 'cabinet-1', got %s", sub)
	}
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		subject  string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", "s", time.Hour, "key"},
		{"empty subject", "iss", "", time.Hour, "key"},
		{"zero duration", "iss", "s", 0, "key"},
		{"empty key", "iss", "s", time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.subject, tt.duration, tt.key)
			if err == nil {
				t.Error("expected error for invalid parameters, got nil")
			}
		})
	}
}

func TestTokenExpiry(t *testing.T) {
	token, err := GenerateJWTToken("iss", "sub", time.Hour, "k")
	if err != nil {
		t.Fatal(err)
	}

	exp, err := TokenExpiry(token)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if d := time.Until(exp); d < 59*time.Minute || d > time.Hour+time.Minute {
		t.Errorf("expected expiry about an hour ahead, got %v", d)
	}
}

func TestTokenExpiry_NoClaim(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x"}).SignedString([]byte("k"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := TokenExpiry(token); !errors.Is(err, ErrNoExpiry) {
		t.Errorf("expected ErrNoExpiry, got %v", err)
	}
}

func TestTokenExpiry_Malformed(t *testing.T) {
	if _, err := TokenExpiry("not-a-token"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestTokenSubject(t *testing.T) {
	token, err := GenerateJWTToken("iss", "cabinet-9", time.Hour, "k")
	if err != nil {
		t.Fatal(err)
	}

	sub, err := TokenSubject(token)
	if err != nil || sub != "cabinet-9" {
		t.Errorf("expected cabinet-9, got %q (%v)", sub, err)
	}
}
