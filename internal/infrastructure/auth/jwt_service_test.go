package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/uwcirg/waverify-auth/domain"
)

func TestSessionTokenServiceImpl_GenerateAndValidate(t *testing.T) {
	svc := NewSessionTokenService("test-secret", "waverify-auth", time.Hour)

	token, err := svc.Generate("user-1", "john@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("expected subject user-1, got %q", claims.UserID)
	}
	if claims.Email != "john@example.com" {
		t.Errorf("expected email claim, got %q", claims.Email)
	}
	if claims.ExpiresAt <= claims.IssuedAt {
		t.Errorf("expected exp after iat, got iat=%d exp=%d", claims.IssuedAt, claims.ExpiresAt)
	}
}

func TestSessionTokenServiceImpl_Validate_Errors(t *testing.T) {
	svc := NewSessionTokenService("test-secret", "waverify-auth", time.Hour)

	tests := []struct {
		name     string
		token    func(t *testing.T) string
		expected error
	}{
		{
			name:     "garbage token",
			token:    func(t *testing.T) string { return "not.a.jwt" },
			expected: domain.ErrTokenInvalid,
		},
		{
			name: "wrong signing key",
			token: func(t *testing.T) string {
				other := NewSessionTokenService("other-secret", "waverify-auth", time.Hour)
				token, err := other.Generate("user-1", "john@example.com")
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return token
			},
			expected: domain.ErrTokenInvalid,
		},
		{
			name: "expired token",
			token: func(t *testing.T) string {
				expired := NewSessionTokenService("test-secret", "waverify-auth", -time.Minute)
				token, err := expired.Generate("user-1", "john@example.com")
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return token
			},
			expected: domain.ErrTokenInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Validate(tt.token(t))
			if !errors.Is(err, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestSessionTokenServiceImpl_Generate_UniqueTokens(t *testing.T) {
	svc := NewSessionTokenService("test-secret", "waverify-auth", time.Hour)

	first, err := svc.Generate("user-1", "john@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Generate("user-1", "john@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Error("expected distinct tokens for repeated generation")
	}
}
