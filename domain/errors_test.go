package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestFlowErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectedMsg string
	}{
		{
			name:        "ErrInvalidInput",
			err:         ErrInvalidInput,
			expectedMsg: "missing or invalid input",
		},
		{
			name:        "ErrConsentRequired",
			err:         ErrConsentRequired,
			expectedMsg: "consent is required",
		},
		{
			name:        "ErrVerificationRejected",
			err:         ErrVerificationRejected,
			expectedMsg: "demographic verification failed",
		},
		{
			name:        "ErrUnknownUser",
			err:         ErrUnknownUser,
			expectedMsg: "unknown user",
		},
		{
			name:        "ErrInvalidCredentials",
			err:         ErrInvalidCredentials,
			expectedMsg: "invalid credentials",
		},
		{
			name:        "ErrAttemptNotFound",
			err:         ErrAttemptNotFound,
			expectedMsg: "authentication attempt not found",
		},
		{
			name:        "ErrCredentialNotFound",
			err:         ErrCredentialNotFound,
			expectedMsg: "credential not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expectedMsg {
				t.Errorf("expected error message %q, got %q", tt.expectedMsg, tt.err.Error())
			}
		})
	}
}

func TestErrorWrapping(t *testing.T) {
	wrapped := fmt.Errorf("redeeming token: %w", ErrUnknownUser)

	if !errors.Is(wrapped, ErrUnknownUser) {
		t.Error("wrapped error should match ErrUnknownUser")
	}
	if errors.Is(wrapped, ErrInvalidCredentials) {
		t.Error("wrapped error should not match ErrInvalidCredentials")
	}
}
