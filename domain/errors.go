package domain

import "errors"

// Flow errors
var (
	ErrInvalidInput         = errors.New("missing or invalid input")
	ErrConsentRequired      = errors.New("consent is required")
	ErrVerificationRejected = errors.New("demographic verification failed")
	ErrUnknownUser          = errors.New("unknown user")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrStepNotAllowed       = errors.New("step not allowed in current flow state")
	ErrFlowFailed           = errors.New("authentication flow failed")
)

// Attempt errors
var (
	ErrAttemptNotFound = errors.New("authentication attempt not found")
)

// Credential errors
var (
	ErrCredentialNotFound = errors.New("credential not found")
)

// Session token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)
