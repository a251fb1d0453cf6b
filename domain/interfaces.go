package domain

import "context"

// UserRepository defines user and attribute data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error
	SetAttribute(ctx context.Context, userID, name, value string) error
	GetAttribute(ctx context.Context, userID, name string) (string, error)
	FindByAttribute(ctx context.Context, name, value string) (*User, error)
}

// CredentialRepository defines per-user credential storage operations
type CredentialRepository interface {
	Create(ctx context.Context, cred *Credential) error
	Update(ctx context.Context, cred *Credential) error
	FindByType(ctx context.Context, userID, credType string) ([]*Credential, error)
	Delete(ctx context.Context, credentialID string) error
}

// AttemptRepository stores per-flow authentication attempts
type AttemptRepository interface {
	Create(ctx context.Context, attempt *AuthenticationAttempt) error
	FindByID(ctx context.Context, attemptID string) (*AuthenticationAttempt, error)
	Save(ctx context.Context, attempt *AuthenticationAttempt) error
	Delete(ctx context.Context, attemptID string) error
}

// TokenService mints, persists and formats login-link tokens
type TokenService interface {
	GenerateNonce() (string, error)
	HashToken(userID, nonce string) string
	EnsureToken(ctx context.Context, userID string) (*TokenRecord, error)
	BuildRedemptionURL(hashedToken string) string
}

// PinService manages PIN credentials for users
type PinService interface {
	CreatePin(userID, pin string) (*Credential, error)
	StoreOrUpdate(ctx context.Context, userID, pin string) error
	IsConfigured(ctx context.Context, userID string) (bool, error)
	Verify(ctx context.Context, userID, submitted string) bool
}

// DemographicService verifies a demographic record against the remote oracle
type DemographicService interface {
	Verify(ctx context.Context, record *DemographicRecord) bool
}

// FlowService sequences the authentication steps
type FlowService interface {
	SubmitDemographics(ctx context.Context, record *DemographicRecord, consent bool) (*AuthenticationAttempt, error)
	RedeemToken(ctx context.Context, token string) (*AuthenticationAttempt, error)
	SetupPin(ctx context.Context, attemptID, pin string) error
	VerifyPin(ctx context.Context, attemptID, pin string) (*FlowResult, error)
}

// SessionTokenService issues and validates post-flow session tokens
type SessionTokenService interface {
	Generate(userID, email string) (string, error)
	Validate(token string) (*SessionClaims, error)
}

// NotificationService defines outbound email delivery
type NotificationService interface {
	SendEmail(to, subject, body string) error
}
