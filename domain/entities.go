package domain

import "time"

// User represents a verified person in the identity store
type User struct {
	ID            string
	Email         string
	FirstName     string
	LastName      string
	Enabled       bool
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DemographicRecord is the transient payload submitted at the start of a flow.
// It is never persisted as a unit; individual fields are copied onto the user
// entity once verification succeeds.
type DemographicRecord struct {
	FirstName   string
	LastName    string
	DateOfBirth string
	Email       string
	Pin         string // optional, in-flight only
}

// TokenRecord pairs a nonce with the hashed token derived from it
type TokenRecord struct {
	Nonce       string
	HashedToken string
}

// CredentialTypePin is the credential type tag for stored PIN secrets
const CredentialTypePin = "PIN"

// Credential is a stored secret bound to a user, held in the credential store
// as an opaque serialized blob plus bookkeeping fields
type Credential struct {
	ID         string
	UserID     string
	Type       string
	SecretData string
	CreatedAt  time.Time
}

// PinSecretData is the shape serialized into a PIN credential's secret data
type PinSecretData struct {
	Pin string `json:"pin"`
}

// FlowStep identifies where an authentication attempt currently stands
type FlowStep string

const (
	StepStart                FlowStep = "start"
	StepDemographicCollected FlowStep = "demographic_collected"
	StepLinkIssued           FlowStep = "link_issued"
	StepTokenRedeemed        FlowStep = "token_redeemed"
	StepPinChallenged        FlowStep = "pin_challenged"
	StepSuccess              FlowStep = "success"
	StepFailed               FlowStep = "failed"
)

// AuthenticationAttempt is the ephemeral per-flow state. The flow engine
// mutates it; the attempt store owns its lifetime.
type AuthenticationAttempt struct {
	ID           string    `json:"id"`
	Step         FlowStep  `json:"step"`
	UserID       string    `json:"user_id,omitempty"`
	Email        string    `json:"email,omitempty"`
	ConsentGiven bool      `json:"consent_given"`
	CreatedAt    time.Time `json:"created_at"`
}

// FlowResult represents a completed authentication
type FlowResult struct {
	User         *User
	SessionToken string
	ExpiresIn    int64
}

// SessionClaims represents session JWT claims
type SessionClaims struct {
	UserID    string `json:"sub"`
	Email     string `json:"email,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
