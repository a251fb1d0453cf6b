package mocks

import (
	"context"

	"github.com/uwcirg/waverify-auth/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateNonceFunc      func() (string, error)
	HashTokenFunc          func(userID, nonce string) string
	EnsureTokenFunc        func(ctx context.Context, userID string) (*domain.TokenRecord, error)
	BuildRedemptionURLFunc func(hashedToken string) string
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// GenerateNonce returns a fixed nonce
func (m *MockTokenService) GenerateNonce() (string, error) {
	if m.GenerateNonceFunc != nil {
		return m.GenerateNonceFunc()
	}
	return "mock-nonce", nil
}

// HashToken returns a derived mock hash
func (m *MockTokenService) HashToken(userID, nonce string) string {
	if m.HashTokenFunc != nil {
		return m.HashTokenFunc(userID, nonce)
	}
	return "hash:" + userID + ":" + nonce
}

// EnsureToken returns a fixed token record
func (m *MockTokenService) EnsureToken(ctx context.Context, userID string) (*domain.TokenRecord, error) {
	if m.EnsureTokenFunc != nil {
		return m.EnsureTokenFunc(ctx, userID)
	}
	return &domain.TokenRecord{Nonce: "mock-nonce", HashedToken: "mock-token"}, nil
}

// BuildRedemptionURL formats a mock redemption link
func (m *MockTokenService) BuildRedemptionURL(hashedToken string) string {
	if m.BuildRedemptionURLFunc != nil {
		return m.BuildRedemptionURLFunc(hashedToken)
	}
	return "http://localhost/redeem?user_token=" + hashedToken
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
