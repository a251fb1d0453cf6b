package mocks

import "github.com/uwcirg/waverify-auth/domain"

// MockSessionTokenService implements domain.SessionTokenService interface for testing
type MockSessionTokenService struct {
	GenerateFunc func(userID, email string) (string, error)
	ValidateFunc func(token string) (*domain.SessionClaims, error)
}

// NewMockSessionTokenService creates a new MockSessionTokenService with default behaviors
func NewMockSessionTokenService() *MockSessionTokenService {
	return &MockSessionTokenService{}
}

// Generate issues a mock session token
func (m *MockSessionTokenService) Generate(userID, email string) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(userID, email)
	}
	return "mock-session-token", nil
}

// Validate parses a mock session token
func (m *MockSessionTokenService) Validate(token string) (*domain.SessionClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	if token != "mock-session-token" {
		return nil, domain.ErrTokenInvalid
	}
	return &domain.SessionClaims{UserID: "mock-user"}, nil
}

// Compile-time interface compliance verification
var _ domain.SessionTokenService = (*MockSessionTokenService)(nil)
