package mocks

import (
	"context"

	"github.com/uwcirg/waverify-auth/domain"
)

// MockPinService implements domain.PinService interface for testing
type MockPinService struct {
	CreatePinFunc     func(userID, pin string) (*domain.Credential, error)
	StoreOrUpdateFunc func(ctx context.Context, userID, pin string) error
	IsConfiguredFunc  func(ctx context.Context, userID string) (bool, error)
	VerifyFunc        func(ctx context.Context, userID, submitted string) bool
}

// NewMockPinService creates a new MockPinService with default behaviors
func NewMockPinService() *MockPinService {
	return &MockPinService{}
}

// CreatePin builds a credential value object
func (m *MockPinService) CreatePin(userID, pin string) (*domain.Credential, error) {
	if m.CreatePinFunc != nil {
		return m.CreatePinFunc(userID, pin)
	}
	if pin == "" {
		return nil, domain.ErrInvalidInput
	}
	return &domain.Credential{ID: "mock-cred", UserID: userID, Type: domain.CredentialTypePin}, nil
}

// StoreOrUpdate registers the PIN
func (m *MockPinService) StoreOrUpdate(ctx context.Context, userID, pin string) error {
	if m.StoreOrUpdateFunc != nil {
		return m.StoreOrUpdateFunc(ctx, userID, pin)
	}
	// Default behavior: success
	return nil
}

// IsConfigured reports whether a PIN exists
func (m *MockPinService) IsConfigured(ctx context.Context, userID string) (bool, error) {
	if m.IsConfiguredFunc != nil {
		return m.IsConfiguredFunc(ctx, userID)
	}
	// Default behavior: configured
	return true, nil
}

// Verify checks a submitted PIN
func (m *MockPinService) Verify(ctx context.Context, userID, submitted string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, userID, submitted)
	}
	// Default behavior: accept
	return true
}

// Compile-time interface compliance verification
var _ domain.PinService = (*MockPinService)(nil)
