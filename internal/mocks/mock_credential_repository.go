package mocks

import (
	"context"

	"github.com/uwcirg/waverify-auth/domain"
)

// MockCredentialRepository implements domain.CredentialRepository interface for testing
type MockCredentialRepository struct {
	CreateFunc     func(ctx context.Context, cred *domain.Credential) error
	UpdateFunc     func(ctx context.Context, cred *domain.Credential) error
	FindByTypeFunc func(ctx context.Context, userID, credType string) ([]*domain.Credential, error)
	DeleteFunc     func(ctx context.Context, credentialID string) error
}

// NewMockCredentialRepository creates a new MockCredentialRepository with default behaviors
func NewMockCredentialRepository() *MockCredentialRepository {
	return &MockCredentialRepository{}
}

// Create stores a new credential
func (m *MockCredentialRepository) Create(ctx context.Context, cred *domain.Credential) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, cred)
	}
	// Default behavior: success
	return nil
}

// Update overwrites an existing credential
func (m *MockCredentialRepository) Update(ctx context.Context, cred *domain.Credential) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, cred)
	}
	// Default behavior: success
	return nil
}

// FindByType lists a user's credentials of the given type
func (m *MockCredentialRepository) FindByType(ctx context.Context, userID, credType string) ([]*domain.Credential, error) {
	if m.FindByTypeFunc != nil {
		return m.FindByTypeFunc(ctx, userID, credType)
	}
	// Default behavior: none stored
	return nil, nil
}

// Delete removes a credential by ID
func (m *MockCredentialRepository) Delete(ctx context.Context, credentialID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, credentialID)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.CredentialRepository = (*MockCredentialRepository)(nil)
