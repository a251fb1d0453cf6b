package mocks

import (
	"context"

	"github.com/uwcirg/waverify-auth/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc          func(ctx context.Context, user *domain.User) error
	FindByEmailFunc     func(ctx context.Context, email string) (*domain.User, error)
	FindByIDFunc        func(ctx context.Context, id string) (*domain.User, error)
	UpdateFunc          func(ctx context.Context, user *domain.User) error
	SetAttributeFunc    func(ctx context.Context, userID, name, value string) error
	GetAttributeFunc    func(ctx context.Context, userID, name string) (string, error)
	FindByAttributeFunc func(ctx context.Context, name, value string) (*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Create creates a new user
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	// Default behavior: success
	return nil
}

// FindByEmail finds a user by email
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrUnknownUser
}

// FindByID finds a user by ID
func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrUnknownUser
}

// Update updates an existing user
func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	// Default behavior: success
	return nil
}

// SetAttribute stores a single-valued attribute on a user
func (m *MockUserRepository) SetAttribute(ctx context.Context, userID, name, value string) error {
	if m.SetAttributeFunc != nil {
		return m.SetAttributeFunc(ctx, userID, name, value)
	}
	// Default behavior: success
	return nil
}

// GetAttribute reads a single-valued attribute from a user
func (m *MockUserRepository) GetAttribute(ctx context.Context, userID, name string) (string, error) {
	if m.GetAttributeFunc != nil {
		return m.GetAttributeFunc(ctx, userID, name)
	}
	// Default behavior: attribute absent
	return "", nil
}

// FindByAttribute finds a user carrying the given attribute value
func (m *MockUserRepository) FindByAttribute(ctx context.Context, name, value string) (*domain.User, error) {
	if m.FindByAttributeFunc != nil {
		return m.FindByAttributeFunc(ctx, name, value)
	}
	// Default behavior: not found
	return nil, domain.ErrUnknownUser
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
