package mocks

import (
	"context"
	"sync"

	"github.com/uwcirg/waverify-auth/domain"
)

// MockAttemptRepository implements domain.AttemptRepository interface for
// testing. With no function fields set it behaves as an in-memory store so
// flow tests can follow an attempt across steps.
type MockAttemptRepository struct {
	CreateFunc   func(ctx context.Context, attempt *domain.AuthenticationAttempt) error
	FindByIDFunc func(ctx context.Context, attemptID string) (*domain.AuthenticationAttempt, error)
	SaveFunc     func(ctx context.Context, attempt *domain.AuthenticationAttempt) error
	DeleteFunc   func(ctx context.Context, attemptID string) error

	mu       sync.Mutex
	attempts map[string]*domain.AuthenticationAttempt
}

// NewMockAttemptRepository creates a new MockAttemptRepository with default behaviors
func NewMockAttemptRepository() *MockAttemptRepository {
	return &MockAttemptRepository{
		attempts: make(map[string]*domain.AuthenticationAttempt),
	}
}

// Create stores a new attempt
func (m *MockAttemptRepository) Create(ctx context.Context, attempt *domain.AuthenticationAttempt) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, attempt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *attempt
	m.attempts[attempt.ID] = &copied
	return nil
}

// FindByID loads an attempt
func (m *MockAttemptRepository) FindByID(ctx context.Context, attemptID string) (*domain.AuthenticationAttempt, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, attemptID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.attempts[attemptID]
	if !ok {
		return nil, domain.ErrAttemptNotFound
	}
	copied := *stored
	return &copied, nil
}

// Save persists attempt mutations
func (m *MockAttemptRepository) Save(ctx context.Context, attempt *domain.AuthenticationAttempt) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, attempt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *attempt
	m.attempts[attempt.ID] = &copied
	return nil
}

// Delete removes an attempt
func (m *MockAttemptRepository) Delete(ctx context.Context, attemptID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, attemptID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.attempts, attemptID)
	return nil
}

// Compile-time interface compliance verification
var _ domain.AttemptRepository = (*MockAttemptRepository)(nil)
