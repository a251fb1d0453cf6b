package mocks

import (
	"context"

	"github.com/uwcirg/waverify-auth/domain"
)

// MockDemographicService implements domain.DemographicService interface for testing
type MockDemographicService struct {
	VerifyFunc func(ctx context.Context, record *domain.DemographicRecord) bool

	// CallCount tracks verification invocations so tests can assert the
	// remote oracle was never reached.
	CallCount int
}

// NewMockDemographicService creates a new MockDemographicService with default behaviors
func NewMockDemographicService() *MockDemographicService {
	return &MockDemographicService{}
}

// Verify records the call and delegates to VerifyFunc
func (m *MockDemographicService) Verify(ctx context.Context, record *domain.DemographicRecord) bool {
	m.CallCount++
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, record)
	}
	// Default behavior: accept
	return true
}

// Compile-time interface compliance verification
var _ domain.DemographicService = (*MockDemographicService)(nil)
