package mocks

import (
	"context"

	"github.com/uwcirg/waverify-auth/domain"
)

// MockFlowService implements domain.FlowService interface for testing
type MockFlowService struct {
	SubmitDemographicsFunc func(ctx context.Context, record *domain.DemographicRecord, consent bool) (*domain.AuthenticationAttempt, error)
	RedeemTokenFunc        func(ctx context.Context, token string) (*domain.AuthenticationAttempt, error)
	SetupPinFunc           func(ctx context.Context, attemptID, pin string) error
	VerifyPinFunc          func(ctx context.Context, attemptID, pin string) (*domain.FlowResult, error)
}

// NewMockFlowService creates a new MockFlowService with default behaviors
func NewMockFlowService() *MockFlowService {
	return &MockFlowService{}
}

// SubmitDemographics runs the demographic step
func (m *MockFlowService) SubmitDemographics(ctx context.Context, record *domain.DemographicRecord, consent bool) (*domain.AuthenticationAttempt, error) {
	if m.SubmitDemographicsFunc != nil {
		return m.SubmitDemographicsFunc(ctx, record, consent)
	}
	return &domain.AuthenticationAttempt{ID: "mock-attempt", Step: domain.StepLinkIssued}, nil
}

// RedeemToken runs the redemption step
func (m *MockFlowService) RedeemToken(ctx context.Context, token string) (*domain.AuthenticationAttempt, error) {
	if m.RedeemTokenFunc != nil {
		return m.RedeemTokenFunc(ctx, token)
	}
	return &domain.AuthenticationAttempt{ID: "mock-attempt", Step: domain.StepTokenRedeemed, UserID: "mock-user"}, nil
}

// SetupPin registers a PIN for the attempt's user
func (m *MockFlowService) SetupPin(ctx context.Context, attemptID, pin string) error {
	if m.SetupPinFunc != nil {
		return m.SetupPinFunc(ctx, attemptID, pin)
	}
	// Default behavior: success
	return nil
}

// VerifyPin runs the PIN challenge
func (m *MockFlowService) VerifyPin(ctx context.Context, attemptID, pin string) (*domain.FlowResult, error) {
	if m.VerifyPinFunc != nil {
		return m.VerifyPinFunc(ctx, attemptID, pin)
	}
	return &domain.FlowResult{SessionToken: "mock-session-token", ExpiresIn: 900}, nil
}

// Compile-time interface compliance verification
var _ domain.FlowService = (*MockFlowService)(nil)
