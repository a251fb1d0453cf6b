package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/uwcirg/waverify-auth/domain"
	"github.com/uwcirg/waverify-auth/internal/mocks"
)

// flowFixture wires the flow engine to in-memory collaborators. The token and
// PIN services are the real implementations so the redemption hash and the
// stored credential behave exactly as in production.
type flowFixture struct {
	svc      domain.FlowService
	userRepo *mocks.MockUserRepository
	attempts *mocks.MockAttemptRepository
	demoSvc  *mocks.MockDemographicService
	notify   *mocks.MockNotificationService

	users map[string]*domain.User
	attrs map[string]map[string]string
}

func createFlowServiceForTest(t *testing.T) *flowFixture {
	t.Helper()

	f := &flowFixture{
		userRepo: mocks.NewMockUserRepository(),
		attempts: mocks.NewMockAttemptRepository(),
		demoSvc:  mocks.NewMockDemographicService(),
		notify:   mocks.NewMockNotificationService(),
		users:    make(map[string]*domain.User),
		attrs:    make(map[string]map[string]string),
	}

	f.userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
		copied := *user
		f.users[user.ID] = &copied
		return nil
	}
	f.userRepo.UpdateFunc = func(ctx context.Context, user *domain.User) error {
		copied := *user
		f.users[user.ID] = &copied
		return nil
	}
	f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		for _, u := range f.users {
			if u.Email == email {
				copied := *u
				return &copied, nil
			}
		}
		return nil, domain.ErrUnknownUser
	}
	f.userRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.User, error) {
		u, ok := f.users[id]
		if !ok {
			return nil, domain.ErrUnknownUser
		}
		copied := *u
		return &copied, nil
	}
	f.userRepo.SetAttributeFunc = func(ctx context.Context, userID, name, value string) error {
		if f.attrs[userID] == nil {
			f.attrs[userID] = make(map[string]string)
		}
		f.attrs[userID][name] = value
		return nil
	}
	f.userRepo.GetAttributeFunc = func(ctx context.Context, userID, name string) (string, error) {
		return f.attrs[userID][name], nil
	}
	f.userRepo.FindByAttributeFunc = func(ctx context.Context, name, value string) (*domain.User, error) {
		for id, m := range f.attrs {
			if m[name] == value {
				if u, ok := f.users[id]; ok {
					copied := *u
					return &copied, nil
				}
			}
		}
		return nil, domain.ErrUnknownUser
	}

	tokenSvc := NewTokenService(f.userRepo, LinkConfig{
		BaseURL:     "http://localhost:8080/",
		Realm:       "waverify",
		ClientID:    "ips-client",
		RedirectURI: "http://localhost:3000/callback",
	})

	credRepo, _ := inMemoryCredentialStore(t)
	pinSvc := NewPinService(credRepo)

	f.svc = NewFlowService(
		f.userRepo,
		f.attempts,
		tokenSvc,
		pinSvc,
		f.demoSvc,
		f.notify,
		mocks.NewMockSessionTokenService(),
		15*time.Minute,
	)
	return f
}

func happyRecord() *domain.DemographicRecord {
	return &domain.DemographicRecord{
		FirstName:   "John",
		LastName:    "Doe",
		DateOfBirth: "1990-01-01",
		Email:       "john@example.com",
		Pin:         "4321",
	}
}

func (f *flowFixture) storedToken(t *testing.T, email string) string {
	t.Helper()
	for id, u := range f.users {
		if u.Email == email {
			return f.attrs[id][TokenAttribute]
		}
	}
	t.Fatalf("no user stored for email %s", email)
	return ""
}

func TestFlowServiceImpl_HappyPath(t *testing.T) {
	f := createFlowServiceForTest(t)
	ctx := context.Background()

	attempt, err := f.svc.SubmitDemographics(ctx, happyRecord(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempt.Step != domain.StepLinkIssued {
		t.Fatalf("expected step %s, got %s", domain.StepLinkIssued, attempt.Step)
	}
	if len(f.users) != 1 {
		t.Fatalf("expected one provisioned user, got %d", len(f.users))
	}

	token := f.storedToken(t, "john@example.com")
	if token == "" {
		t.Fatal("expected a token attribute on the user")
	}
	if len(f.notify.Sent) != 1 {
		t.Fatalf("expected one login email, got %d", len(f.notify.Sent))
	}
	if !strings.Contains(f.notify.Sent[0].Body, "user_token=") {
		t.Error("login email should carry the redemption link")
	}

	redeemed, err := f.svc.RedeemToken(ctx, token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if redeemed.Step != domain.StepTokenRedeemed || redeemed.UserID == "" {
		t.Fatalf("expected identified redeemed attempt, got %+v", redeemed)
	}

	result, err := f.svc.VerifyPin(ctx, redeemed.ID, "4321")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SessionToken == "" {
		t.Error("expected a session token on success")
	}
	if result.User == nil || result.User.Email != "john@example.com" {
		t.Errorf("expected the identified user on the result, got %+v", result.User)
	}

	final, err := f.attempts.FindByID(ctx, redeemed.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if final.Step != domain.StepSuccess {
		t.Errorf("expected terminal step %s, got %s", domain.StepSuccess, final.Step)
	}
}

func TestFlowServiceImpl_RedeemToken_Unknown(t *testing.T) {
	f := createFlowServiceForTest(t)

	attempt, err := f.svc.RedeemToken(context.Background(), "no-such-token")
	if !errors.Is(err, domain.ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
	if attempt.Step != domain.StepFailed {
		t.Errorf("expected terminal step %s, got %s", domain.StepFailed, attempt.Step)
	}
}

func TestFlowServiceImpl_RedeemToken_MissingParameter(t *testing.T) {
	f := createFlowServiceForTest(t)

	attempt, err := f.svc.RedeemToken(context.Background(), "  ")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if attempt.Step != domain.StepFailed {
		t.Errorf("expected terminal step %s, got %s", domain.StepFailed, attempt.Step)
	}
}

func TestFlowServiceImpl_WrongPinThenRetry(t *testing.T) {
	f := createFlowServiceForTest(t)
	ctx := context.Background()

	if _, err := f.svc.SubmitDemographics(ctx, happyRecord(), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	redeemed, err := f.svc.RedeemToken(ctx, f.storedToken(t, "john@example.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.svc.VerifyPin(ctx, redeemed.ID, "0000"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	// The attempt must stay challengeable, not corrupt or terminal.
	mid, err := f.attempts.FindByID(ctx, redeemed.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mid.Step != domain.StepPinChallenged {
		t.Fatalf("expected step %s after a miss, got %s", domain.StepPinChallenged, mid.Step)
	}

	result, err := f.svc.VerifyPin(ctx, redeemed.ID, "4321")
	if err != nil {
		t.Fatalf("expected the correct pin to still succeed, got %v", err)
	}
	if result.SessionToken == "" {
		t.Error("expected a session token on retry success")
	}
}

func TestFlowServiceImpl_SubmitDemographics_Validation(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(r *domain.DemographicRecord)
		consent     bool
		expectedErr error
	}{
		{
			name:        "missing last name rejected before any network call",
			mutate:      func(r *domain.DemographicRecord) { r.LastName = "" },
			consent:     true,
			expectedErr: domain.ErrInvalidInput,
		},
		{
			name:        "blank email rejected",
			mutate:      func(r *domain.DemographicRecord) { r.Email = "   " },
			consent:     true,
			expectedErr: domain.ErrInvalidInput,
		},
		{
			name:        "missing consent rejected",
			mutate:      func(r *domain.DemographicRecord) {},
			consent:     false,
			expectedErr: domain.ErrConsentRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := createFlowServiceForTest(t)
			record := happyRecord()
			tt.mutate(record)

			attempt, err := f.svc.SubmitDemographics(context.Background(), record, tt.consent)
			if !errors.Is(err, tt.expectedErr) {
				t.Fatalf("expected %v, got %v", tt.expectedErr, err)
			}
			if attempt.Step != domain.StepStart {
				t.Errorf("attempt should stay in %s for re-challenge, got %s", domain.StepStart, attempt.Step)
			}
			if f.demoSvc.CallCount != 0 {
				t.Errorf("verifier must not be invoked, got %d calls", f.demoSvc.CallCount)
			}
			if len(f.users) != 0 {
				t.Error("no user should be provisioned on rejection")
			}
		})
	}
}

func TestFlowServiceImpl_SubmitDemographics_VerifierRejects(t *testing.T) {
	f := createFlowServiceForTest(t)
	f.demoSvc.VerifyFunc = func(ctx context.Context, record *domain.DemographicRecord) bool {
		return false
	}

	attempt, err := f.svc.SubmitDemographics(context.Background(), happyRecord(), true)
	if !errors.Is(err, domain.ErrVerificationRejected) {
		t.Fatalf("expected ErrVerificationRejected, got %v", err)
	}
	if attempt.Step != domain.StepStart {
		t.Errorf("attempt should stay in %s, got %s", domain.StepStart, attempt.Step)
	}
	if len(f.notify.Sent) != 0 {
		t.Error("no email should be sent on rejection")
	}
}

func TestFlowServiceImpl_Resubmission_KeepsTokenAndUser(t *testing.T) {
	f := createFlowServiceForTest(t)
	ctx := context.Background()

	if _, err := f.svc.SubmitDemographics(ctx, happyRecord(), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	firstToken := f.storedToken(t, "john@example.com")

	record := happyRecord()
	record.FirstName = "Johnny"
	if _, err := f.svc.SubmitDemographics(ctx, record, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.users) != 1 {
		t.Fatalf("resubmission must reuse the user, got %d users", len(f.users))
	}
	if f.storedToken(t, "john@example.com") != firstToken {
		t.Error("an issued token must never be regenerated on resubmission")
	}
	for _, u := range f.users {
		if u.FirstName != "Johnny" {
			t.Errorf("existing user should be updated, got first name %q", u.FirstName)
		}
	}
}

func TestFlowServiceImpl_VerifyPin_RequiresUser(t *testing.T) {
	f := createFlowServiceForTest(t)
	ctx := context.Background()

	attempt := &domain.AuthenticationAttempt{ID: "orphan", Step: domain.StepPinChallenged}
	if err := f.attempts.Create(ctx, attempt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.svc.VerifyPin(ctx, "orphan", "4321"); !errors.Is(err, domain.ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}

	failed, err := f.attempts.FindByID(ctx, "orphan")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if failed.Step != domain.StepFailed {
		t.Errorf("expected terminal step %s, got %s", domain.StepFailed, failed.Step)
	}
}

func TestFlowServiceImpl_VerifyPin_UnknownAttempt(t *testing.T) {
	f := createFlowServiceForTest(t)

	if _, err := f.svc.VerifyPin(context.Background(), "missing", "4321"); !errors.Is(err, domain.ErrAttemptNotFound) {
		t.Fatalf("expected ErrAttemptNotFound, got %v", err)
	}
}

func TestFlowServiceImpl_SetupPin(t *testing.T) {
	f := createFlowServiceForTest(t)
	ctx := context.Background()

	record := happyRecord()
	record.Pin = "" // no PIN supplied with demographics
	if _, err := f.svc.SubmitDemographics(ctx, record, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	redeemed, err := f.svc.RedeemToken(ctx, f.storedToken(t, "john@example.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.svc.VerifyPin(ctx, redeemed.ID, "9999"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials before setup, got %v", err)
	}

	if err := f.svc.SetupPin(ctx, redeemed.ID, "9999"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.svc.VerifyPin(ctx, redeemed.ID, "9999"); err != nil {
		t.Fatalf("expected pin to verify after setup, got %v", err)
	}
}

func TestFlowServiceImpl_CollaboratorPanicIsContained(t *testing.T) {
	f := createFlowServiceForTest(t)
	f.demoSvc.VerifyFunc = func(ctx context.Context, record *domain.DemographicRecord) bool {
		panic("verifier blew up")
	}

	_, err := f.svc.SubmitDemographics(context.Background(), happyRecord(), true)
	if !errors.Is(err, domain.ErrFlowFailed) {
		t.Fatalf("expected the generic flow error, got %v", err)
	}
}
