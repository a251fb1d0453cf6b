package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/uwcirg/waverify-auth/domain"
)

const loginEmailSubject = "International Patient Summary Prototype"

// DateOfBirthAttribute is the user attribute carrying the verified birth date
const DateOfBirthAttribute = "dateOfBirth"

// FlowServiceImpl implements domain.FlowService. The engine itself is
// stateless and re-entrant; all mutable state lives in the attempt store and
// the external user/credential store.
type FlowServiceImpl struct {
	userRepo    domain.UserRepository
	attemptRepo domain.AttemptRepository
	tokenSvc    domain.TokenService
	pinSvc      domain.PinService
	demoSvc     domain.DemographicService
	notifySvc   domain.NotificationService
	sessionSvc  domain.SessionTokenService
	sessionTTL  time.Duration
}

// NewFlowService creates a new authentication flow engine
func NewFlowService(
	userRepo domain.UserRepository,
	attemptRepo domain.AttemptRepository,
	tokenSvc domain.TokenService,
	pinSvc domain.PinService,
	demoSvc domain.DemographicService,
	notifySvc domain.NotificationService,
	sessionSvc domain.SessionTokenService,
	sessionTTL time.Duration,
) domain.FlowService {
	return &FlowServiceImpl{
		userRepo:    userRepo,
		attemptRepo: attemptRepo,
		tokenSvc:    tokenSvc,
		pinSvc:      pinSvc,
		demoSvc:     demoSvc,
		notifySvc:   notifySvc,
		sessionSvc:  sessionSvc,
		sessionTTL:  sessionTTL,
	}
}

// SubmitDemographics implements domain.FlowService. On a validation or
// verification failure the attempt stays in the start step so the caller can
// re-challenge; on success the user is provisioned, a login link is emailed
// and the attempt advances to link_issued.
func (s *FlowServiceImpl) SubmitDemographics(ctx context.Context, record *domain.DemographicRecord, consent bool) (attempt *domain.AuthenticationAttempt, err error) {
	attempt = &domain.AuthenticationAttempt{
		ID:        uuid.NewString(),
		Step:      domain.StepStart,
		CreatedAt: time.Now(),
	}
	if createErr := s.attemptRepo.Create(ctx, attempt); createErr != nil {
		return nil, fmt.Errorf("failed to create attempt: %w", createErr)
	}
	defer s.recoverToFailed(ctx, &attempt, &err)

	// Local pre-validation short-circuits before any network call.
	if !demographicsComplete(record) {
		log.Printf("%s", domain.NewAuditEvent(domain.DemographicsRejectedEvent).
			WithAttempt(attempt.ID).WithError(domain.ErrInvalidInput).Line())
		return attempt, domain.ErrInvalidInput
	}
	if !consent {
		log.Printf("%s", domain.NewAuditEvent(domain.DemographicsRejectedEvent).
			WithAttempt(attempt.ID).WithError(domain.ErrConsentRequired).Line())
		return attempt, domain.ErrConsentRequired
	}

	if !s.demoSvc.Verify(ctx, record) {
		log.Printf("%s", domain.NewAuditEvent(domain.DemographicsRejectedEvent).
			WithAttempt(attempt.ID).WithError(domain.ErrVerificationRejected).Line())
		return attempt, domain.ErrVerificationRejected
	}

	attempt.Step = domain.StepDemographicCollected
	attempt.ConsentGiven = true

	user, err := s.provisionUser(ctx, record)
	if err != nil {
		return s.failAttempt(ctx, attempt, err)
	}
	log.Printf("%s", domain.NewAuditEvent(domain.DemographicsVerifiedEvent).
		WithUser(user.ID, user.Email).WithAttempt(attempt.ID).Line())

	// A PIN supplied with the demographics is registered in the same step.
	if record.Pin != "" {
		if err := s.pinSvc.StoreOrUpdate(ctx, user.ID, record.Pin); err != nil {
			return s.failAttempt(ctx, attempt, err)
		}
		log.Printf("%s", domain.NewAuditEvent(domain.PinConfiguredEvent).
			WithUser(user.ID, user.Email).WithAttempt(attempt.ID).Line())
	}

	token, err := s.tokenSvc.EnsureToken(ctx, user.ID)
	if err != nil {
		return s.failAttempt(ctx, attempt, err)
	}

	link := s.tokenSvc.BuildRedemptionURL(token.HashedToken)
	if err := s.notifySvc.SendEmail(user.Email, loginEmailSubject, loginEmailBody(user, link)); err != nil {
		// Delivery is external; a send failure is logged, not fatal to the flow.
		log.Printf("LOGIN_EMAIL_SEND_FAILED: user_id=%s email=%s error=%v", user.ID, user.Email, err)
	}

	attempt.Step = domain.StepLinkIssued
	attempt.UserID = user.ID
	attempt.Email = user.Email
	if err := s.attemptRepo.Save(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to save attempt: %w", err)
	}

	log.Printf("%s", domain.NewAuditEvent(domain.LoginLinkIssuedEvent).
		WithUser(user.ID, user.Email).WithAttempt(attempt.ID).Line())
	return attempt, nil
}

// RedeemToken implements domain.FlowService. Redemption happens in a fresh
// session reached through the emailed link, so it opens a new attempt. A
// missing or unmatched token terminates the attempt; there is no retry path
// inside the session.
func (s *FlowServiceImpl) RedeemToken(ctx context.Context, token string) (attempt *domain.AuthenticationAttempt, err error) {
	attempt = &domain.AuthenticationAttempt{
		ID:        uuid.NewString(),
		Step:      domain.StepStart,
		CreatedAt: time.Now(),
	}
	if createErr := s.attemptRepo.Create(ctx, attempt); createErr != nil {
		return nil, fmt.Errorf("failed to create attempt: %w", createErr)
	}
	defer s.recoverToFailed(ctx, &attempt, &err)

	if strings.TrimSpace(token) == "" {
		log.Printf("%s", domain.NewAuditEvent(domain.TokenRedemptionFailedEvent).
			WithAttempt(attempt.ID).WithError(domain.ErrInvalidCredentials).Line())
		if _, err := s.failAttempt(ctx, attempt, nil); err != nil {
			return nil, err
		}
		return attempt, domain.ErrInvalidCredentials
	}

	user, findErr := s.userRepo.FindByAttribute(ctx, TokenAttribute, token)
	if findErr != nil || user == nil {
		log.Printf("%s", domain.NewAuditEvent(domain.TokenRedemptionFailedEvent).
			WithAttempt(attempt.ID).WithError(domain.ErrUnknownUser).Line())
		if _, err := s.failAttempt(ctx, attempt, nil); err != nil {
			return nil, err
		}
		return attempt, domain.ErrUnknownUser
	}

	attempt.Step = domain.StepTokenRedeemed
	attempt.UserID = user.ID
	attempt.Email = user.Email
	if err := s.attemptRepo.Save(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to save attempt: %w", err)
	}

	log.Printf("%s", domain.NewAuditEvent(domain.TokenRedeemedEvent).
		WithUser(user.ID, user.Email).WithAttempt(attempt.ID).Line())
	return attempt, nil
}

// SetupPin implements domain.FlowService. It registers or replaces the PIN
// credential for the identified user of a redeemed attempt.
func (s *FlowServiceImpl) SetupPin(ctx context.Context, attemptID, pin string) error {
	attempt, err := s.attemptRepo.FindByID(ctx, attemptID)
	if err != nil {
		return err
	}
	if attempt.UserID == "" {
		return domain.ErrUnknownUser
	}
	if attempt.Step != domain.StepTokenRedeemed && attempt.Step != domain.StepPinChallenged {
		return domain.ErrStepNotAllowed
	}

	if err := s.pinSvc.StoreOrUpdate(ctx, attempt.UserID, pin); err != nil {
		return err
	}
	log.Printf("%s", domain.NewAuditEvent(domain.PinConfiguredEvent).
		WithUser(attempt.UserID, attempt.Email).WithAttempt(attempt.ID).Line())
	return nil
}

// VerifyPin implements domain.FlowService. A mismatch keeps the attempt in
// the pin challenge step so it can be re-presented; a match completes the
// flow and issues a session token.
func (s *FlowServiceImpl) VerifyPin(ctx context.Context, attemptID, pin string) (result *domain.FlowResult, err error) {
	attempt, err := s.attemptRepo.FindByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	defer s.recoverToFailed(ctx, &attempt, &err)

	// Both redemption and the PIN challenge require an identified user.
	if attempt.UserID == "" {
		if _, err := s.failAttempt(ctx, attempt, nil); err != nil {
			return nil, err
		}
		return nil, domain.ErrUnknownUser
	}
	if attempt.Step != domain.StepTokenRedeemed && attempt.Step != domain.StepPinChallenged {
		return nil, domain.ErrStepNotAllowed
	}

	attempt.Step = domain.StepPinChallenged
	if err := s.attemptRepo.Save(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to save attempt: %w", err)
	}

	if !s.pinSvc.Verify(ctx, attempt.UserID, pin) {
		log.Printf("%s", domain.NewAuditEvent(domain.PinVerificationFailedEvent).
			WithUser(attempt.UserID, attempt.Email).WithAttempt(attempt.ID).Line())
		return nil, domain.ErrInvalidCredentials
	}

	user, findErr := s.userRepo.FindByID(ctx, attempt.UserID)
	if findErr != nil {
		return s.failResult(ctx, attempt, findErr)
	}

	sessionToken, genErr := s.sessionSvc.Generate(user.ID, user.Email)
	if genErr != nil {
		return s.failResult(ctx, attempt, genErr)
	}

	attempt.Step = domain.StepSuccess
	if err := s.attemptRepo.Save(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to save attempt: %w", err)
	}

	log.Printf("%s", domain.NewAuditEvent(domain.PinVerifiedEvent).
		WithUser(user.ID, user.Email).WithAttempt(attempt.ID).Line())
	log.Printf("%s", domain.NewAuditEvent(domain.FlowCompletedEvent).
		WithUser(user.ID, user.Email).WithAttempt(attempt.ID).Line())

	return &domain.FlowResult{
		User:         user,
		SessionToken: sessionToken,
		ExpiresIn:    int64(s.sessionTTL.Seconds()),
	}, nil
}

// provisionUser resolves a user by exact email match, creating one if absent,
// and copies the verified demographic fields onto the entity.
func (s *FlowServiceImpl) provisionUser(ctx context.Context, record *domain.DemographicRecord) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, record.Email)
	if err != nil && err != domain.ErrUnknownUser {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	if user == nil {
		user = &domain.User{
			ID:            uuid.NewString(),
			Email:         record.Email,
			Enabled:       true,
			EmailVerified: true,
			CreatedAt:     time.Now(),
		}
		user.FirstName = record.FirstName
		user.LastName = record.LastName
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	} else {
		user.FirstName = record.FirstName
		user.LastName = record.LastName
		user.Enabled = true
		user.EmailVerified = true
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	if err := s.userRepo.SetAttribute(ctx, user.ID, DateOfBirthAttribute, record.DateOfBirth); err != nil {
		return nil, fmt.Errorf("failed to store date of birth: %w", err)
	}

	return user, nil
}

// failAttempt moves the attempt into the failed step. When cause is non-nil
// the detail is logged internally and the caller gets the generic flow error.
func (s *FlowServiceImpl) failAttempt(ctx context.Context, attempt *domain.AuthenticationAttempt, cause error) (*domain.AuthenticationAttempt, error) {
	attempt.Step = domain.StepFailed
	if err := s.attemptRepo.Save(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to save attempt: %w", err)
	}
	if cause == nil {
		return attempt, nil
	}
	log.Printf("%s", domain.NewAuditEvent(domain.FlowFailedEvent).
		WithAttempt(attempt.ID).WithError(cause).Line())
	return attempt, domain.ErrFlowFailed
}

func (s *FlowServiceImpl) failResult(ctx context.Context, attempt *domain.AuthenticationAttempt, cause error) (*domain.FlowResult, error) {
	if _, err := s.failAttempt(ctx, attempt, cause); err != nil && err != domain.ErrFlowFailed {
		return nil, err
	}
	return nil, domain.ErrFlowFailed
}

// recoverToFailed converts a collaborator panic into a terminal failed attempt
// with an internally logged detail. Callers never see the panic value.
func (s *FlowServiceImpl) recoverToFailed(ctx context.Context, attempt **domain.AuthenticationAttempt, err *error) {
	r := recover()
	if r == nil {
		return
	}
	a := *attempt
	if a != nil {
		a.Step = domain.StepFailed
		if saveErr := s.attemptRepo.Save(ctx, a); saveErr != nil {
			log.Printf("ATTEMPT_SAVE_FAILED: attempt_id=%s error=%v", a.ID, saveErr)
		}
		log.Printf("%s", domain.NewAuditEvent(domain.FlowFailedEvent).
			WithAttempt(a.ID).WithMetadata("panic", fmt.Sprint(r)).WithError(domain.ErrFlowFailed).Line())
	}
	*err = domain.ErrFlowFailed
}

// demographicsComplete reports whether every required demographic field is
// present and non-blank.
func demographicsComplete(record *domain.DemographicRecord) bool {
	if record == nil {
		return false
	}
	for _, field := range []string{record.FirstName, record.LastName, record.DateOfBirth, record.Email} {
		if strings.TrimSpace(field) == "" {
			return false
		}
	}
	return true
}

func loginEmailBody(user *domain.User, link string) string {
	return fmt.Sprintf(
		"Hello %s,\n\n"+
			"Your identity has been verified. Use the link below to continue signing in:\n\n"+
			"%s\n\n"+
			"If you did not request this email, please ignore it.\n",
		user.FirstName, link)
}
