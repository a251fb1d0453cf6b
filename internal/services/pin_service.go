package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/uwcirg/waverify-auth/domain"
)

// PinServiceImpl implements domain.PinService against the external credential
// store. Registration writes; verification only reads.
type PinServiceImpl struct {
	credRepo domain.CredentialRepository
}

// NewPinService creates a new PIN credential service
func NewPinService(credRepo domain.CredentialRepository) domain.PinService {
	return &PinServiceImpl{credRepo: credRepo}
}

// CreatePin implements domain.PinService. It wraps the PIN in secret data,
// stamps the creation time and assigns the PIN type tag.
func (s *PinServiceImpl) CreatePin(userID, pin string) (*domain.Credential, error) {
	if pin == "" {
		return nil, fmt.Errorf("pin must not be empty: %w", domain.ErrInvalidInput)
	}

	secret, err := json.Marshal(domain.PinSecretData{Pin: pin})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize pin secret data: %w", err)
	}

	return &domain.Credential{
		ID:         uuid.NewString(),
		UserID:     userID,
		Type:       domain.CredentialTypePin,
		SecretData: string(secret),
		CreatedAt:  time.Now(),
	}, nil
}

// StoreOrUpdate implements domain.PinService. If a PIN credential already
// exists its secret data is overwritten in place, so exactly one PIN
// credential stays current per user. Last write wins under concurrent
// registration.
func (s *PinServiceImpl) StoreOrUpdate(ctx context.Context, userID, pin string) error {
	cred, err := s.CreatePin(userID, pin)
	if err != nil {
		return err
	}

	existing, err := s.credRepo.FindByType(ctx, userID, domain.CredentialTypePin)
	if err != nil {
		return fmt.Errorf("failed to look up pin credential: %w", err)
	}

	if len(existing) > 0 {
		current := existing[0]
		current.SecretData = cred.SecretData
		return s.credRepo.Update(ctx, current)
	}

	return s.credRepo.Create(ctx, cred)
}

// IsConfigured implements domain.PinService
func (s *PinServiceImpl) IsConfigured(ctx context.Context, userID string) (bool, error) {
	existing, err := s.credRepo.FindByType(ctx, userID, domain.CredentialTypePin)
	if err != nil {
		return false, fmt.Errorf("failed to look up pin credential: %w", err)
	}
	return len(existing) > 0, nil
}

// Verify implements domain.PinService. It fails closed: a blank submission,
// a missing credential or undecodable secret data all verify as false.
// The stored PIN is compared by exact string equality.
func (s *PinServiceImpl) Verify(ctx context.Context, userID, submitted string) bool {
	if submitted == "" {
		return false
	}

	existing, err := s.credRepo.FindByType(ctx, userID, domain.CredentialTypePin)
	if err != nil || len(existing) == 0 {
		return false
	}

	var secret domain.PinSecretData
	if err := json.Unmarshal([]byte(existing[0].SecretData), &secret); err != nil {
		log.Printf("PIN_SECRET_DECODE_FAILED: user_id=%s credential_id=%s error=%v", userID, existing[0].ID, err)
		return false
	}

	return secret.Pin == submitted
}
