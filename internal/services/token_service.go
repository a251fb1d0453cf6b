package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/url"

	"github.com/uwcirg/waverify-auth/domain"
)

// User attributes holding the persisted token record. The hashed token is the
// lookup key on redemption.
const (
	NonceAttribute = "auth_nonce"
	TokenAttribute = "auth_token"
)

// LinkConfig holds the fixed segments of the redemption URL
type LinkConfig struct {
	BaseURL     string
	Realm       string
	ClientID    string
	RedirectURI string
}

// TokenServiceImpl implements domain.TokenService. Nonces come from a CSPRNG;
// hashed tokens are verified by recomputation, never by reversal.
type TokenServiceImpl struct {
	userRepo domain.UserRepository
	links    LinkConfig
}

// NewTokenService creates a new login-link token service
func NewTokenService(userRepo domain.UserRepository, links LinkConfig) domain.TokenService {
	return &TokenServiceImpl{
		userRepo: userRepo,
		links:    links,
	}
}

// GenerateNonce implements domain.TokenService. It returns a 128-bit random
// value, base64url-encoded without padding.
func (s *TokenServiceImpl) GenerateNonce() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashToken implements domain.TokenService. It computes SHA-256 over the UTF-8
// bytes of "userID:nonce" and returns base64url without padding. Deterministic:
// identical inputs always yield identical output.
func (s *TokenServiceImpl) HashToken(userID, nonce string) string {
	sum := sha256.Sum256([]byte(userID + ":" + nonce))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// EnsureToken implements domain.TokenService. If the user already carries both
// token attributes they are returned unchanged with no writes. Otherwise a new
// nonce/hash pair is minted and persisted. Concurrent first-time callers may
// each write a pair; last write wins and only the stored hash stays redeemable.
func (s *TokenServiceImpl) EnsureToken(ctx context.Context, userID string) (*domain.TokenRecord, error) {
	nonce, err := s.userRepo.GetAttribute(ctx, userID, NonceAttribute)
	if err != nil {
		return nil, fmt.Errorf("failed to read nonce attribute: %w", err)
	}
	hashed, err := s.userRepo.GetAttribute(ctx, userID, TokenAttribute)
	if err != nil {
		return nil, fmt.Errorf("failed to read token attribute: %w", err)
	}
	if nonce != "" && hashed != "" {
		return &domain.TokenRecord{Nonce: nonce, HashedToken: hashed}, nil
	}

	nonce, err = s.GenerateNonce()
	if err != nil {
		return nil, err
	}
	hashed = s.HashToken(userID, nonce)

	if err := s.userRepo.SetAttribute(ctx, userID, NonceAttribute, nonce); err != nil {
		return nil, fmt.Errorf("failed to store nonce attribute: %w", err)
	}
	if err := s.userRepo.SetAttribute(ctx, userID, TokenAttribute, hashed); err != nil {
		return nil, fmt.Errorf("failed to store token attribute: %w", err)
	}

	return &domain.TokenRecord{Nonce: nonce, HashedToken: hashed}, nil
}

// BuildRedemptionURL implements domain.TokenService using the configured link
// segments.
func (s *TokenServiceImpl) BuildRedemptionURL(hashedToken string) string {
	return RedemptionURL(s.links.BaseURL, s.links.Realm, s.links.ClientID, s.links.RedirectURI, hashedToken)
}

// RedemptionURL formats the login-link URL. Pure string formatting, no I/O;
// every templated segment is percent-encoded.
func RedemptionURL(baseURL, realm, clientID, redirectURI, hashedToken string) string {
	return fmt.Sprintf(
		"%srealms/%s/protocol/openid-connect/auth?response_type=code&client_id=%s&redirect_uri=%s&user_token=%s",
		baseURL,
		url.QueryEscape(realm),
		url.QueryEscape(clientID),
		url.QueryEscape(redirectURI),
		url.QueryEscape(hashedToken),
	)
}
