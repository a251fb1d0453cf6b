package auth

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/uwcirg/waverify-auth/domain"
)

// SessionTokenServiceImpl implements domain.SessionTokenService. Tokens are
// issued only after a flow reaches its success step.
type SessionTokenServiceImpl struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
}

// NewSessionTokenService creates a new session token service
func NewSessionTokenService(secretKey string, issuer string, ttl time.Duration) domain.SessionTokenService {
	return &SessionTokenServiceImpl{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		ttl:       ttl,
	}
}

// generateJTI creates a unique JWT ID
func (j *SessionTokenServiceImpl) generateJTI() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// Generate implements domain.SessionTokenService
func (j *SessionTokenServiceImpl) Generate(userID, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"iss":   j.issuer,
		"iat":   now.Unix(),
		"exp":   now.Add(j.ttl).Unix(),
		"jti":   j.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// Validate implements domain.SessionTokenService
func (j *SessionTokenServiceImpl) Validate(tokenString string) (*domain.SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return j.secretKey, nil
	})

	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, domain.ErrTokenExpired
	}

	sessionClaims := &domain.SessionClaims{
		UserID:    sub,
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}
	if email, ok := claims["email"].(string); ok {
		sessionClaims.Email = email
	}

	return sessionClaims, nil
}
