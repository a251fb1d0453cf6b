package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/uwcirg/waverify-auth/domain"
)

// AuthMW wraps the session token service for route guards
type AuthMW struct {
	sessionSvc domain.SessionTokenService
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(sessionSvc domain.SessionTokenService) *AuthMW {
	return &AuthMW{sessionSvc: sessionSvc}
}

// WithSession returns the session guard middleware function
func (mw *AuthMW) WithSession() gin.HandlerFunc {
	return SessionMiddleware(mw.sessionSvc)
}
