package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/uwcirg/waverify-auth/domain"
	"github.com/uwcirg/waverify-auth/internal/mocks"
)

func setupGuardedRouter(sessionSvc *mocks.MockSessionTokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", SessionMiddleware(sessionSvc), func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return r
}

func TestSessionMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		header         string
		setupMocks     func(sessionSvc *mocks.MockSessionTokenService)
		expectedStatus int
	}{
		{
			name:   "valid bearer token",
			header: "Bearer good-token",
			setupMocks: func(sessionSvc *mocks.MockSessionTokenService) {
				sessionSvc.ValidateFunc = func(token string) (*domain.SessionClaims, error) {
					if token != "good-token" {
						return nil, domain.ErrTokenInvalid
					}
					return &domain.SessionClaims{UserID: "user-1", Email: "john@example.com"}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing header",
			header:         "",
			setupMocks:     func(sessionSvc *mocks.MockSessionTokenService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed header",
			header:         "Token abc",
			setupMocks:     func(sessionSvc *mocks.MockSessionTokenService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "expired token",
			header: "Bearer stale",
			setupMocks: func(sessionSvc *mocks.MockSessionTokenService) {
				sessionSvc.ValidateFunc = func(token string) (*domain.SessionClaims, error) {
					return nil, domain.ErrTokenExpired
				}
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "invalid token",
			header: "Bearer forged",
			setupMocks: func(sessionSvc *mocks.MockSessionTokenService) {
				sessionSvc.ValidateFunc = func(token string) (*domain.SessionClaims, error) {
					return nil, domain.ErrTokenInvalid
				}
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessionSvc := mocks.NewMockSessionTokenService()
			tt.setupMocks(sessionSvc)
			r := setupGuardedRouter(sessionSvc)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestSessionMiddleware_SetsContextValues(t *testing.T) {
	sessionSvc := mocks.NewMockSessionTokenService()
	sessionSvc.ValidateFunc = func(token string) (*domain.SessionClaims, error) {
		return &domain.SessionClaims{UserID: "user-1", Email: "john@example.com"}, nil
	}
	r := setupGuardedRouter(sessionSvc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}
