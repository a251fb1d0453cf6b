package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uwcirg/waverify-auth/domain"
)

// AuthHandlers handles the authentication flow HTTP requests
type AuthHandlers struct {
	flowSvc    domain.FlowService
	sessionSvc domain.SessionTokenService
	userRepo   domain.UserRepository
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(flowSvc domain.FlowService, sessionSvc domain.SessionTokenService, userRepo domain.UserRepository) *AuthHandlers {
	return &AuthHandlers{
		flowSvc:    flowSvc,
		sessionSvc: sessionSvc,
		userRepo:   userRepo,
	}
}

// DemographicsRequest represents the demographic submission request
type DemographicsRequest struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	DateOfBirth string `json:"dateOfBirth" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Pin         string `json:"pin,omitempty"`
	Consent     bool   `json:"consent"`
}

// PinRequest represents a PIN submission against an existing attempt
type PinRequest struct {
	AttemptID string `json:"attempt_id" binding:"required"`
	Pin       string `json:"pin" binding:"required"`
}

// SubmitDemographics handles the start of an authentication flow
func (h *AuthHandlers) SubmitDemographics(c *gin.Context) {
	var req DemographicsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record := &domain.DemographicRecord{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		Email:       req.Email,
		Pin:         req.Pin,
	}

	attempt, err := h.flowSvc.SubmitDemographics(c.Request.Context(), record, req.Consent)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid demographics"})
		case domain.ErrConsentRequired:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Consent is required"})
		case domain.ErrVerificationRejected:
			// Deliberately vague: the caller must not learn which field failed
			c.JSON(http.StatusUnauthorized, gin.H{"error": "We could not verify the information provided"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message":    "If the information could be verified, a login link has been sent",
			"attempt_id": attempt.ID,
		},
	})
}

// RedeemToken handles a login-link click
func (h *AuthHandlers) RedeemToken(c *gin.Context) {
	token := c.Query("user_token")

	attempt, err := h.flowSvc.RedeemToken(c.Request.Context(), token)
	if err != nil {
		switch err {
		case domain.ErrInvalidCredentials, domain.ErrUnknownUser:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or unknown login link"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message":    "Login link accepted, PIN required",
			"attempt_id": attempt.ID,
		},
	})
}

// SetupPin handles PIN registration mid-flow
func (h *AuthHandlers) SetupPin(c *gin.Context) {
	var req PinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.flowSvc.SetupPin(c.Request.Context(), req.AttemptID, req.Pin); err != nil {
		switch err {
		case domain.ErrAttemptNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown authentication attempt"})
		case domain.ErrStepNotAllowed:
			c.JSON(http.StatusConflict, gin.H{"error": "PIN setup is not allowed at this point"})
		case domain.ErrUnknownUser:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication failed"})
		case domain.ErrInvalidInput:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid PIN"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "PIN registered",
		},
	})
}

// VerifyPin handles the PIN challenge and completes the flow
func (h *AuthHandlers) VerifyPin(c *gin.Context) {
	var req PinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.flowSvc.VerifyPin(c.Request.Context(), req.AttemptID, req.Pin)
	if err != nil {
		switch err {
		case domain.ErrAttemptNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown authentication attempt"})
		case domain.ErrStepNotAllowed:
			c.JSON(http.StatusConflict, gin.H{"error": "PIN verification is not allowed at this point"})
		case domain.ErrInvalidCredentials:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		case domain.ErrUnknownUser:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication failed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"session_token": result.SessionToken,
			"token_type":    "Bearer",
			"expires_in":    result.ExpiresIn,
			"user": gin.H{
				"id":    result.User.ID,
				"email": result.User.Email,
			},
		},
	})
}

// Session returns the profile behind a valid session token (requires auth)
func (h *AuthHandlers) Session(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	user, err := h.userRepo.FindByID(c.Request.Context(), userID.(string))
	if err != nil {
		if err == domain.ErrUnknownUser {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"id":             user.ID,
			"email":          user.Email,
			"first_name":     user.FirstName,
			"last_name":      user.LastName,
			"enabled":        user.Enabled,
			"email_verified": user.EmailVerified,
			"created_at":     user.CreatedAt,
			"updated_at":     user.UpdatedAt,
		},
	})
}
