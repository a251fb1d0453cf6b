package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Demographic verification events
	DemographicsVerifiedEvent AuditEventType = "DEMOGRAPHICS_VERIFIED"
	DemographicsRejectedEvent AuditEventType = "DEMOGRAPHICS_REJECTED"

	// Login-link events
	LoginLinkIssuedEvent       AuditEventType = "LOGIN_LINK_ISSUED"
	TokenRedeemedEvent         AuditEventType = "TOKEN_REDEEMED"
	TokenRedemptionFailedEvent AuditEventType = "TOKEN_REDEMPTION_FAILED"

	// PIN events
	PinConfiguredEvent         AuditEventType = "PIN_CONFIGURED"
	PinVerifiedEvent           AuditEventType = "PIN_VERIFIED"
	PinVerificationFailedEvent AuditEventType = "PIN_VERIFICATION_FAILED"

	// Flow events
	FlowCompletedEvent AuditEventType = "FLOW_COMPLETED"
	FlowFailedEvent    AuditEventType = "FLOW_FAILED"
)

// AuditEvent represents a business event that occurred during a flow
type AuditEvent struct {
	EventType AuditEventType    `json:"event_type"`
	UserID    string            `json:"user_id,omitempty"`
	Email     string            `json:"email,omitempty"`
	AttemptID string            `json:"attempt_id,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	ErrorMsg  string            `json:"error_msg,omitempty"`
	Success   bool              `json:"success"`
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		Timestamp: time.Now().UTC(),
		Metadata:  make(map[string]string),
		Success:   true,
	}
}

// WithError sets error information on the audit event
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithUser sets the user identity fields
func (e *AuditEvent) WithUser(userID, email string) *AuditEvent {
	e.UserID = userID
	e.Email = email
	return e
}

// WithAttempt sets the attempt identifier
func (e *AuditEvent) WithAttempt(attemptID string) *AuditEvent {
	e.AttemptID = attemptID
	return e
}

// WithMetadata adds metadata to the event
func (e *AuditEvent) WithMetadata(key, value string) *AuditEvent {
	e.Metadata[key] = value
	return e
}

// Line renders the event as a single key=value audit log line
func (e *AuditEvent) Line() string {
	var b strings.Builder
	b.WriteString(string(e.EventType))
	if e.UserID != "" {
		fmt.Fprintf(&b, " user_id=%s", e.UserID)
	}
	if e.Email != "" {
		fmt.Fprintf(&b, " email=%s", e.Email)
	}
	if e.AttemptID != "" {
		fmt.Fprintf(&b, " attempt_id=%s", e.AttemptID)
	}
	keys := make([]string, 0, len(e.Metadata))
	for k := range e.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%s", k, e.Metadata[k])
	}
	if e.ErrorMsg != "" {
		fmt.Fprintf(&b, " error=%q", e.ErrorMsg)
	}
	fmt.Fprintf(&b, " success=%t timestamp=%s", e.Success, e.Timestamp.Format(time.RFC3339))
	return b.String()
}
