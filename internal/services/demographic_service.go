package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/uwcirg/waverify-auth/domain"
)

// DemographicServiceImpl implements domain.DemographicService by calling the
// external verification provider. Every failure mode degrades to "not
// verified"; ambiguous verification is never treated as success.
type DemographicServiceImpl struct {
	client  *http.Client
	baseURL string
}

// NewDemographicService creates a new demographic verification service.
// The timeout bounds the outbound verification call; a timed-out call counts
// as a verification failure, not as a retryable fault.
func NewDemographicService(baseURL string, timeout time.Duration) domain.DemographicService {
	return &DemographicServiceImpl{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// Verify implements domain.DemographicService. The record is serialized as a
// flat string-to-string JSON object and POSTed to the configured provider; a
// 200 response with a boolean "valid" field decides the verdict.
func (s *DemographicServiceImpl) Verify(ctx context.Context, record *domain.DemographicRecord) bool {
	if record == nil {
		return false
	}

	payload := map[string]string{
		"firstName":   record.FirstName,
		"lastName":    record.LastName,
		"dateOfBirth": record.DateOfBirth,
		"email":       record.Email,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("DEMOGRAPHIC_VERIFY_ENCODE_FAILED: error=%v", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		log.Printf("DEMOGRAPHIC_VERIFY_REQUEST_FAILED: error=%v", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("DEMOGRAPHIC_VERIFY_TRANSPORT_FAILED: error=%v", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("DEMOGRAPHIC_VERIFY_BAD_STATUS: status=%d", resp.StatusCode)
		return false
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("DEMOGRAPHIC_VERIFY_READ_FAILED: error=%v", err)
		return false
	}

	var verdict struct {
		Valid *bool `json:"valid"`
	}
	if err := json.Unmarshal(data, &verdict); err != nil || verdict.Valid == nil {
		log.Printf("DEMOGRAPHIC_VERIFY_MALFORMED_RESPONSE: body=%q", data)
		return false
	}

	return *verdict.Valid
}
