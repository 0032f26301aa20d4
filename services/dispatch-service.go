package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"lce-project/backend/models"

	"github.com/sony/gobreaker"
)

// DispatchService javlja klijentskom portalu da je crtež poslat. Poziv ide
// kroz circuit breaker da ispadi portala ne zadržavaju tok rada.
type DispatchService struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	portalURL  string
}

func NewDispatchService(httpClient *http.Client, breaker *gobreaker.CircuitBreaker, portalURL string) *DispatchService {
	return &DispatchService{
		httpClient: httpClient,
		breaker:    breaker,
		portalURL:  portalURL,
	}
}

type dispatchPayload struct {
	ConcurrenceID string    `json:"concurrenceId"`
	ProjectID     string    `json:"projectId"`
	DrawingTitle  string    `json:"drawingTitle"`
	PDFName       string    `json:"pdfName,omitempty"`
	SentAt        time.Time `json:"sentAt"`
}

func (s *DispatchService) NotifyClientDispatch(ctx context.Context, concurrence *models.Concurrence) error {
	if s == nil || s.portalURL == "" {
		return nil
	}

	payload := dispatchPayload{
		ConcurrenceID: concurrence.ID,
		ProjectID:     concurrence.ProjectID,
		DrawingTitle:  concurrence.DrawingTitle,
		PDFName:       concurrence.LinkedPDFName,
	}
	if concurrence.SentAt != nil {
		payload.SentAt = *concurrence.SentAt
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode dispatch payload: %v", err)
	}

	_, err = s.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.portalURL, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
			return nil, fmt.Errorf("client portal returned status %d", resp.StatusCode)
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("client portal dispatch failed: %v", err)
	}
	return nil
}
