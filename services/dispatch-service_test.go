package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lce-project/backend/models"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "TestCB",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
	})
}

func TestNotifyClientDispatchPostsPayload(t *testing.T) {
	var received dispatchPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	svc := NewDispatchService(server.Client(), newTestBreaker(), server.URL)
	now := time.Now()
	err := svc.NotifyClientDispatch(context.Background(), &models.Concurrence{
		ID:            "c1",
		ProjectID:     "p1",
		DrawingTitle:  "Pipe Rack GA",
		LinkedPDFName: "pipe-rack.pdf",
		SentAt:        &now,
	})
	require.NoError(t, err)

	assert.Equal(t, "c1", received.ConcurrenceID)
	assert.Equal(t, "Pipe Rack GA", received.DrawingTitle)
	assert.Equal(t, "pipe-rack.pdf", received.PDFName)
}

func TestNotifyClientDispatchPortalError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewDispatchService(server.Client(), newTestBreaker(), server.URL)
	err := svc.NotifyClientDispatch(context.Background(), &models.Concurrence{ID: "c1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestNotifyClientDispatchBreakerOpensAfterFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewDispatchService(server.Client(), newTestBreaker(), server.URL)
	for i := 0; i < 4; i++ {
		_ = svc.NotifyClientDispatch(context.Background(), &models.Concurrence{ID: "c1"})
	}

	// Posle uzastopnih padova kolo je otvoreno i poziv ne stiže do portala
	err := svc.NotifyClientDispatch(context.Background(), &models.Concurrence{ID: "c1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), gobreaker.ErrOpenState.Error())
}

func TestNotifyClientDispatchDisabled(t *testing.T) {
	// Bez konfigurisanog portala slanje je tihi no-op
	svc := NewDispatchService(nil, nil, "")
	require.NoError(t, svc.NotifyClientDispatch(context.Background(), &models.Concurrence{ID: "c1"}))

	var nilSvc *DispatchService
	require.NoError(t, nilSvc.NotifyClientDispatch(context.Background(), &models.Concurrence{ID: "c1"}))
}
