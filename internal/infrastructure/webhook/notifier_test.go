package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/pkg/config"
	"github.com/jhoicas/stockledger-api/pkg/logger"
)

func sampleItems() []dto.BalanceResponse {
	return []dto.BalanceResponse{
		{ID: "B1", ProductID: "P1", ProductSKU: "CAM-01", LocationID: "L1", Quantity: 2, MinStock: 5},
	}
}

func TestNotifier_EnviaPayloadConToken(t *testing.T) {
	var (
		gotAuth    string
		gotPayload LowStockPayload
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewNotifier(config.AlertsConfig{WebhookURL: srv.URL, WebhookToken: "s3cr3t", WebhookTimeout: 2 * time.Second})
	fixed := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)
	n.now = func() time.Time { return fixed }

	err := n.NotifyLowStock(context.Background(), sampleItems())

	require.NoError(t, err)
	assert.Equal(t, "Bearer s3cr3t", gotAuth)
	assert.Equal(t, eventLowStock, gotPayload.Event)
	assert.Equal(t, 1, gotPayload.Total)
	assert.True(t, fixed.Equal(gotPayload.GeneratedAt))
	require.Len(t, gotPayload.Items, 1)
	assert.Equal(t, "CAM-01", gotPayload.Items[0].ProductSKU)
}

func TestNotifier_SinToken_NoEnviaAuthorization(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewNotifier(config.AlertsConfig{WebhookURL: srv.URL, WebhookTimeout: time.Second})

	require.NoError(t, n.NotifyLowStock(context.Background(), sampleItems()))
	assert.Empty(t, gotAuth)
}

func TestNotifier_StatusError_RetornaError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "caído", http.StatusBadGateway)
	}))
	defer srv.Close()

	n := NewNotifier(config.AlertsConfig{WebhookURL: srv.URL, WebhookTimeout: time.Second})

	err := n.NotifyLowStock(context.Background(), sampleItems())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestLogNotifier_NoFalla(t *testing.T) {
	n := NewLogNotifier(logger.Nop())
	assert.NoError(t, n.NotifyLowStock(context.Background(), sampleItems()))
}
