package sheets_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lobalabs/lobabot/internal/adapters/sheets"
	"github.com/lobalabs/lobabot/pkg/domain"
)

func TestClient_Submit(t *testing.T) {
	var received map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(200)
	}))
	defer srv.Close()

	client := sheets.NewClient(srv.URL)
	err := client.Submit(context.Background(), &domain.Record{
		Nombre:   "Fido",
		Comuna:   "Providencia",
		Detalle:  "",
		Servicio: domain.ServiceWalks,
		Numero:   "56911112222",
	})
	require.NoError(t, err)

	// All five fields travel, empty ones included.
	assert.Equal(t, map[string]string{
		"nombre":   "Fido",
		"comuna":   "Providencia",
		"detalle":  "",
		"servicio": "Paseos",
		"numero":   "56911112222",
	}, received)
}

func TestClient_Submit_SinkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer srv.Close()

	client := sheets.NewClient(srv.URL)
	err := client.Submit(context.Background(), &domain.Record{Servicio: domain.ServiceTraining})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
