package aigen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Dejatori/amaluz-proyecto-betek/internal/pkg/httpclient"
)

func chatServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, defaultModel, req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)

		resp := chatResponse{}
		resp.Choices = append(resp.Choices, struct {
			Message chatMessage `json:"message"`
		}{Message: chatMessage{Role: "assistant", Content: reply}})
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func newTestTextClient(endpoint string) *TextClient {
	return NewTextClient(httpclient.NewClient(noop.NewTracerProvider().Tracer("test")), endpoint)
}

func TestInferGender(t *testing.T) {
	cases := []struct {
		reply string
		want  string
	}{
		{"Masculino", "Masculino"},
		{"Femenino.", "Femenino"},
		{"El nombre corresponde a una mujer.", "Femenino"},
		{"Es un nombre de hombre en la mayoría de los casos.", "Masculino"},
		{"No es posible determinarlo.", "Otro"},
	}
	for _, tc := range cases {
		srv := chatServer(t, tc.reply)
		got, err := newTestTextClient(srv.URL).InferGender(context.Background(), "Alex")
		srv.Close()
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "reply %q", tc.reply)
	}
}

func TestProductNameTrimsTrailingDot(t *testing.T) {
	srv := chatServer(t, "  Bruma de Lavanda. ")
	defer srv.Close()

	got, err := newTestTextClient(srv.URL).ProductName(context.Background(), "Velas Aromáticas", "Lavanda")
	require.NoError(t, err)
	assert.Equal(t, "Bruma de Lavanda", got)
}

func TestCompleteRejectsEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := newTestTextClient(srv.URL).DeliveryNotes(context.Background())
	assert.Error(t, err)
}

func TestCompleteSurfacesHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestTextClient(srv.URL).LocationDescription(context.Background())
	assert.Error(t, err)
}
