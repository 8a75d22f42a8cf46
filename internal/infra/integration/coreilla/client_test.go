package coreilla

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSendFollowUpPostsMultipartForm - confere os campos do form que o webhook espera
func TestSendFollowUpPostsMultipartForm(t *testing.T) {
	var form map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")

		assert.NoError(t, r.ParseMultipartForm(1<<20))
		form = map[string]string{
			"cart_contents_html": r.FormValue("cart_contents_html"),
			"sequence":           r.FormValue("sequence"),
			"email":              r.FormValue("email"),
			"name":               r.FormValue("name"),
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "queued", "id": "msg-123"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.SendFollowUp(context.Background(), SendFollowUpInput{
		CartContentsHTML: "<table><tr><td>Camisa Azul</td></tr></table>",
		Sequence:         1,
		Email:            "joao@example.com",
		Name:             "João Silva",
	})

	assert.NoError(t, err)
	assert.Equal(t, "queued", resp.Status)
	assert.Equal(t, "msg-123", resp.ID)

	assert.Equal(t, "<table><tr><td>Camisa Azul</td></tr></table>", form["cart_contents_html"])
	assert.Equal(t, "1", form["sequence"])
	assert.Equal(t, "joao@example.com", form["email"])
	assert.Equal(t, "João Silva", form["name"])
}

// TestSendFollowUpAcceptedWithoutID - status presente e id ausente não é erro;
// quem decide o que fazer é o processador
func TestSendFollowUpAcceptedWithoutID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "rate limited"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.SendFollowUp(context.Background(), SendFollowUpInput{Email: "joao@example.com"})

	assert.NoError(t, err)
	assert.Equal(t, "rate limited", resp.Status)
	assert.Empty(t, resp.ID)
}

// TestSendFollowUpMissingStatus - JSON válido sem status é resposta inválida
func TestSendFollowUpMissingStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "msg-123"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.SendFollowUp(context.Background(), SendFollowUpInput{Email: "joao@example.com"})

	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, ErrInvalidResponse))
}

// TestSendFollowUpNonJSONBody - HTML de erro de proxy também é resposta inválida
func TestSendFollowUpNonJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>504 Gateway Timeout</body></html>`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.SendFollowUp(context.Background(), SendFollowUpInput{Email: "joao@example.com"})

	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, ErrInvalidResponse))
}

// TestSendFollowUpEmptyStatusIsValid - vazio presente é diferente de ausente
func TestSendFollowUpEmptyStatusIsValid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": ""}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.SendFollowUp(context.Background(), SendFollowUpInput{Email: "joao@example.com"})

	assert.NoError(t, err)
	assert.Empty(t, resp.Status)
	assert.Empty(t, resp.ID)
}

// TestSendFollowUpTransportError - servidor fora do ar não vira ErrInvalidResponse
func TestSendFollowUpTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL)
	resp, err := client.SendFollowUp(context.Background(), SendFollowUpInput{Email: "joao@example.com"})

	assert.Nil(t, resp)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidResponse))
}
