package coreilla

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"
)

// ErrInvalidResponse: o corpo não é JSON ou não tem o campo status.
// Nunca vira pânico; o processador traduz para resultado "failed".
var ErrInvalidResponse = errors.New("resposta do webhook fora do formato esperado")

type Client struct {
	webhookURL string
	http       *http.Client
}

func NewClient(webhookURL string) *Client {
	return &Client{
		webhookURL: webhookURL,
		http:       &http.Client{Timeout: 15 * time.Second},
	}
}

// SendFollowUp posta o form multipart (cart_contents_html, sequence, email,
// name) e interpreta a resposta
func (c *Client) SendFollowUp(ctx context.Context, input SendFollowUpInput) (*FollowUpResponse, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	fields := map[string]string{
		"cart_contents_html": input.CartContentsHTML,
		"sequence":           strconv.Itoa(input.Sequence),
		"email":              input.Email,
		"name":               input.Name,
	}
	for key, value := range fields {
		if err := form.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("erro ao montar form: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("erro ao fechar form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro request coreilla: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta coreilla: %w", err)
	}

	return parseResponse(body)
}

// parseResponse valida o shape estrutural da resposta. Campos ausentes são
// distinguidos de vazios pelos ponteiros; status ausente invalida o corpo.
func parseResponse(body []byte) (*FollowUpResponse, error) {
	var raw struct {
		Status *string `json:"status"`
		ID     *string `json:"id"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, ErrInvalidResponse
	}
	if raw.Status == nil {
		return nil, ErrInvalidResponse
	}

	out := &FollowUpResponse{Status: *raw.Status}
	if raw.ID != nil {
		out.ID = *raw.ID
	}
	return out, nil
}
