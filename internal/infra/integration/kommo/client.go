package kommo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/xavierca1/cart-recovery/internal/infra/queue"
)

// Client registra no Kommo o que aconteceu com cada follow-up: o time
// comercial enxerga no CRM quais clientes receberam (ou não) os lembretes.
type Client struct {
	apiToken string
	baseURL  string
}

func NewClient() *Client {
	return &Client{
		apiToken: os.Getenv("KOMMO_API_TOKEN"),
		baseURL:  "https://liguemedicina.kommo.com/api/v4",
	}
}

// RecordOutcome acha o contato pelo email e anexa uma nota com o resultado
func (c *Client) RecordOutcome(ctx context.Context, payload queue.OutcomePayload) error {
	if c.apiToken == "" {
		log.Println("⚠️ Kommo: API_TOKEN não configurado")
		return fmt.Errorf("kommo não configurado")
	}

	contactID, err := c.findContactByEmail(ctx, payload.Email)
	if err != nil {
		// Contato fora do CRM não é erro da fila: loga e dá ACK
		log.Printf("📭 Kommo: contato %s não encontrado (%v)", payload.Email, err)
		return nil
	}

	text := fmt.Sprintf("Follow-up carrinho abandonado — passo %d: %s (%s)",
		payload.Sequence, payload.Status, payload.Message)

	noteData := []map[string]interface{}{
		{
			"note_type": "common",
			"params": map[string]string{
				"text": text,
			},
		},
	}

	body, _ := json.Marshal(noteData)
	url := fmt.Sprintf("%s/contacts/%d/notes", c.baseURL, contactID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	c.addAuthHeaders(req)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("erro ao criar nota: %d - %s", resp.StatusCode, string(respBody))
	}

	log.Printf("✅ Kommo: resultado registrado para %s (passo %d, %s)",
		payload.Email, payload.Sequence, payload.Status)
	return nil
}

func (c *Client) findContactByEmail(ctx context.Context, email string) (int, error) {
	url := fmt.Sprintf("%s/contacts?query=%s", c.baseURL, email)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	c.addAuthHeaders(req)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("erro ao buscar contato: %d", resp.StatusCode)
	}

	var result struct {
		Embedded struct {
			Contacts []struct {
				ID int `json:"id"`
			} `json:"contacts"`
		} `json:"_embedded"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return 0, err
	}

	if len(result.Embedded.Contacts) > 0 {
		return result.Embedded.Contacts[0].ID, nil
	}

	return 0, fmt.Errorf("contato não encontrado")
}

func (c *Client) addAuthHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")
}
