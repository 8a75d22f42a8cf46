package coreforce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/xavierca1/cart-recovery/internal/entity"
)

// Client fala com a loja (coreforce): lista de contatos e carrinhos
// abandonados. Somente leitura — quem escreve no banco são os usecases.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		// Export de contatos pode ser grande
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// GetContacts busca a lista completa de contatos. Com checkAuth, valida as
// credenciais antes para distinguir "temos acesso e a lista está vazia" de
// "fomos barrados".
func (c *Client) GetContacts(ctx context.Context, checkAuth bool) ([]entity.Contact, error) {
	if checkAuth {
		if err := c.verifyCredentials(ctx); err != nil {
			return nil, fmt.Errorf("coreforce recusou as credenciais: %w", err)
		}
	}

	var response contactsResponse
	if err := c.get(ctx, "/api/contacts", &response); err != nil {
		return nil, err
	}

	contacts := make([]entity.Contact, 0, len(response.Contacts))
	for _, dto := range response.Contacts {
		contacts = append(contacts, dto.toEntity())
	}
	return contacts, nil
}

// GetAbandonedCarts busca os carrinhos com itens e sem compra finalizada
func (c *Client) GetAbandonedCarts(ctx context.Context) ([]entity.AbandonedCart, error) {
	var response cartsResponse
	if err := c.get(ctx, "/api/abandoned-carts", &response); err != nil {
		return nil, err
	}

	carts := make([]entity.AbandonedCart, 0, len(response.Carts))
	for _, dto := range response.Carts {
		carts = append(carts, dto.toEntity())
	}
	return carts, nil
}

func (c *Client) verifyCredentials(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/auth/check", nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("erro na conexão com coreforce: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("auth check falhou (status %d)", resp.StatusCode)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("erro request coreforce: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		fmt.Printf("❌ ERRO API COREFORCE (Status %d): %s\n", resp.StatusCode, string(body))
		return fmt.Errorf("api coreforce rejeitou %s (status %d)", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("erro decode coreforce: %w", err)
	}
	return nil
}

// setHeaders centraliza os headers obrigatórios
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "CartRecovery/1.0")
}
