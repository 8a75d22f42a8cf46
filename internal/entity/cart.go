package entity

import "context"

type CartItem struct {
	ProductID   string  `json:"product_id"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// AbandonedCart: visão derivada do coreforce (somente leitura para nós)
type AbandonedCart struct {
	ContactID string     `json:"contact_id"`
	Items     []CartItem `json:"items"`
}

type CartRepositoryInterface interface {
	// ReplaceItems troca o snapshot do carrinho do contato pelo estado atual
	ReplaceItems(ctx context.Context, contactID string, items []CartItem) error
}
