package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/cart-recovery/internal/entity"
)

type CartRepository struct {
	DB *sql.DB
}

func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{DB: db}
}

// ReplaceItems troca o snapshot do carrinho do contato. Apagar e reinserir na
// mesma transação mantém o snapshot sempre inteiro.
func (r *CartRepository) ReplaceItems(ctx context.Context, contactID string, items []entity.CartItem) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin cart replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE contact_id = $1`, contactID); err != nil {
		return fmt.Errorf("failed to clear cart items: %w", err)
	}

	query := `
		INSERT INTO cart_items (contact_id, product_id, description, quantity, unit_price, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, item := range items {
		_, err := tx.ExecContext(ctx, query,
			contactID,
			item.ProductID,
			item.Description,
			item.Quantity,
			item.UnitPrice,
			item.ImageURL,
		)
		if err != nil {
			return fmt.Errorf("failed to insert cart item: %w", err)
		}
	}

	return tx.Commit()
}
