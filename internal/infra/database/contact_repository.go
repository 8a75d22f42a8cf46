package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/cart-recovery/internal/entity"
)

type ContactRepository struct {
	DB *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

// UpsertBatch grava o lote numa transação só. Conflito na chave natural
// sobrescreve TODOS os campos mutáveis (last-write-wins, sem COALESCE):
// o coreforce é a fonte de verdade do contato.
func (r *ContactRepository) UpsertBatch(ctx context.Context, contacts []entity.Contact) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin contact batch: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO contacts (
			contact_id, first_name, last_name, business_name, company, salutation,
			address1, address2, city, state, postal_code, country,
			primary_email_address, alternate_email, phone, phone_numbers, notes,
			updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
			NOW()
		)
		ON CONFLICT (contact_id)
		DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			business_name = EXCLUDED.business_name,
			company = EXCLUDED.company,
			salutation = EXCLUDED.salutation,
			address1 = EXCLUDED.address1,
			address2 = EXCLUDED.address2,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			postal_code = EXCLUDED.postal_code,
			country = EXCLUDED.country,
			primary_email_address = EXCLUDED.primary_email_address,
			alternate_email = EXCLUDED.alternate_email,
			phone = EXCLUDED.phone,
			phone_numbers = EXCLUDED.phone_numbers,
			notes = EXCLUDED.notes,
			updated_at = NOW()
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare contact upsert: %w", err)
	}
	defer stmt.Close()

	for _, c := range contacts {
		_, err := stmt.ExecContext(ctx,
			c.ContactID,
			c.FirstName,
			c.LastName,
			c.BusinessName,
			c.Company,
			c.Salutation,
			c.Address1,
			c.Address2,
			c.City,
			c.State,
			c.PostalCode,
			c.Country,
			c.PrimaryEmailAddress,
			c.AlternateEmail,
			c.Phone,
			c.PhoneNumbers,
			c.Notes,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert contact %s: %w", c.ContactID, err)
		}
	}

	return tx.Commit()
}
