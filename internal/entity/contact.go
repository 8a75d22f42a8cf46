package entity

import (
	"context"
)

// Entidade: Contact
// A chave natural (contact_id) vem do coreforce; o sync nunca apaga contato,
// só insere ou sobrescreve.
type Contact struct {
	ContactID           string `json:"contact_id"`
	FirstName           string `json:"first_name"`
	LastName            string `json:"last_name"`
	BusinessName        string `json:"business_name"`
	Company             string `json:"company"`
	Salutation          string `json:"salutation"`
	Address1            string `json:"address1"`
	Address2            string `json:"address2"`
	City                string `json:"city"`
	State               string `json:"state"`
	PostalCode          string `json:"postal_code"`
	Country             string `json:"country"`
	PrimaryEmailAddress string `json:"primary_email_address"`
	AlternateEmail      string `json:"alternate_email"`
	Phone               string `json:"phone"`
	PhoneNumbers        string `json:"phone_numbers"`
	Notes               string `json:"notes"`
}

type ContactRepositoryInterface interface {
	// UpsertBatch grava o lote inteiro numa transação só (last-write-wins)
	UpsertBatch(ctx context.Context, contacts []Contact) error
}
