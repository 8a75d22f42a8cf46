package coreforce

import "github.com/xavierca1/cart-recovery/internal/entity"

// DTOs no formato que a API do coreforce devolve (camelCase)

type contactDTO struct {
	ContactID           string `json:"contactId"`
	FirstName           string `json:"firstName"`
	LastName            string `json:"lastName"`
	BusinessName        string `json:"businessName"`
	Company             string `json:"company"`
	Salutation          string `json:"salutation"`
	Address1            string `json:"address1"`
	Address2            string `json:"address2"`
	City                string `json:"city"`
	State               string `json:"state"`
	PostalCode          string `json:"postalCode"`
	Country             string `json:"country"`
	PrimaryEmailAddress string `json:"primaryEmailAddress"`
	AlternateEmail      string `json:"alternateEmail"`
	Phone               string `json:"phone"`
	PhoneNumbers        string `json:"phoneNumbers"`
	Notes               string `json:"notes"`
}

type contactsResponse struct {
	Contacts []contactDTO `json:"contacts"`
}

type cartItemDTO struct {
	ProductID   string  `json:"productId"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	ImageURL    string  `json:"imageUrl"`
}

type cartDTO struct {
	ID    string        `json:"id"`
	Items []cartItemDTO `json:"items"`
}

type cartsResponse struct {
	Carts []cartDTO `json:"carts"`
}

func (d contactDTO) toEntity() entity.Contact {
	return entity.Contact{
		ContactID:           d.ContactID,
		FirstName:           d.FirstName,
		LastName:            d.LastName,
		BusinessName:        d.BusinessName,
		Company:             d.Company,
		Salutation:          d.Salutation,
		Address1:            d.Address1,
		Address2:            d.Address2,
		City:                d.City,
		State:               d.State,
		PostalCode:          d.PostalCode,
		Country:             d.Country,
		PrimaryEmailAddress: d.PrimaryEmailAddress,
		AlternateEmail:      d.AlternateEmail,
		Phone:               d.Phone,
		PhoneNumbers:        d.PhoneNumbers,
		Notes:               d.Notes,
	}
}

func (d cartDTO) toEntity() entity.AbandonedCart {
	items := make([]entity.CartItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, entity.CartItem{
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			ImageURL:    it.ImageURL,
		})
	}
	return entity.AbandonedCart{ContactID: d.ID, Items: items}
}
