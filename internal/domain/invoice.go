package domain

import (
	"errors"
	"strings"
)

// Invoice is a billable line item owned by one user. The JSON tags match
// the remote API's wire format; IDs are opaque server-assigned strings.
type Invoice struct {
	ID          string  `json:"_id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Price       float64 `json:"price"`
	UserID      string  `json:"userId,omitempty"`
}

// InvoicePatch is a partial update; nil fields are left untouched by the server.
type InvoicePatch struct {
	Description *string  `json:"description,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Price       *float64 `json:"price,omitempty"`
}

// NewInvoice creates an invoice draft for the given owner
func NewInvoice(description string, amount, price float64, userID string) *Invoice {
	return &Invoice{
		Description: strings.TrimSpace(description),
		Amount:      amount,
		Price:       price,
		UserID:      userID,
	}
}

// Validate returns an error if the invoice is invalid
func (i *Invoice) Validate() error {
	if strings.TrimSpace(i.Description) == "" {
		return errors.New("description is required")
	}
	if i.Amount < 0 {
		return errors.New("amount cannot be negative")
	}
	if i.Price < 0 {
		return errors.New("price cannot be negative")
	}
	return nil
}

// IsEmpty reports whether the patch changes nothing
func (p InvoicePatch) IsEmpty() bool {
	return p.Description == nil && p.Amount == nil && p.Price == nil
}

// Validate returns an error if any set field is invalid
func (p InvoicePatch) Validate() error {
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		return errors.New("description cannot be empty")
	}
	if p.Amount != nil && *p.Amount < 0 {
		return errors.New("amount cannot be negative")
	}
	if p.Price != nil && *p.Price < 0 {
		return errors.New("price cannot be negative")
	}
	return nil
}
