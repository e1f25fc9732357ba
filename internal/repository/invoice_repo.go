package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/andy/billfold/internal/domain"
	"github.com/andy/billfold/internal/session"
)

type invoiceRepo struct {
	client *restClient
}

// NewInvoiceRepo creates an InvoiceRepository against the remote API
func NewInvoiceRepo(baseURL string, timeout time.Duration, tokens session.Store) InvoiceRepository {
	return &invoiceRepo{client: newRESTClient(baseURL, timeout, tokens)}
}

// ListByUser fetches the user's invoices. The API has shipped two response
// shapes over time: a bare array and an {"invoices": [...]} envelope.
// Both are accepted.
func (r *invoiceRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Invoice, error) {
	var raw json.RawMessage
	if err := r.client.do(ctx, http.MethodGet, "/user/"+userID, true, nil, &raw); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	if len(raw) == 0 {
		return []*domain.Invoice{}, nil
	}

	invoices, err := decodeInvoiceList(raw)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}

// Create posts a new invoice and returns the server-assigned record
func (r *invoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	if err := invoice.Validate(); err != nil {
		return nil, fmt.Errorf("invalid invoice: %w", err)
	}

	var created domain.Invoice
	if err := r.client.do(ctx, http.MethodPost, "/invoices", true, invoice, &created); err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	return &created, nil
}

// Update patches the changed fields and returns the full replacement record
func (r *invoiceRepo) Update(ctx context.Context, id string, patch domain.InvoicePatch) (*domain.Invoice, error) {
	if patch.IsEmpty() {
		return nil, fmt.Errorf("update invoice %s: nothing to change", id)
	}
	if err := patch.Validate(); err != nil {
		return nil, fmt.Errorf("invalid patch: %w", err)
	}

	var updated domain.Invoice
	if err := r.client.do(ctx, http.MethodPatch, "/invoices/"+id, true, patch, &updated); err != nil {
		return nil, fmt.Errorf("update invoice %s: %w", id, err)
	}
	if updated.ID == "" {
		updated.ID = id
	}
	return &updated, nil
}

// Delete removes an invoice by identifier. The response has no body.
func (r *invoiceRepo) Delete(ctx context.Context, id string) error {
	if err := r.client.do(ctx, http.MethodDelete, "/invoices/"+id, true, nil, nil); err != nil {
		return fmt.Errorf("delete invoice %s: %w", id, err)
	}
	return nil
}

// decodeInvoiceList handles both list response shapes
func decodeInvoiceList(raw json.RawMessage) ([]*domain.Invoice, error) {
	var bare []*domain.Invoice
	if err := json.Unmarshal(raw, &bare); err == nil {
		if bare == nil {
			bare = []*domain.Invoice{}
		}
		return bare, nil
	}

	var envelope struct {
		Invoices []*domain.Invoice `json:"invoices"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("unexpected response shape: %w", err)
	}
	if envelope.Invoices == nil {
		envelope.Invoices = []*domain.Invoice{}
	}
	return envelope.Invoices, nil
}
