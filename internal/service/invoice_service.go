package service

import (
	"context"
	"fmt"

	"github.com/andy/billfold/internal/domain"
	"github.com/andy/billfold/internal/repository"
	"github.com/andy/billfold/internal/session"
)

// InvoiceService runs invoice operations against the remote API and
// reconciles the local list from each response. Every mutation requires a
// stored token and short-circuits with ErrNotLoggedIn before touching the
// network.
type InvoiceService interface {
	// Refresh fetches the user's invoices. On failure the last-good list
	// is preserved.
	Refresh(ctx context.Context, userID string) error
	Create(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error)
	Update(ctx context.Context, id string, patch domain.InvoicePatch) (*domain.Invoice, error)
	Delete(ctx context.Context, id string) error

	List() *ListState
}

type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	tokens      session.Store
	list        *ListState
}

// NewInvoiceService creates an InvoiceService over the given repository
func NewInvoiceService(invoiceRepo repository.InvoiceRepository, tokens session.Store, list *ListState) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		tokens:      tokens,
		list:        list,
	}
}

func (s *invoiceService) List() *ListState {
	return s.list
}

func (s *invoiceService) requireSession() error {
	if !s.tokens.IsAuthenticated() {
		return ErrNotLoggedIn
	}
	return nil
}

func (s *invoiceService) Refresh(ctx context.Context, userID string) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	if userID == "" {
		return fmt.Errorf("refresh: user id is required")
	}

	invoices, err := s.invoiceRepo.ListByUser(ctx, userID)
	if err != nil {
		// Preserve the last-known list rather than resetting to empty.
		return err
	}

	s.list.Replace(invoices)
	return nil
}

func (s *invoiceService) Create(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	if err := invoice.Validate(); err != nil {
		return nil, err
	}

	created, err := s.invoiceRepo.Create(ctx, invoice)
	if err != nil {
		return nil, err
	}

	s.list.Append(created)
	return created, nil
}

func (s *invoiceService) Update(ctx context.Context, id string, patch domain.InvoicePatch) (*domain.Invoice, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}

	updated, err := s.invoiceRepo.Update(ctx, id, patch)
	if err != nil {
		// List unchanged; the caller's edit state machine handles retry.
		return nil, err
	}

	if !s.list.ApplyUpdate(updated) {
		// Server knows a record we never fetched; adopt it.
		s.list.Append(updated)
	}
	return updated, nil
}

func (s *invoiceService) Delete(ctx context.Context, id string) error {
	if err := s.requireSession(); err != nil {
		return err
	}

	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.list.Remove(id)
	return nil
}
