package service

import (
	"context"
	"errors"
	"testing"

	"github.com/andy/billfold/internal/config"
	"github.com/andy/billfold/internal/domain"
)

// mock implementations

type mockTokenStore struct {
	token string
}

func (m *mockTokenStore) Token() (string, error) {
	if m.token == "" {
		return "", errors.New("no token stored")
	}
	return m.token, nil
}
func (m *mockTokenStore) SetToken(token string) error { m.token = token; return nil }
func (m *mockTokenStore) Clear() error                { m.token = ""; return nil }
func (m *mockTokenStore) IsAuthenticated() bool       { return m.token != "" }

type mockInvoiceRepo struct {
	listResult []*domain.Invoice
	listErr    error
	createErr  error
	updateErr  error
	deleteErr  error
	nextID     int
}

func (m *mockInvoiceRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Invoice, error) {
	return m.listResult, m.listErr
}

func (m *mockInvoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	created := *invoice
	created.ID = string(rune('a' + m.nextID - 1))
	return &created, nil
}

func (m *mockInvoiceRepo) Update(ctx context.Context, id string, patch domain.InvoicePatch) (*domain.Invoice, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	updated := &domain.Invoice{ID: id}
	if patch.Description != nil {
		updated.Description = *patch.Description
	}
	if patch.Amount != nil {
		updated.Amount = *patch.Amount
	}
	if patch.Price != nil {
		updated.Price = *patch.Price
	}
	return updated, nil
}

func (m *mockInvoiceRepo) Delete(ctx context.Context, id string) error {
	return m.deleteErr
}

func newTestInvoiceService(repo *mockInvoiceRepo, loggedIn bool) (InvoiceService, *mockTokenStore) {
	tokens := &mockTokenStore{}
	if loggedIn {
		tokens.token = "tok"
	}
	list := NewListState(config.FilterPolicyGTE)
	return NewInvoiceService(repo, tokens, list), tokens
}

func TestCreateRequiresLogin(t *testing.T) {
	svc, _ := newTestInvoiceService(&mockInvoiceRepo{}, false)

	_, err := svc.Create(context.Background(), domain.NewInvoice("Rent", 1, 1200, "u1"))
	if !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
	if svc.List().Len() != 0 {
		t.Fatalf("expected no local mutation without a session")
	}
}

func TestCreateAppendsServerRecord(t *testing.T) {
	svc, _ := newTestInvoiceService(&mockInvoiceRepo{}, true)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.NewInvoice("Rent", 1, 1200, "u1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected a server-assigned identifier")
	}
	if svc.List().Len() != 1 {
		t.Fatalf("expected list length 1, got %d", svc.List().Len())
	}
	if got := svc.List().Get(created.ID); got == nil || got.Description != "Rent" {
		t.Fatalf("expected the returned record in the list, got %+v", got)
	}
}

func TestCreateFailureLeavesListUnchanged(t *testing.T) {
	repo := &mockInvoiceRepo{createErr: errors.New("boom")}
	svc, _ := newTestInvoiceService(repo, true)

	_, err := svc.Create(context.Background(), domain.NewInvoice("Rent", 1, 1200, "u1"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if svc.List().Len() != 0 {
		t.Fatalf("expected list unchanged on failure")
	}
}

func TestCreateRejectsInvalidInvoice(t *testing.T) {
	svc, _ := newTestInvoiceService(&mockInvoiceRepo{}, true)

	_, err := svc.Create(context.Background(), domain.NewInvoice("", 1, 10, "u1"))
	if err == nil {
		t.Fatalf("expected validation error for empty description")
	}

	_, err = svc.Create(context.Background(), domain.NewInvoice("Rent", -1, 10, "u1"))
	if err == nil {
		t.Fatalf("expected validation error for negative amount")
	}
}

func TestUpdateReplacesByIdentifier(t *testing.T) {
	svc, _ := newTestInvoiceService(&mockInvoiceRepo{}, true)
	ctx := context.Background()

	svc.List().Replace([]*domain.Invoice{
		{ID: "x", Description: "Rent", Amount: 1, Price: 1200},
		{ID: "y", Description: "Water", Amount: 1, Price: 40},
	})

	description := "Rent (March)"
	updated, err := svc.Update(ctx, "x", domain.InvoicePatch{Description: &description})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ID != "x" {
		t.Fatalf("expected updated record keyed by id, got %q", updated.ID)
	}
	if got := svc.List().Get("x"); got.Description != "Rent (March)" {
		t.Fatalf("expected local record reconciled, got %q", got.Description)
	}
	if got := svc.List().Get("y"); got.Description != "Water" {
		t.Fatalf("expected unrelated record untouched")
	}
}

func TestUpdateFailureLeavesListUnchanged(t *testing.T) {
	repo := &mockInvoiceRepo{updateErr: errors.New("server rejected")}
	svc, _ := newTestInvoiceService(repo, true)

	svc.List().Replace([]*domain.Invoice{{ID: "x", Description: "Rent", Price: 1200}})

	description := "changed"
	_, err := svc.Update(context.Background(), "x", domain.InvoicePatch{Description: &description})
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := svc.List().Get("x"); got.Description != "Rent" {
		t.Fatalf("expected local record untouched on failure, got %q", got.Description)
	}
}

func TestDeleteRemovesLocally(t *testing.T) {
	svc, _ := newTestInvoiceService(&mockInvoiceRepo{}, true)

	svc.List().Replace([]*domain.Invoice{{ID: "x"}, {ID: "y"}})

	if err := svc.Delete(context.Background(), "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.List().Get("x") != nil {
		t.Fatalf("expected record removed")
	}
	if svc.List().Len() != 1 {
		t.Fatalf("expected one record left")
	}
}

func TestDeleteMissingIDLeavesListUnchanged(t *testing.T) {
	// Deleting a non-existent identifier fails server-side; the local
	// list must stay as it was.
	repo := &mockInvoiceRepo{deleteErr: errors.New("not found")}
	svc, _ := newTestInvoiceService(repo, true)

	svc.List().Replace([]*domain.Invoice{{ID: "x"}})

	if err := svc.Delete(context.Background(), "ghost"); err == nil {
		t.Fatalf("expected error")
	}
	if svc.List().Len() != 1 {
		t.Fatalf("expected list unchanged, got %d", svc.List().Len())
	}
}

func TestRefreshPreservesLastGoodOnFailure(t *testing.T) {
	repo := &mockInvoiceRepo{
		listResult: []*domain.Invoice{{ID: "x", Description: "Rent"}},
	}
	svc, _ := newTestInvoiceService(repo, true)
	ctx := context.Background()

	if err := svc.Refresh(ctx, "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.List().Len() != 1 {
		t.Fatalf("expected one record after first fetch")
	}

	repo.listErr = errors.New("network down")
	if err := svc.Refresh(ctx, "u1"); err == nil {
		t.Fatalf("expected error")
	}
	if svc.List().Len() != 1 {
		t.Fatalf("expected last-good list preserved, got %d records", svc.List().Len())
	}
}
