package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andy/billfold/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTokens is a session.Store with a fixed token
type stubTokens struct {
	token string
}

func (s *stubTokens) Token() (string, error) {
	if s.token == "" {
		return "", errors.New("no token stored")
	}
	return s.token, nil
}
func (s *stubTokens) SetToken(token string) error { s.token = token; return nil }
func (s *stubTokens) Clear() error                { s.token = ""; return nil }
func (s *stubTokens) IsAuthenticated() bool       { return s.token != "" }

func newTestInvoiceRepo(t *testing.T, handler http.HandlerFunc) InvoiceRepository {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewInvoiceRepo(srv.URL, 5*time.Second, &stubTokens{token: "tok-123"})
}

func TestListByUserBareArray(t *testing.T) {
	repo := newTestInvoiceRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/user/u1", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode([]*domain.Invoice{
			{ID: "a", Description: "Rent", Amount: 1, Price: 1200},
		})
	})

	invoices, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, "Rent", invoices[0].Description)
}

func TestListByUserEnvelope(t *testing.T) {
	repo := newTestInvoiceRepo(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"invoices": []*domain.Invoice{
				{ID: "a", Description: "Rent"},
				{ID: "b", Description: "Water"},
			},
		})
	})

	invoices, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, invoices, 2)
}

func TestListByUserEmptyBody(t *testing.T) {
	repo := newTestInvoiceRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	invoices, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, invoices)
}

func TestCreateInvoice(t *testing.T) {
	repo := newTestInvoiceRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/invoices", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		var body domain.Invoice
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Rent", body.Description)
		assert.Equal(t, "u1", body.UserID)

		body.ID = "server-id"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(body)
	})

	created, err := repo.Create(context.Background(), domain.NewInvoice("Rent", 1, 1200, "u1"))
	require.NoError(t, err)
	assert.Equal(t, "server-id", created.ID)
	assert.Equal(t, 1200.0, created.Price)
}

func TestUpdateInvoicePatchesOnlyChangedFields(t *testing.T) {
	repo := newTestInvoiceRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/invoices/a", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body, "price")
		assert.NotContains(t, body, "description")
		assert.NotContains(t, body, "amount")

		json.NewEncoder(w).Encode(&domain.Invoice{ID: "a", Description: "Rent", Amount: 1, Price: 1300})
	})

	price := 1300.0
	updated, err := repo.Update(context.Background(), "a", domain.InvoicePatch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 1300.0, updated.Price)
}

func TestUpdateInvoiceEmptyPatchRejectedLocally(t *testing.T) {
	called := false
	repo := newTestInvoiceRepo(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := repo.Update(context.Background(), "a", domain.InvoicePatch{})
	require.Error(t, err)
	assert.False(t, called, "empty patch must not reach the server")
}

func TestDeleteInvoice(t *testing.T) {
	repo := newTestInvoiceRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/invoices/a", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, repo.Delete(context.Background(), "a"))
}

func TestDeleteMissingInvoiceEchoesServerMessage(t *testing.T) {
	repo := newTestInvoiceRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "invoice not found"})
	})

	err := repo.Delete(context.Background(), "ghost")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "invoice not found", apiErr.Message)
}

func TestUnauthorizedMapsToErrUnauthorized(t *testing.T) {
	repo := newTestInvoiceRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := repo.ListByUser(context.Background(), "u1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestMissingTokenFailsBeforeRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	t.Cleanup(srv.Close)

	repo := NewInvoiceRepo(srv.URL, 5*time.Second, &stubTokens{})
	_, err := repo.ListByUser(context.Background(), "u1")
	require.Error(t, err)
	assert.False(t, called, "no request should be issued without a token")
}
