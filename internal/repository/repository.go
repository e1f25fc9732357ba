package repository

import (
	"context"

	"github.com/andy/billfold/internal/domain"
)

// AuthRepository talks to the registration and login endpoints
type AuthRepository interface {
	SignUp(ctx context.Context, creds domain.Credentials) error
	SignIn(ctx context.Context, creds domain.Credentials) (token string, err error)
}

// UserRepository manages the signed-in account
type UserRepository interface {
	Current(ctx context.Context) (*domain.User, error)
	UpdateEmail(ctx context.Context, userID, email string) (*domain.User, error)
	Delete(ctx context.Context, userID string) error
}

// InvoiceRepository manages invoice records on the remote API. The server
// is the sole authority; every mutation returns the server's view of the
// record so callers can reconcile local state from the response.
type InvoiceRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*domain.Invoice, error)
	Create(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error)
	Update(ctx context.Context, id string, patch domain.InvoicePatch) (*domain.Invoice, error)
	Delete(ctx context.Context, id string) error
}
