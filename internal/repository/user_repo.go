package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/andy/billfold/internal/domain"
	"github.com/andy/billfold/internal/session"
)

type userRepo struct {
	client *restClient
}

// NewUserRepo creates a UserRepository against the remote API
func NewUserRepo(baseURL string, timeout time.Duration, tokens session.Store) UserRepository {
	return &userRepo{client: newRESTClient(baseURL, timeout, tokens)}
}

// Current resolves the account behind the stored bearer token
func (r *userRepo) Current(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := r.client.do(ctx, http.MethodGet, "/user/currentuser", true, nil, &user); err != nil {
		return nil, fmt.Errorf("fetch current user: %w", err)
	}
	return &user, nil
}

// UpdateEmail changes the account email and returns the server's record
func (r *userRepo) UpdateEmail(ctx context.Context, userID, email string) (*domain.User, error) {
	body := map[string]string{"email": email}

	var user domain.User
	if err := r.client.do(ctx, http.MethodPatch, "/user/"+userID, true, body, &user); err != nil {
		return nil, fmt.Errorf("update email: %w", err)
	}

	// Some deployments answer with an empty body; fall back to the
	// values we sent so callers always get a usable record.
	if user.ID == "" {
		user.ID = userID
	}
	if user.Email == "" {
		user.Email = email
	}
	return &user, nil
}

// Delete removes the account. The response has no body.
func (r *userRepo) Delete(ctx context.Context, userID string) error {
	if err := r.client.do(ctx, http.MethodDelete, "/user/"+userID, true, nil, nil); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}
