package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/andy/billfold/internal/domain"
	"github.com/andy/billfold/internal/session"
)

type authRepo struct {
	client *restClient
}

// NewAuthRepo creates an AuthRepository against the remote API
func NewAuthRepo(baseURL string, timeout time.Duration, tokens session.Store) AuthRepository {
	return &authRepo{client: newRESTClient(baseURL, timeout, tokens)}
}

// SignUp registers a new account. The server responds with a message only;
// the caller signs in separately.
func (r *authRepo) SignUp(ctx context.Context, creds domain.Credentials) error {
	if err := creds.Validate(); err != nil {
		return fmt.Errorf("invalid credentials: %w", err)
	}
	if err := r.client.do(ctx, http.MethodPost, "/auth/sign-up", false, creds, nil); err != nil {
		return fmt.Errorf("sign up: %w", err)
	}
	return nil
}

// SignIn exchanges credentials for a bearer token
func (r *authRepo) SignIn(ctx context.Context, creds domain.Credentials) (string, error) {
	if err := creds.Validate(); err != nil {
		return "", fmt.Errorf("invalid credentials: %w", err)
	}

	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	if err := r.client.do(ctx, http.MethodPost, "/auth/sign-in", false, creds, &resp); err != nil {
		return "", fmt.Errorf("sign in: %w", err)
	}
	if resp.AccessToken == "" {
		return "", errors.New("sign in: server returned no access token")
	}
	return resp.AccessToken, nil
}
