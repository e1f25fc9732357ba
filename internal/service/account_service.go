package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/andy/billfold/internal/domain"
	"github.com/andy/billfold/internal/repository"
	"github.com/andy/billfold/internal/session"
)

// AccountService handles the account lifecycle: registration, sign-in,
// sign-out, email change, and account deletion. The stored bearer token is
// created and destroyed only here.
type AccountService interface {
	SignUp(ctx context.Context, creds domain.Credentials) error
	// SignIn stores the returned token on success
	SignIn(ctx context.Context, creds domain.Credentials) error
	// Logout clears the token; without one it returns ErrNotLoggedIn
	Logout() error
	CurrentUser(ctx context.Context) (*domain.User, error)
	// ChangeEmail updates the account email. loggedOut reports whether the
	// session was invalidated because relogin-on-email-change is enabled.
	ChangeEmail(ctx context.Context, userID, email string) (user *domain.User, loggedOut bool, err error)
	// DeleteAccount removes the account and clears the token
	DeleteAccount(ctx context.Context, userID string) error

	IsAuthenticated() bool
}

type accountService struct {
	authRepo             repository.AuthRepository
	userRepo             repository.UserRepository
	tokens               session.Store
	list                 *ListState
	reloginOnEmailChange bool
}

// NewAccountService creates an AccountService
func NewAccountService(authRepo repository.AuthRepository, userRepo repository.UserRepository, tokens session.Store, list *ListState, reloginOnEmailChange bool) AccountService {
	return &accountService{
		authRepo:             authRepo,
		userRepo:             userRepo,
		tokens:               tokens,
		list:                 list,
		reloginOnEmailChange: reloginOnEmailChange,
	}
}

func (s *accountService) IsAuthenticated() bool {
	return s.tokens.IsAuthenticated()
}

func (s *accountService) SignUp(ctx context.Context, creds domain.Credentials) error {
	return s.authRepo.SignUp(ctx, creds)
}

func (s *accountService) SignIn(ctx context.Context, creds domain.Credentials) error {
	token, err := s.authRepo.SignIn(ctx, creds)
	if err != nil {
		var apiErr *repository.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.StatusCode {
			case http.StatusUnauthorized, http.StatusForbidden, http.StatusBadRequest:
				return ErrInvalidCredentials
			}
		}
		return err
	}

	if err := s.tokens.SetToken(token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

func (s *accountService) Logout() error {
	if !s.tokens.IsAuthenticated() {
		return ErrNotLoggedIn
	}
	if err := s.tokens.Clear(); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	s.list.Clear()
	return nil
}

func (s *accountService) CurrentUser(ctx context.Context) (*domain.User, error) {
	if !s.tokens.IsAuthenticated() {
		return nil, ErrNotLoggedIn
	}
	return s.userRepo.Current(ctx)
}

func (s *accountService) ChangeEmail(ctx context.Context, userID, email string) (*domain.User, bool, error) {
	if !s.tokens.IsAuthenticated() {
		return nil, false, ErrNotLoggedIn
	}
	if userID == "" {
		return nil, false, fmt.Errorf("change email: user id is required")
	}

	user, err := s.userRepo.UpdateEmail(ctx, userID, email)
	if err != nil {
		return nil, false, err
	}

	if s.reloginOnEmailChange {
		if err := s.tokens.Clear(); err != nil {
			return user, false, fmt.Errorf("clear token after email change: %w", err)
		}
		s.list.Clear()
		return user, true, nil
	}
	return user, false, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, userID string) error {
	if !s.tokens.IsAuthenticated() {
		return ErrNotLoggedIn
	}
	if userID == "" {
		return fmt.Errorf("delete account: user id is required")
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	if err := s.tokens.Clear(); err != nil {
		return fmt.Errorf("clear token after account deletion: %w", err)
	}
	s.list.Clear()
	return nil
}
