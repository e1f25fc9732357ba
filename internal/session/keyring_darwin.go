//go:build darwin

package session

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

type darwinStore struct{}

func newPlatformStore() Store {
	return &darwinStore{}
}

// Token retrieves the bearer token from macOS Keychain
func (s *darwinStore) Token() (string, error) {
	token, err := keyring.Get(ServiceName, KeyName)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("failed to retrieve token from keychain: %w", err)
	}

	if token == "" {
		return "", ErrNoToken
	}

	return stripBearer(token), nil
}

// SetToken stores the bearer token in macOS Keychain
func (s *darwinStore) SetToken(token string) error {
	token = stripBearer(token)
	if token == "" {
		return errors.New("token cannot be empty")
	}

	if err := keyring.Set(ServiceName, KeyName, token); err != nil {
		return fmt.Errorf("failed to store token in keychain: %w", err)
	}

	return nil
}

// Clear removes the bearer token from macOS Keychain
func (s *darwinStore) Clear() error {
	err := keyring.Delete(ServiceName, KeyName)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete token from keychain: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether a token is present
func (s *darwinStore) IsAuthenticated() bool {
	token, err := s.Token()
	return err == nil && token != ""
}
