package domain

import (
	"errors"
	"strings"
)

// User is the account record as the remote API returns it. The password is
// only ever sent at registration and never retained client-side.
type User struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
}

// Credentials carry a sign-up or sign-in request body
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate returns an error if the credentials are unusable
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" {
		return errors.New("email is required")
	}
	if !strings.Contains(c.Email, "@") {
		return errors.New("email must contain @")
	}
	if c.Password == "" {
		return errors.New("password is required")
	}
	return nil
}
