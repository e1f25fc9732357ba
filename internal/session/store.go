package session

import "errors"

// Store holds the single bearer token that marks a user as signed in.
// Its presence is the only client-side signal of an active session.
type Store interface {
	Token() (string, error)
	SetToken(token string) error
	Clear() error
	IsAuthenticated() bool
}

const (
	ServiceName = "billfold"
	KeyName     = "api-bearer-token"
)

// ErrNoToken is returned when no token is stored
var ErrNoToken = errors.New("no token stored")

// NewStore returns the best available token store implementation
func NewStore() Store {
	return newPlatformStore()
}
