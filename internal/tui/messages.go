package tui

import "github.com/andy/billfold/internal/domain"

// SwitchScreenMsg requests a screen change
type SwitchScreenMsg struct {
	Screen Screen
}

// RefreshDataMsg requests data refresh
type RefreshDataMsg struct{}

// ErrorMsg carries error information
type ErrorMsg struct {
	Err error
}

// SignedInMsg reports a successful sign-in; the root model then resolves
// the user and loads invoices.
type SignedInMsg struct{}

// SignedOutMsg reports that the session ended (logout or account deletion)
type SignedOutMsg struct{}

// sessionCheckMsg reports whether a bearer token is stored
type sessionCheckMsg struct {
	authenticated bool
}

// userLoadedMsg carries the current-user fetch result
type userLoadedMsg struct {
	user *domain.User
	err  error
}
