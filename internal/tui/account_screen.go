package tui

import (
	"context"
	"fmt"

	"github.com/andy/billfold/internal/app"
	"github.com/andy/billfold/internal/domain"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type accountMode int

const (
	accountModeView accountMode = iota
	accountModeEmail
	accountModeConfirmDelete
)

type emailSavedMsg struct {
	user      *domain.User
	loggedOut bool
	err       error
}

type accountDeletedMsg struct {
	err error
}

// AccountModel is the profile screen: logout, email change, account deletion
type AccountModel struct {
	app  *app.App
	user *domain.User

	mode       accountMode
	emailField textinput.Model
	confirm    textinput.Model
	statusMsg  string
	errMsg     string
}

// NewAccountModel creates the account screen for the signed-in user
func NewAccountModel(a *app.App, user *domain.User) tea.Model {
	return &AccountModel{app: a, user: user}
}

// IsCapturingInput returns true while a form is active
func (m *AccountModel) IsCapturingInput() bool {
	return m.mode != accountModeView
}

func (m *AccountModel) Init() tea.Cmd {
	return nil
}

func (m *AccountModel) changeEmail(newEmail string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		user, loggedOut, err := m.app.Account.ChangeEmail(ctx, m.user.ID, newEmail)
		return emailSavedMsg{user: user, loggedOut: loggedOut, err: err}
	}
}

func (m *AccountModel) deleteAccount() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		return accountDeletedMsg{err: m.app.Account.DeleteAccount(ctx, m.user.ID)}
	}
}

func (m *AccountModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		return m, nil

	case emailSavedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Failed to update email: %v", msg.err)
			return m, nil
		}
		m.mode = accountModeView
		m.errMsg = ""
		if msg.loggedOut {
			return m, func() tea.Msg { return SignedOutMsg{} }
		}
		m.user = msg.user
		m.statusMsg = "Account updated successfully"
		return m, nil

	case accountDeletedMsg:
		if msg.err != nil {
			m.mode = accountModeView
			m.errMsg = fmt.Sprintf("Failed to delete account: %v", msg.err)
			return m, nil
		}
		return m, func() tea.Msg { return SignedOutMsg{} }

	case tea.KeyMsg:
		switch m.mode {
		case accountModeEmail:
			return m.updateEmailForm(msg)
		case accountModeConfirmDelete:
			return m.updateConfirmDelete(msg)
		}

		m.statusMsg = ""
		m.errMsg = ""

		switch msg.String() {
		case "l":
			if err := m.app.Account.Logout(); err != nil {
				m.errMsg = fmt.Sprintf("Logout failed: %v", err)
				return m, nil
			}
			return m, func() tea.Msg { return SignedOutMsg{} }

		case "e":
			m.mode = accountModeEmail
			m.emailField = textinput.New()
			m.emailField.Placeholder = "example@example.com"
			m.emailField.CharLimit = 100
			m.emailField.Width = 40
			return m, m.emailField.Focus()

		case "x":
			m.mode = accountModeConfirmDelete
			m.confirm = textinput.New()
			m.confirm.Placeholder = "delete"
			m.confirm.CharLimit = 10
			m.confirm.Width = 15
			return m, m.confirm.Focus()
		}
	}

	return m, nil
}

func (m *AccountModel) updateEmailForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = accountModeView
		m.errMsg = ""
		return m, nil

	case "enter":
		newEmail := m.emailField.Value()
		if newEmail == "" {
			m.errMsg = "email is required"
			return m, nil
		}
		return m, m.changeEmail(newEmail)
	}

	var cmd tea.Cmd
	m.emailField, cmd = m.emailField.Update(msg)
	return m, cmd
}

func (m *AccountModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = accountModeView
		m.errMsg = ""
		return m, nil

	case "enter":
		if m.confirm.Value() != "delete" {
			m.errMsg = `type "delete" to confirm`
			return m, nil
		}
		return m, m.deleteAccount()
	}

	var cmd tea.Cmd
	m.confirm, cmd = m.confirm.Update(msg)
	return m, cmd
}

func (m *AccountModel) View() string {
	switch m.mode {
	case accountModeEmail:
		return m.viewEmailForm()
	case accountModeConfirmDelete:
		return m.viewConfirmDelete()
	}
	return m.viewProfile()
}

func (m *AccountModel) viewProfile() string {
	var s string
	s += titleStyle.Render("Profile") + "\n\n"

	if m.statusMsg != "" {
		s += statusStyle.Render("  "+m.statusMsg) + "\n\n"
	}
	if m.errMsg != "" {
		s += errStyle.Render("  "+m.errMsg) + "\n\n"
	}

	s += fmt.Sprintf("  %s %s\n", subtitleStyle.Render("Email:"), m.user.Email)
	s += fmt.Sprintf("  %s %s\n", subtitleStyle.Render("ID:"), m.user.ID)

	s += "\n" + helpStyle.Render("  l: log out  e: edit my email  x: delete my account")
	return s
}

func (m *AccountModel) viewEmailForm() string {
	var s string
	s += titleStyle.Render("Edit Email") + "\n\n"
	s += subtitleStyle.Render(fmt.Sprintf("  Current: %s", m.user.Email)) + "\n\n"
	s += "  " + m.emailField.View() + "\n\n"

	if m.errMsg != "" {
		s += errStyle.Render("  "+m.errMsg) + "\n\n"
	}

	if m.app.Config.Session.ReloginOnEmailChange {
		s += subtitleStyle.Render("  Saving will sign you out; log in again with the new address.") + "\n\n"
	}

	s += helpStyle.Render("  enter: save  esc: cancel")
	return s
}

func (m *AccountModel) viewConfirmDelete() string {
	var s string
	s += titleStyle.Render("Delete Account") + "\n\n"
	s += errStyle.Render("  This permanently deletes your account and its invoices.") + "\n\n"
	s += subtitleStyle.Render(`  Type "delete" and press enter to confirm:`) + "\n"
	s += "  " + m.confirm.View() + "\n\n"

	if m.errMsg != "" {
		s += errStyle.Render("  "+m.errMsg) + "\n\n"
	}

	s += helpStyle.Render("  enter: confirm  esc: cancel")
	return s
}
