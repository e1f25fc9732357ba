package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/andy/billfold/internal/app"
	"github.com/andy/billfold/internal/domain"
	"github.com/andy/billfold/internal/service"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// auth form field indices
const (
	authFieldEmail = iota
	authFieldPassword
	authFieldCount
)

type authResultMsg struct {
	signup bool
	email  string
	err    error
}

// SignInModel collects credentials for sign-in, with a sign-up mode toggle
type SignInModel struct {
	app        *app.App
	fields     []textinput.Model
	fieldFocus int
	signup     bool // registration mode instead of login
	submitting bool
	statusMsg  string
	errMsg     string
}

// NewSignInModel creates the sign-in screen
func NewSignInModel(a *app.App) tea.Model {
	m := &SignInModel{app: a}
	m.initFields()
	return m
}

// IsCapturingInput always captures: the whole screen is a form
func (m *SignInModel) IsCapturingInput() bool {
	return true
}

func (m *SignInModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *SignInModel) initFields() {
	m.fields = make([]textinput.Model, authFieldCount)

	m.fields[authFieldEmail] = textinput.New()
	m.fields[authFieldEmail].Placeholder = "you@example.com"
	m.fields[authFieldEmail].CharLimit = 100
	m.fields[authFieldEmail].Width = 40

	m.fields[authFieldPassword] = textinput.New()
	m.fields[authFieldPassword].Placeholder = "password"
	m.fields[authFieldPassword].CharLimit = 100
	m.fields[authFieldPassword].Width = 40
	m.fields[authFieldPassword].EchoMode = textinput.EchoPassword
	m.fields[authFieldPassword].EchoCharacter = '•'

	m.fieldFocus = authFieldEmail
	m.fields[authFieldEmail].Focus()
}

func (m *SignInModel) submit() tea.Cmd {
	creds := domain.Credentials{
		Email:    m.fields[authFieldEmail].Value(),
		Password: m.fields[authFieldPassword].Value(),
	}
	signup := m.signup

	return func() tea.Msg {
		ctx := context.Background()
		if err := creds.Validate(); err != nil {
			return authResultMsg{signup: signup, err: err}
		}

		if signup {
			return authResultMsg{signup: true, email: creds.Email, err: m.app.Account.SignUp(ctx, creds)}
		}
		return authResultMsg{signup: false, email: creds.Email, err: m.app.Account.SignIn(ctx, creds)}
	}
}

func (m *SignInModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		return m, nil

	case authResultMsg:
		m.submitting = false
		if msg.err != nil {
			if !msg.signup && errors.Is(msg.err, service.ErrInvalidCredentials) {
				m.errMsg = "Invalid Credentials!"
			} else if msg.signup {
				m.errMsg = fmt.Sprintf("Sign-up failed: %v", msg.err)
			} else {
				m.errMsg = fmt.Sprintf("Sign-in failed: %v", msg.err)
			}
			return m, nil
		}

		if msg.signup {
			// Registered; switch back to sign-in with the email kept.
			m.signup = false
			m.statusMsg = "User registered successfully! Sign in to continue."
			m.errMsg = ""
			m.fields[authFieldPassword].SetValue("")
			m.fieldFocus = authFieldPassword
			m.fields[authFieldEmail].Blur()
			return m, m.fields[authFieldPassword].Focus()
		}

		m.statusMsg = "Welcome!"
		m.errMsg = ""
		return m, func() tea.Msg { return SignedInMsg{} }

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}

		switch msg.String() {
		case "tab", "down":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % authFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + authFieldCount) % authFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			if m.fieldFocus == authFieldCount-1 {
				m.submitting = true
				m.statusMsg = ""
				return m, m.submit()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+u":
			// Toggle between sign-in and sign-up
			m.signup = !m.signup
			m.statusMsg = ""
			m.errMsg = ""
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *SignInModel) View() string {
	var s string

	if m.signup {
		s += titleStyle.Render("Sign up") + "\n\n"
	} else {
		s += titleStyle.Render("Sign in") + "\n\n"
	}

	labels := []string{"Email:", "Password:"}
	for i, label := range labels {
		indicator := "  "
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			indicator = "> "
			labelStyle = titleStyle
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), m.fields[i].View())
	}

	if m.submitting {
		s += subtitleStyle.Render("  Submitting...") + "\n\n"
	}
	if m.statusMsg != "" {
		s += statusStyle.Render("  "+m.statusMsg) + "\n\n"
	}
	if m.errMsg != "" {
		s += errStyle.Render("  "+m.errMsg) + "\n\n"
	}

	if m.signup {
		s += helpStyle.Render("  enter: register  ctrl+u: back to sign-in  tab: next field")
	} else {
		s += helpStyle.Render("  enter: sign in  ctrl+u: create an account  tab: next field")
	}

	return s
}
