package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/billfold/internal/app"
	"github.com/andy/billfold/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen represents the current active screen
type Screen int

const (
	ScreenSignIn Screen = iota
	ScreenInvoices
	ScreenAccount
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case ScreenSignIn:
		return "Sign In"
	case ScreenInvoices:
		return "Invoices"
	case ScreenAccount:
		return "Account"
	default:
		return "Unknown"
	}
}

// Model is the root Bubble Tea model. It owns the session gate: without a
// stored token every path leads to the sign-in screen; with one it
// resolves the current user and hands off to the invoices screen.
type Model struct {
	app           *app.App
	currentScreen Screen
	user          *domain.User
	width         int
	height        int

	// Screen models (lazy initialized)
	signin   tea.Model
	invoices tea.Model
	account  tea.Model

	// Error state
	err error
}

// New creates a new root model
func New(a *app.App) Model {
	return Model{
		app:           a,
		currentScreen: ScreenSignIn,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.checkSession()
}

// checkSession looks for a stored bearer token
func (m *Model) checkSession() tea.Cmd {
	return func() tea.Msg {
		return sessionCheckMsg{authenticated: m.app.Account.IsAuthenticated()}
	}
}

// loadUser resolves the account behind the stored token
func (m *Model) loadUser() tea.Cmd {
	return func() tea.Msg {
		user, err := m.app.Account.CurrentUser(context.Background())
		return userLoadedMsg{user: user, err: err}
	}
}

// initScreen lazy-initializes a screen on first visit,
// and sends a RefreshDataMsg on subsequent visits so screens reload data.
func (m *Model) initScreen(screen Screen) tea.Cmd {
	switch screen {
	case ScreenSignIn:
		if m.signin == nil {
			m.signin = NewSignInModel(m.app)
			return m.signin.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	case ScreenInvoices:
		if m.invoices == nil {
			m.invoices = NewInvoicesModel(m.app, m.user)
			return m.invoices.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	case ScreenAccount:
		if m.account == nil {
			m.account = NewAccountModel(m.app, m.user)
			return m.account.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	}
	return nil
}

// InputCapturer is implemented by screens that capture keyboard input.
// When active, global navigation keys (I, A, Q) are suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

// activeScreenCapturingInput returns true if the current screen is capturing text input
func (m *Model) activeScreenCapturingInput() bool {
	var screen tea.Model
	switch m.currentScreen {
	case ScreenSignIn:
		screen = m.signin
	case ScreenInvoices:
		screen = m.invoices
	case ScreenAccount:
		screen = m.account
	}
	if ic, ok := screen.(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

// Update implements tea.Model - routes keys to screens
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Skip global navigation when a screen is capturing text input
		if !m.activeScreenCapturingInput() {
			switch {
			case key.Matches(msg, DefaultKeyMap.Quit):
				return m, tea.Quit

			case key.Matches(msg, DefaultKeyMap.Invoices):
				if m.user != nil {
					m.currentScreen = ScreenInvoices
					return m, m.initScreen(ScreenInvoices)
				}

			case key.Matches(msg, DefaultKeyMap.Account):
				if m.user != nil {
					m.currentScreen = ScreenAccount
					return m, m.initScreen(ScreenAccount)
				}
			}
		}

	case sessionCheckMsg:
		if msg.authenticated {
			return m, m.loadUser()
		}
		m.currentScreen = ScreenSignIn
		return m, m.initScreen(ScreenSignIn)

	case userLoadedMsg:
		if msg.err != nil {
			// Token present but unusable; fall back to sign-in.
			m.err = msg.err
			m.currentScreen = ScreenSignIn
			return m, m.initScreen(ScreenSignIn)
		}
		m.err = nil
		m.user = msg.user
		// Recreate the data screens for the resolved user.
		m.invoices = nil
		m.account = nil
		m.currentScreen = ScreenInvoices
		return m, m.initScreen(ScreenInvoices)

	case SignedInMsg:
		return m, m.loadUser()

	case SignedOutMsg:
		m.user = nil
		m.invoices = nil
		m.account = nil
		m.signin = nil
		m.err = nil
		m.currentScreen = ScreenSignIn
		return m, m.initScreen(ScreenSignIn)

	case SwitchScreenMsg:
		m.currentScreen = msg.Screen
		return m, m.initScreen(msg.Screen)

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	// Route message to current screen
	var cmd tea.Cmd
	switch m.currentScreen {
	case ScreenSignIn:
		if m.signin != nil {
			m.signin, cmd = m.signin.Update(msg)
		}
	case ScreenInvoices:
		if m.invoices != nil {
			m.invoices, cmd = m.invoices.Update(msg)
		}
	case ScreenAccount:
		if m.account != nil {
			m.account, cmd = m.account.Update(msg)
		}
	}

	return m, cmd
}

// View implements tea.Model - renders header + current screen + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := headerStyle.Render(fmt.Sprintf("billfold - %s", m.currentScreen.String()))

	footer := footerStyle.Render("[I]nvoices  [A]ccount  [Q]uit")
	if m.user == nil {
		footer = footerStyle.Render("[Q]uit")
	}

	var content string
	switch m.currentScreen {
	case ScreenSignIn:
		if m.signin != nil {
			content = m.signin.View()
		} else {
			content = "Loading..."
		}
	case ScreenInvoices:
		if m.invoices != nil {
			content = m.invoices.View()
		} else {
			content = "Loading..."
		}
	case ScreenAccount:
		if m.account != nil {
			content = m.account.View()
		} else {
			content = "Loading..."
		}
	}

	errorDisplay := ""
	if m.err != nil {
		errorDisplay = errStyle.Render(fmt.Sprintf("\nError: %s", m.err.Error()))
	}

	// Divider line between header and content
	innerWidth := m.width - 6 // account for border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s%s\n\n%s\n%s", header, divider, content, errorDisplay, divider, footer)

	frame := appBorderStyle.
		Width(innerWidth).
		Height(m.height - 4) // leave room for border top/bottom
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI
func Run(a *app.App) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
