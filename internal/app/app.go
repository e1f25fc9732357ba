package app

import (
	"context"
	"fmt"
	"strings"
	"syscall"
	"time"

	"github.com/andy/billfold/internal/config"
	"github.com/andy/billfold/internal/repository"
	"github.com/andy/billfold/internal/service"
	"github.com/andy/billfold/internal/session"
	"golang.org/x/term"
)

// App is the dependency injection container for all application components
type App struct {
	Config  *config.Config
	Session session.Store

	// Repositories
	AuthRepo    repository.AuthRepository
	UserRepo    repository.UserRepository
	InvoiceRepo repository.InvoiceRepository

	// Services
	Invoices service.InvoiceService
	Account  service.AccountService
}

// New creates a new App instance from the default config path
func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(ctx, cfg)
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	tokens := session.NewStore()
	timeout := time.Duration(cfg.API.TimeoutSeconds) * time.Second

	authRepo := repository.NewAuthRepo(cfg.API.BaseURL, timeout, tokens)
	userRepo := repository.NewUserRepo(cfg.API.BaseURL, timeout, tokens)
	invoiceRepo := repository.NewInvoiceRepo(cfg.API.BaseURL, timeout, tokens)

	list := service.NewListState(cfg.List.FilterPolicy)
	invoices := service.NewInvoiceService(invoiceRepo, tokens, list)
	account := service.NewAccountService(authRepo, userRepo, tokens, list, cfg.Session.ReloginOnEmailChange)

	return &App{
		Config:      cfg,
		Session:     tokens,
		AuthRepo:    authRepo,
		UserRepo:    userRepo,
		InvoiceRepo: invoiceRepo,
		Invoices:    invoices,
		Account:     account,
	}, nil
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(config.DefaultConfigPath())
}

// PromptPassword reads a password from the terminal without echo
func PromptPassword(label string) (string, error) {
	fmt.Printf("%s: ", label)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if len(password) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}
	return string(password), nil
}

// PromptNewPassword reads and confirms a password for registration
func PromptNewPassword() (string, error) {
	password, err := PromptPassword("Enter a password")
	if err != nil {
		return "", err
	}

	confirm, err := PromptPassword("Confirm password")
	if err != nil {
		return "", err
	}

	if password != confirm {
		return "", fmt.Errorf("passwords do not match")
	}

	return password, nil
}

// PromptLine reads one trimmed line of visible input
func PromptLine(label string) (string, error) {
	fmt.Printf("%s: ", label)
	var value string
	if _, err := fmt.Scanln(&value); err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(value), nil
}
