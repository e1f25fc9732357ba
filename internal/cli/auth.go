package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/andy/billfold/internal/app"
	"github.com/andy/billfold/internal/domain"
	"github.com/andy/billfold/internal/service"
	"github.com/spf13/cobra"
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Register a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		var err error
		if email == "" {
			email, err = app.PromptLine("Email")
			if err != nil {
				return err
			}
		}
		if password == "" {
			password, err = app.PromptNewPassword()
			if err != nil {
				return err
			}
		}

		creds := domain.Credentials{Email: email, Password: password}
		if err := appInstance.Account.SignUp(ctx, creds); err != nil {
			return fmt.Errorf("sign-up failed: %w", err)
		}

		fmt.Printf("✓ Account registered: %s\n", email)
		fmt.Println("  Run 'billfold login' to sign in.")
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		email, _ := cmd.Flags().GetString("email")

		var err error
		if email == "" {
			email, err = app.PromptLine("Email")
			if err != nil {
				return err
			}
		}

		// Password is always prompted, never taken from a flag, so it
		// stays out of shell history.
		password, err := app.PromptPassword("Password")
		if err != nil {
			return err
		}

		creds := domain.Credentials{Email: email, Password: password}
		if err := appInstance.Account.SignIn(ctx, creds); err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				return fmt.Errorf("Invalid Credentials!")
			}
			return fmt.Errorf("sign-in failed: %w", err)
		}

		fmt.Printf("✓ Signed in as %s\n", email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := appInstance.Account.Logout(); err != nil {
			if errors.Is(err, service.ErrNotLoggedIn) {
				return fmt.Errorf("not logged in")
			}
			return fmt.Errorf("logout failed: %w", err)
		}

		fmt.Println("✓ Signed out")
		return nil
	},
}

func init() {
	signupCmd.Flags().String("email", "", "Account email")
	signupCmd.Flags().String("password", "", "Account password (prompted when omitted)")

	loginCmd.Flags().String("email", "", "Account email")
}
