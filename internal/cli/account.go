package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/andy/billfold/internal/service"
	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage your account",
	Long:  `Show account details, change your email, or delete the account.`,
}

var accountShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the signed-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		user, err := currentUser(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("Email: %s\n", user.Email)
		fmt.Printf("ID:    %s\n", user.ID)
		return nil
	},
}

var accountEmailCmd = &cobra.Command{
	Use:   "email [new-email]",
	Short: "Change the account email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		newEmail := args[0]

		user, err := currentUser(ctx)
		if err != nil {
			return err
		}

		updated, loggedOut, err := appInstance.Account.ChangeEmail(ctx, user.ID, newEmail)
		if err != nil {
			return fmt.Errorf("failed to update email: %w", err)
		}

		fmt.Printf("✓ Email updated: %s\n", updated.Email)
		if loggedOut {
			fmt.Println("  You have been signed out. Run 'billfold login' with the new address.")
		}
		return nil
	},
}

var accountDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the account and all its invoices",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		user, err := currentUser(ctx)
		if err != nil {
			return err
		}

		if !confirmPrompt(fmt.Sprintf("This will permanently delete the account %s. Continue?", user.Email)) {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.Account.DeleteAccount(ctx, user.ID); err != nil {
			if errors.Is(err, service.ErrNotLoggedIn) {
				return errNotLoggedIn()
			}
			return fmt.Errorf("failed to delete account: %w", err)
		}

		fmt.Println("✓ Account deleted")
		return nil
	},
}

func confirmPrompt(message string) bool {
	fmt.Printf("%s [y/N] ", message)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func init() {
	accountCmd.AddCommand(accountShowCmd)
	accountCmd.AddCommand(accountEmailCmd)
	accountCmd.AddCommand(accountDeleteCmd)
}
