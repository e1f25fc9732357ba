package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/andy/billfold/internal/domain"
	"github.com/andy/billfold/internal/service"
	"github.com/spf13/cobra"
)

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Manage invoices",
	Long:  `List, add, edit, and delete your invoice records.`,
}

var invoicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your invoices",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		user, err := currentUser(ctx)
		if err != nil {
			return err
		}
		if err := appInstance.Invoices.Refresh(ctx, user.ID); err != nil {
			return fmt.Errorf("failed to fetch invoices: %w", err)
		}

		list := appInstance.Invoices.List()
		if cmd.Flags().Changed("min") {
			threshold, _ := cmd.Flags().GetFloat64("min")
			list.SetFilter(threshold)
		}
		if sorted, _ := cmd.Flags().GetBool("sort"); sorted {
			list.SetSorted(true)
		}

		invoices := list.Visible()
		if len(invoices) == 0 {
			fmt.Println("No invoices found")
			return nil
		}

		fmt.Printf("%-26s %-30s %10s %12s\n", "ID", "Description", "Amount", "Price")
		fmt.Println("--------------------------------------------------------------------------------")
		for _, inv := range invoices {
			fmt.Printf("%-26s %-30s %10.2f $%11.2f\n",
				inv.ID,
				truncate(inv.Description, 30),
				inv.Amount,
				inv.Price,
			)
		}

		total := list.Len()
		if len(invoices) != total {
			fmt.Printf("\nShowing %d of %d invoice(s)\n", len(invoices), total)
		} else {
			fmt.Printf("\nTotal: %d invoice(s)\n", total)
		}
		return nil
	},
}

var invoicesAddCmd = &cobra.Command{
	Use:   "add [description]",
	Short: "Add a new invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		user, err := currentUser(ctx)
		if err != nil {
			return err
		}

		amount, _ := cmd.Flags().GetFloat64("amount")
		price, _ := cmd.Flags().GetFloat64("price")

		invoice := domain.NewInvoice(args[0], amount, price, user.ID)
		if err := invoice.Validate(); err != nil {
			return fmt.Errorf("invalid invoice: %w", err)
		}

		created, err := appInstance.Invoices.Create(ctx, invoice)
		if err != nil {
			return fmt.Errorf("failed to add invoice: %w", err)
		}

		fmt.Printf("✓ Invoice added: %s (ID: %s)\n", created.Description, created.ID)
		fmt.Printf("  Amount: %.2f  Price: $%.2f\n", created.Amount, created.Price)
		return nil
	},
}

var invoicesEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit an existing invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		id := args[0]

		var patch domain.InvoicePatch
		if cmd.Flags().Changed("description") {
			description, _ := cmd.Flags().GetString("description")
			patch.Description = &description
		}
		if cmd.Flags().Changed("amount") {
			amount, _ := cmd.Flags().GetFloat64("amount")
			patch.Amount = &amount
		}
		if cmd.Flags().Changed("price") {
			price, _ := cmd.Flags().GetFloat64("price")
			patch.Price = &price
		}

		if patch.IsEmpty() {
			return fmt.Errorf("nothing to change: pass --description, --amount, or --price")
		}

		updated, err := appInstance.Invoices.Update(ctx, id, patch)
		if err != nil {
			return fmt.Errorf("failed to update invoice: %w", err)
		}

		fmt.Printf("✓ Invoice updated: %s\n", updated.Description)
		return nil
	},
}

var invoicesRmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete an invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		id := args[0]

		if err := appInstance.Invoices.Delete(ctx, id); err != nil {
			if errors.Is(err, service.ErrNotLoggedIn) {
				return errNotLoggedIn()
			}
			return fmt.Errorf("failed to delete invoice: %w", err)
		}

		fmt.Printf("✓ Invoice deleted (ID: %s)\n", id)
		return nil
	},
}

// currentUser resolves the signed-in account, failing fast without a token
func currentUser(ctx context.Context) (*domain.User, error) {
	user, err := appInstance.Account.CurrentUser(ctx)
	if err != nil {
		if errors.Is(err, service.ErrNotLoggedIn) {
			return nil, errNotLoggedIn()
		}
		return nil, fmt.Errorf("failed to fetch current user: %w", err)
	}
	return user, nil
}

func errNotLoggedIn() error {
	return fmt.Errorf("not logged in: run 'billfold login' first")
}

func init() {
	invoicesCmd.AddCommand(invoicesListCmd)
	invoicesCmd.AddCommand(invoicesAddCmd)
	invoicesCmd.AddCommand(invoicesEditCmd)
	invoicesCmd.AddCommand(invoicesRmCmd)

	// List flags
	invoicesListCmd.Flags().Float64("min", 0, "Only show invoices passing the configured price filter policy")
	invoicesListCmd.Flags().Bool("sort", false, "Sort by description")

	// Add flags
	invoicesAddCmd.Flags().Float64("amount", 0, "Quantity (required)")
	invoicesAddCmd.MarkFlagRequired("amount")
	invoicesAddCmd.Flags().Float64("price", 0, "Price (required)")
	invoicesAddCmd.MarkFlagRequired("price")

	// Edit flags
	invoicesEditCmd.Flags().String("description", "", "New description")
	invoicesEditCmd.Flags().Float64("amount", 0, "New amount")
	invoicesEditCmd.Flags().Float64("price", 0, "New price")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
