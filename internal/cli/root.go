package cli

import (
	"github.com/andy/billfold/internal/app"
	"github.com/spf13/cobra"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "billfold",
	Short: "A terminal client for managing your invoices",
	Long: `Billfold manages your personal invoices against the remote invoice API:
sign up, sign in, then create, list, filter, sort, update, and delete
invoice records, and manage your account.

By default, running billfold without arguments launches the interactive TUI.
Use subcommands for CLI operations.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch TUI
		return launchTUI(cmd, args)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

func init() {
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(invoicesCmd)
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(tuiCmd)
}
