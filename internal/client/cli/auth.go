package cli

import (
	"fmt"

	"github.com/isdelr/blogit-be/internal/client/session"
	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new author account",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if err := rootApp.client.Register(cmd.Context(), name, email, password); err != nil {
			return err
		}
		fmt.Println("Registered. Run 'blogit login' to sign in.")
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store a session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		ident, err := rootApp.sessions.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}
		fmt.Printf("Logged in as %s <%s>\n", ident.Name, ident.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		rootApp.sessions.Logout()
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently authenticated author",
	RunE: func(cmd *cobra.Command, args []string) error {
		state, ident, err := rootApp.sessions.Resolve(cmd.Context())
		if err != nil {
			return err
		}
		if state != session.StateAuthenticated {
			fmt.Println("Not logged in.")
			return nil
		}
		fmt.Printf("%s <%s>\n", ident.Name, ident.Email)
		return nil
	},
}

func init() {
	registerCmd.Flags().String("name", "", "display name")
	registerCmd.Flags().String("email", "", "email address")
	registerCmd.Flags().String("password", "", "password")
	registerCmd.MarkFlagRequired("name")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("password")

	loginCmd.Flags().String("email", "", "email address")
	loginCmd.Flags().String("password", "", "password")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)
}
