package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"catalog/internal/models"
)

func (c *CLI) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in with an existing account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword("Password: ")
			if err != nil {
				return err
			}

			s, err := c.app.Login(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			fmt.Printf("Logged in as %s (%s)\n", s.Email, s.Role)
			return nil
		},
	}
}

func (c *CLI) registerCmd() *cobra.Command {
	var name, role string
	cmd := &cobra.Command{
		Use:   "register <email>",
		Short: "Create an account and sign in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword("Password: ")
			if err != nil {
				return err
			}

			s, err := c.app.Register(cmd.Context(), args[0], password, name, models.Role(role))
			if err != nil {
				return err
			}
			fmt.Printf("Registered and logged in as %s (%s)\n", s.Email, s.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&role, "role", string(models.RoleUser), "account role (admin or user)")
	return cmd
}

func (c *CLI) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.app.Logout(cmd.Context())
			fmt.Println("Logged out")
			return nil
		},
	}
}

func (c *CLI) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the active session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.requireLogin()
			if err != nil {
				return err
			}
			if s.Name != "" {
				fmt.Printf("%s <%s> (%s)\n", s.Name, s.Email, s.Role)
			} else {
				fmt.Printf("%s (%s)\n", s.Email, s.Role)
			}
			return nil
		},
	}
}
