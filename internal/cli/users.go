package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"catalog/internal/app"
	"catalog/internal/models"
)

func (c *CLI) usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts (admin)",
	}
	cmd.AddCommand(
		c.usersListCmd(),
		c.usersAddCmd(),
		c.usersEditCmd(),
		c.usersRemoveCmd(),
	)
	return cmd
}

func (c *CLI) usersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireAdmin(); err != nil {
				return err
			}

			users, err := c.app.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			for _, u := range users {
				fmt.Printf("%4s  %-25s  %-30s  %s\n", u.ID, u.Name, u.Email, u.Role)
			}
			return nil
		},
	}
}

func (c *CLI) usersAddCmd() *cobra.Command {
	var draft app.UserDraft
	var role string
	cmd := &cobra.Command{
		Use:   "add <email>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireAdmin(); err != nil {
				return err
			}

			password, err := readPassword("Password: ")
			if err != nil {
				return err
			}
			draft.Email = args[0]
			draft.Password = password
			draft.Role = models.Role(role)

			u, err := c.app.CreateUser(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Printf("Created user %s: %s\n", u.ID, u.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&draft.Name, "name", "", "display name")
	cmd.Flags().StringVar(&role, "role", string(models.RoleUser), "account role (admin or user)")
	return cmd
}

func (c *CLI) usersEditCmd() *cobra.Command {
	var name, email, role string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireAdmin(); err != nil {
				return err
			}

			user, err := c.app.GetUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				user.Name = name
			}
			if cmd.Flags().Changed("email") {
				user.Email = email
			}
			if cmd.Flags().Changed("role") {
				user.Role = models.Role(role)
			}

			updated, err := c.app.UpdateUser(cmd.Context(), user)
			if err != nil {
				return err
			}
			fmt.Printf("Updated user %s: %s\n", updated.ID, updated.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&role, "role", "", "account role (admin or user)")
	return cmd
}

func (c *CLI) usersRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireAdmin(); err != nil {
				return err
			}

			if err := c.app.DeleteUser(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted user %s\n", args[0])
			return nil
		},
	}
}
