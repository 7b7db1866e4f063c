// Package cli is the terminal front end for the catalog client. It renders
// data and gates admin-only commands on the session role; the backend itself
// enforces no roles, so the gating here is presentation only.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"catalog/internal/app"
	"catalog/internal/models"
)

// CLI carries the shared application instance across commands.
type CLI struct {
	app *app.App
}

// Execute runs the root command.
func Execute() error {
	c := &CLI{}
	defer func() {
		if c.app != nil {
			_ = c.app.Close()
		}
	}()
	return c.rootCmd().Execute()
}

func (c *CLI) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Browse and manage the library catalog",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New()
			if err != nil {
				return err
			}
			c.app = a
			return nil
		},
	}

	root.AddCommand(
		c.loginCmd(),
		c.registerCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.booksCmd(),
		c.usersCmd(),
	)
	return root
}

// requireLogin fails unless a session is active.
func (c *CLI) requireLogin() (*models.Session, error) {
	s := c.app.Session()
	if s == nil {
		return nil, errors.New("not logged in, run: catalog login <email>")
	}
	return s, nil
}

// requireAdmin fails unless the active session carries the admin role.
func (c *CLI) requireAdmin() error {
	s, err := c.requireLogin()
	if err != nil {
		return err
	}
	if s.Role != models.RoleAdmin {
		return errors.New("admin role required")
	}
	return nil
}

// readPassword reads a password without echo when stdin is a terminal.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	if term.IsTerminal(int(syscall.Stdin)) {
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	// Piped input (tests, scripts)
	var line string
	if _, err := fmt.Fscanln(os.Stdin, &line); err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}
