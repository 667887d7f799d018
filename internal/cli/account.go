package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/nexstore/internal/account"
)

func (c *Cli) runRegister(ctx context.Context) error {
	fmt.Fprintln(c.out, "=== Registration ===")
	fmt.Fprintln(c.out)

	username, err := c.readInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	password, err := c.readSecret("Password (min 6 chars): ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	confirm, err := c.readSecret("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read password confirmation: %w", err)
	}

	session, err := c.accounts.Register(ctx, username, password, confirm)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "✓ Registration successful!")
	fmt.Fprintf(c.out, "Username: %s\n", session.Username)
	fmt.Fprintf(c.out, "Email:    %s\n", session.Email)
	return nil
}

func (c *Cli) runLogin(ctx context.Context) error {
	fmt.Fprintln(c.out, "=== Login ===")
	fmt.Fprintln(c.out)

	username, err := c.readInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	password, err := c.readSecret("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	session, err := c.accounts.Login(ctx, username, password)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "✓ Login successful!")
	fmt.Fprintf(c.out, "Welcome back, %s\n", session.Username)
	return nil
}

func (c *Cli) runLogout(ctx context.Context) error {
	if err := c.accounts.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "✓ Logged out")
	return nil
}

func (c *Cli) runStatus(ctx context.Context) error {
	fmt.Fprintln(c.out, "=== Session Status ===")
	fmt.Fprintln(c.out)

	session, err := c.accounts.Current()
	if err != nil {
		if errors.Is(err, account.ErrNotAuthenticated) {
			fmt.Fprintln(c.out, "Status: Not logged in")
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, "Run 'nexstore login' or 'nexstore register' to start.")
			return nil
		}
		return err
	}

	fmt.Fprintln(c.out, "Status: Logged in")
	fmt.Fprintf(c.out, "Username: %s\n", session.Username)
	fmt.Fprintf(c.out, "Email:    %s\n", session.Email)

	theme, err := c.currentTheme(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Theme:    %s\n", theme)
	return nil
}

func (c *Cli) runResetPassword(ctx context.Context) error {
	fmt.Fprintln(c.out, "=== Change Password ===")
	fmt.Fprintln(c.out)

	password, err := c.readSecret("New password (min 6 chars): ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	confirm, err := c.readSecret("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read password confirmation: %w", err)
	}

	if err := c.accounts.ResetPassword(ctx, password, confirm); err != nil {
		return err
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "✓ Password changed")
	return nil
}
