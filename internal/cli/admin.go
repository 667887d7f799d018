package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iudanet/nexstore/internal/admin"
	"github.com/iudanet/nexstore/internal/catalog"
	"github.com/iudanet/nexstore/internal/refdata"
	"github.com/iudanet/nexstore/internal/views"
)

// maxAttempts число попыток на каждый шаг проверки
const maxAttempts = 3

// bumpDelta шаг быстрой корректировки рейтинга
const bumpDelta = 0.5

func (c *Cli) runAdmin(ctx context.Context) error {
	fmt.Fprintln(c.out, "=== Admin Access ===")
	fmt.Fprintln(c.out)

	token, err := c.unlockAdmin()
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "✓ Access granted. Type 'help' for commands, 'exit' to leave.")

	return c.adminLoop(ctx, token)
}

// unlockAdmin проводит трехшаговую проверку. На каждый шаг дается
// maxAttempts попыток, как в исходном диалоге с повторным вводом.
func (c *Cli) unlockAdmin() (string, error) {
	steps := []struct {
		prompt string
		hidden bool
		check  func(string) error
	}{
		{"Primary PIN: ", true, c.gate.CheckPrimaryPIN},
		{"Security PIN: ", true, c.gate.CheckSecurityPIN},
		{"Security answer (favorite color): ", false, c.gate.CheckSecurityAnswer},
	}

	for _, step := range steps {
		passed := false
		for attempt := 0; attempt < maxAttempts; attempt++ {
			var input string
			var err error
			if step.hidden {
				input, err = c.readSecret(step.prompt)
			} else {
				input, err = c.readInput(step.prompt)
			}
			if err != nil {
				return "", fmt.Errorf("failed to read input: %w", err)
			}
			if step.check(input) == nil {
				passed = true
				break
			}
			fmt.Fprintln(c.out, "Invalid, try again.")
		}
		if !passed {
			return "", admin.ErrAccessDenied
		}
	}

	return c.gate.IssueToken()
}

func (c *Cli) adminLoop(ctx context.Context, token string) error {
	for {
		line, err := c.readInput("admin> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		command, args := fields[0], fields[1:]

		if command == "exit" || command == "quit" {
			fmt.Fprintln(c.out, "Bye.")
			return nil
		}

		if err := c.runAdminCommand(ctx, token, command, args); err != nil {
			fmt.Fprintf(c.out, "Error: %v\n", err)
		}
	}
}

func (c *Cli) runAdminCommand(ctx context.Context, token, command string, args []string) error {
	switch command {
	case "help":
		fmt.Fprint(c.out, adminHelpText)
		return nil
	case "list":
		c.dispatcher.Render(views.ViewAdminApps)
		return nil
	case "users":
		c.renderUsers(c.accounts.Users())
		return nil
	case "add":
		return c.adminAdd(ctx, token)
	case "edit":
		return c.adminEdit(ctx, token, args)
	case "remove":
		return c.adminRemove(ctx, token, args)
	case "rating":
		return c.adminRating(ctx, token, args)
	case "bump":
		return c.adminBump(ctx, token, args)
	case "badges":
		return c.adminBadges(ctx, token, args)
	case "badge-add":
		return c.adminBadgeAdd(ctx, token, args)
	case "ban":
		return c.adminBan(ctx, token, args, true)
	case "unban":
		return c.adminBan(ctx, token, args, false)
	default:
		return fmt.Errorf("unknown command: %s. Type 'help'", command)
	}
}

func (c *Cli) adminAdd(ctx context.Context, token string) error {
	if err := c.gate.Verify(token); err != nil {
		return err
	}

	fields := catalog.CreateFields{}
	var err error
	if fields.Name, err = c.readInput("Name: "); err != nil {
		return err
	}
	if fields.Description, err = c.readInput("Description: "); err != nil {
		return err
	}
	if fields.Category, err = c.readInput(
		fmt.Sprintf("Category (%s): ", strings.Join(refdata.CategoryKeys(), ", "))); err != nil {
		return err
	}
	if fields.DownloadURL, err = c.readInput("Download URL: "); err != nil {
		return err
	}
	ratingRaw, err := c.readInput("Rating (1.0 - 5.0): ")
	if err != nil {
		return err
	}
	if ratingRaw != "" {
		if fields.Rating, err = strconv.ParseFloat(ratingRaw, 64); err != nil {
			return fmt.Errorf("invalid rating: %s", ratingRaw)
		}
	}

	app, change, err := c.catalog.Create(ctx, fields)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "✓ Added %s (id: %s)\n", app.Name, app.ID)
	c.dispatcher.Apply(change)
	return nil
}

func (c *Cli) adminEdit(ctx context.Context, token string, args []string) error {
	if err := c.gate.Verify(token); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: edit <id>")
	}

	app, err := c.catalog.Get(args[0])
	if err != nil {
		return err
	}
	c.renderAppDetails(app)
	fmt.Fprintln(c.out, "Empty input keeps the current value.")

	upd := catalog.AppUpdate{}
	prompts := []struct {
		label   string
		current string
		dst     **string
	}{
		{"Name", app.Name, &upd.Name},
		{"Developer", app.Developer, &upd.Developer},
		{"Description", app.Description, &upd.Description},
		{"Category", app.Category, &upd.Category},
		{"Download URL", app.DownloadURL, &upd.DownloadURL},
	}
	for _, p := range prompts {
		input, err := c.readInput(fmt.Sprintf("%s [%s]: ", p.label, p.current))
		if err != nil {
			return err
		}
		if input != "" {
			value := input
			*p.dst = &value
		}
	}

	ratingRaw, err := c.readInput(fmt.Sprintf("Rating [%.1f]: ", app.Rating))
	if err != nil {
		return err
	}
	if ratingRaw != "" {
		value, err := strconv.ParseFloat(ratingRaw, 64)
		if err != nil {
			return fmt.Errorf("invalid rating: %s", ratingRaw)
		}
		upd.Rating = &value
	}

	hotRaw, err := c.readInput(fmt.Sprintf("Hot (y/n) [%t]: ", app.IsHot))
	if err != nil {
		return err
	}
	switch strings.ToLower(hotRaw) {
	case "y", "yes":
		value := true
		upd.IsHot = &value
	case "n", "no":
		value := false
		upd.IsHot = &value
	}

	updated, change, err := c.catalog.Update(ctx, app.ID, upd)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "✓ Updated %s\n", updated.Name)
	c.dispatcher.Apply(change)
	return nil
}

func (c *Cli) adminRemove(ctx context.Context, token string, args []string) error {
	if err := c.gate.Verify(token); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: remove <id>")
	}

	confirm, err := c.readInput(fmt.Sprintf("Remove %s? (y/n): ", args[0]))
	if err != nil {
		return err
	}
	if strings.ToLower(confirm) != "y" {
		fmt.Fprintln(c.out, "Cancelled.")
		return nil
	}

	change, err := c.catalog.Remove(ctx, args[0])
	if err != nil {
		return err
	}
	if change == catalog.ChangeNone {
		fmt.Fprintln(c.out, "Nothing to remove.")
		return nil
	}

	fmt.Fprintln(c.out, "✓ Removed")
	c.dispatcher.Apply(change)
	return nil
}

func (c *Cli) adminRating(ctx context.Context, token string, args []string) error {
	if err := c.gate.Verify(token); err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("usage: rating <id> <value>")
	}

	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid rating: %s", args[1])
	}

	app, change, err := c.catalog.SetRating(ctx, args[0], value)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "✓ %s rating is now %.1f\n", app.Name, app.Rating)
	c.dispatcher.Apply(change)
	return nil
}

func (c *Cli) adminBump(ctx context.Context, token string, args []string) error {
	if err := c.gate.Verify(token); err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("usage: bump <id> up|down")
	}

	delta := bumpDelta
	switch args[1] {
	case "up":
	case "down":
		delta = -delta
	default:
		return fmt.Errorf("usage: bump <id> up|down")
	}

	app, change, err := c.catalog.AdjustRating(ctx, args[0], delta)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "✓ %s rating is now %.1f\n", app.Name, app.Rating)
	c.dispatcher.Apply(change)
	return nil
}

func (c *Cli) adminBadges(ctx context.Context, token string, args []string) error {
	if err := c.gate.Verify(token); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: badges <id> [key1,key2,...]")
	}

	var keys []string
	if len(args) > 1 {
		for _, key := range strings.Split(args[1], ",") {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			if _, ok := refdata.BadgeByKey(key); !ok {
				return fmt.Errorf("unknown badge: %s. Use: %s",
					key, strings.Join(refdata.BadgeKeys(), ", "))
			}
			keys = append(keys, key)
		}
	}

	change, err := c.catalog.SetBadges(ctx, args[0], keys)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, "✓ Badges updated")
	c.dispatcher.Apply(change)
	return nil
}

func (c *Cli) adminBadgeAdd(ctx context.Context, token string, args []string) error {
	if err := c.gate.Verify(token); err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("usage: badge-add <id> <key>")
	}

	if _, ok := refdata.BadgeByKey(args[1]); !ok {
		return fmt.Errorf("unknown badge: %s. Use: %s",
			args[1], strings.Join(refdata.BadgeKeys(), ", "))
	}

	change, err := c.catalog.AddBadge(ctx, args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, "✓ Badge added")
	c.dispatcher.Apply(change)
	return nil
}

func (c *Cli) adminBan(ctx context.Context, token string, args []string, ban bool) error {
	if err := c.gate.Verify(token); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: %s <username>", map[bool]string{true: "ban", false: "unban"}[ban])
	}

	if ban {
		if err := c.accounts.Ban(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "✓ %s banned\n", args[0])
	} else {
		if err := c.accounts.Unban(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "✓ %s unbanned\n", args[0])
	}

	c.renderUsers(c.accounts.Users())
	return nil
}
