package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iudanet/nexstore/internal/models"
	"github.com/iudanet/nexstore/internal/storage"
)

func (c *Cli) runTheme(ctx context.Context, args []string) error {
	if len(args) == 0 {
		theme, err := c.currentTheme(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Current theme: %s\n", theme)
		fmt.Fprintf(c.out, "Available: %s\n", themeList())
		return nil
	}

	theme := models.Theme(strings.ToLower(args[0]))
	if !models.ValidTheme(theme) {
		return fmt.Errorf("unknown theme: %s. Available: %s", args[0], themeList())
	}

	if err := c.settings.SaveTheme(ctx, theme); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}

	fmt.Fprintf(c.out, "✓ Theme set to %s\n", theme)
	return nil
}

// currentTheme возвращает сохраненную тему, при отсутствии дефолтную
func (c *Cli) currentTheme(ctx context.Context) (models.Theme, error) {
	theme, err := c.settings.GetTheme(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSettingNotFound) {
			return models.ThemeDefault, nil
		}
		return "", fmt.Errorf("failed to load theme: %w", err)
	}
	return theme, nil
}

func themeList() string {
	names := make([]string, len(models.Themes))
	for i, t := range models.Themes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
