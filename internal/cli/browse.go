package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iudanet/nexstore/internal/refdata"
	"github.com/iudanet/nexstore/internal/views"
)

// badgeViews сопоставляет ключ бейджа с его секцией
var badgeViews = map[string]views.Name{
	"editors-choice": views.ViewEditorsChoice,
	"featured":       views.ViewFeatured,
	"trending":       views.ViewTrending,
	"new":            views.ViewNew,
}

func (c *Cli) runToday() error {
	c.dispatcher.SetPage(views.PageToday)
	c.dispatcher.Render(views.ViewHot)
	c.dispatcher.Render(views.ViewPopular)
	return nil
}

func (c *Cli) runApps(args []string) error {
	category := ""
	if len(args) > 0 {
		category = strings.ToLower(args[0])
		if !refdata.KnownCategory(category) {
			return fmt.Errorf("unknown category: %s. Use: %s",
				category, strings.Join(refdata.CategoryKeys(), ", "))
		}
	}
	c.dispatcher.SetPage(views.PageApps)
	c.dispatcher.SetFilter(category)
	return nil
}

func (c *Cli) runSearch(args []string) error {
	c.dispatcher.SetPage(views.PageSearch)
	// Нормализацию запроса делает диспетчер
	c.dispatcher.SetSearchTerm(strings.Join(args, " "))
	return nil
}

func (c *Cli) runTop(args []string) error {
	n := 10
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed < 1 {
			return fmt.Errorf("invalid count: %s", args[0])
		}
		n = parsed
	}
	c.renderApps("Top Rated", c.catalog.TopByRating(n))
	return nil
}

func (c *Cli) runBadge(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing badge key. Usage: nexstore badge <%s>",
			strings.Join(refdata.BadgeKeys(), "|"))
	}
	name, ok := badgeViews[strings.ToLower(args[0])]
	if !ok {
		return fmt.Errorf("no section for badge: %s", args[0])
	}
	c.dispatcher.Render(name)
	return nil
}

func (c *Cli) runDownload(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing app id. Usage: nexstore download <id>")
	}
	app, err := c.catalog.Get(args[0])
	if err != nil {
		return err
	}
	c.renderAppDetails(app)
	if app.DownloadURL != "" {
		fmt.Fprintf(c.out, "\nOpen the link above in a browser to download %s.\n", app.Name)
	}
	return nil
}
