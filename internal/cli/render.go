package cli

import (
	"fmt"
	"text/template"

	"github.com/iudanet/nexstore/internal/models"
	"github.com/iudanet/nexstore/internal/views"
)

var (
	appListTmpl    = template.Must(template.New("appList").Parse(appListTemplate))
	appDetailsTmpl = template.Must(template.New("appDetails").Parse(appDetailsTemplate))
	usersListTmpl  = template.Must(template.New("usersList").Parse(usersListTemplate))
)

// viewTitles заголовки секций
var viewTitles = map[views.Name]string{
	views.ViewHot:           "Hot Apps",
	views.ViewPopular:       "Popular Apps",
	views.ViewAll:           "All Apps",
	views.ViewSearch:        "Search Results",
	views.ViewEditorsChoice: "Editor's Choice",
	views.ViewFeatured:      "Featured",
	views.ViewTrending:      "Trending",
	views.ViewNew:           "New",
	views.ViewAdminApps:     "App Management",
	views.ViewAdminRatings:  "Rating Management",
	views.ViewAdminBadges:   "Badge Management",
}

type appListData struct {
	Title string
	Apps  []models.App
}

// RenderView implements views.Renderer.
func (c *Cli) RenderView(name views.Name, apps []models.App) {
	title, ok := viewTitles[name]
	if !ok {
		title = string(name)
	}
	c.renderApps(title, apps)
}

func (c *Cli) renderApps(title string, apps []models.App) {
	if err := appListTmpl.Execute(c.out, appListData{Title: title, Apps: apps}); err != nil {
		fmt.Fprintf(c.out, "render error: %v\n", err)
	}
}

func (c *Cli) renderAppDetails(app models.App) {
	if err := appDetailsTmpl.Execute(c.out, app); err != nil {
		fmt.Fprintf(c.out, "render error: %v\n", err)
	}
}

func (c *Cli) renderUsers(users []models.User) {
	if err := usersListTmpl.Execute(c.out, users); err != nil {
		fmt.Fprintf(c.out, "render error: %v\n", err)
	}
}
