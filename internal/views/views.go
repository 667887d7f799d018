// Package views содержит производные представления каталога.
// Представление — чистая функция от snapshot-а каталога и транзиентного
// UI-состояния (активный фильтр, поисковый запрос); само по себе оно
// никаких данных не хранит.
package views

import (
	"github.com/iudanet/nexstore/internal/models"
)

// Name идентифицирует производное представление каталога
type Name string

const (
	ViewHot           Name = "hot"
	ViewPopular       Name = "popular"
	ViewAll           Name = "all"
	ViewSearch        Name = "search"
	ViewEditorsChoice Name = "editors-choice"
	ViewFeatured      Name = "featured"
	ViewTrending      Name = "trending"
	ViewNew           Name = "new"
	ViewAdminApps     Name = "admin-apps"
	ViewAdminRatings  Name = "admin-ratings"
	ViewAdminBadges   Name = "admin-badges"
)

// AllViews перечисляет представления в порядке отображения.
// Диспетчер использует этот порядок для детерминированного обхода.
var AllViews = []Name{
	ViewHot,
	ViewPopular,
	ViewAll,
	ViewSearch,
	ViewEditorsChoice,
	ViewFeatured,
	ViewTrending,
	ViewNew,
	ViewAdminApps,
	ViewAdminRatings,
	ViewAdminBadges,
}

// Page задает активную страницу нижней навигации
type Page string

const (
	PageToday  Page = "today"
	PageApps   Page = "apps"
	PageSearch Page = "search"
)

// State транзиентное UI-состояние. Не персистится.
type State struct {
	Filter     string // активный фильтр категории, пусто = без фильтра
	SearchTerm string // нормализованный поисковый запрос
	Page       Page   // активная страница
}

// popularLimit размер секции Popular
const popularLimit = 6

// Source перечисляет запросы каталога, из которых собираются
// представления. Реализуется *catalog.Catalog.
type Source interface {
	All() []models.App
	ByCategory(category string) []models.App
	Search(term string) []models.App
	TopByRating(n int) []models.App
	ByBadge(badgeKey string) []models.App
	Hot() []models.App
}

// Projector вычисляет представления по запросу.
type Projector struct {
	source Source
}

// NewProjector создает проектор поверх источника каталога.
func NewProjector(source Source) *Projector {
	return &Projector{source: source}
}

// Compute вычисляет представление с данным именем.
// Для ViewSearch c пустым запросом возвращается nil: пустой запрос
// не ищется, вместо результатов показывается Popular (подмену делает
// диспетчер).
func (p *Projector) Compute(name Name, state State) []models.App {
	switch name {
	case ViewHot:
		return p.source.Hot()
	case ViewPopular:
		return p.source.TopByRating(popularLimit)
	case ViewAll:
		return p.source.ByCategory(state.Filter)
	case ViewSearch:
		if state.SearchTerm == "" {
			return nil
		}
		return p.source.Search(state.SearchTerm)
	case ViewEditorsChoice:
		return p.source.ByBadge("editors-choice")
	case ViewFeatured:
		return p.source.ByBadge("featured")
	case ViewTrending:
		return p.source.ByBadge("trending")
	case ViewNew:
		return p.source.ByBadge("new")
	case ViewAdminApps, ViewAdminRatings:
		return p.source.All()
	case ViewAdminBadges:
		// Административный список бейджей показывает только записи,
		// у которых бейджи есть.
		out := []models.App{}
		for _, app := range p.source.All() {
			if len(app.Badges) > 0 {
				out = append(out, app)
			}
		}
		return out
	default:
		return nil
	}
}
