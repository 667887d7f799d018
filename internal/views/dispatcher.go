package views

import (
	"strings"

	"github.com/iudanet/nexstore/internal/catalog"
	"github.com/iudanet/nexstore/internal/models"
)

// Renderer принимает пересчитанное представление. Реализуется UI-слоем.
type Renderer interface {
	RenderView(name Name, apps []models.App)
}

// affected сопоставляет тег изменения каталога с представлениями,
// которые от него зависят. Единственное место, где это знание живет:
// вызывающий код мутаций представления не перечисляет.
var affected = map[catalog.Change][]Name{
	catalog.ChangeRatingChanged: {
		ViewHot, ViewPopular, ViewAll, ViewAdminApps, ViewAdminRatings,
	},
	catalog.ChangeBadgesChanged: {
		ViewEditorsChoice, ViewFeatured, ViewTrending, ViewNew,
		ViewAdminApps, ViewAdminBadges,
	},
	catalog.ChangeRecordAdded:   AllViews,
	catalog.ChangeRecordEdited:  AllViews,
	catalog.ChangeRecordRemoved: AllViews,
}

// Dispatcher связывает теги изменений с пересчетом представлений.
type Dispatcher struct {
	projector *Projector
	renderer  Renderer
	state     State
}

// NewDispatcher создает диспетчер с начальным состоянием UI.
func NewDispatcher(projector *Projector, renderer Renderer) *Dispatcher {
	return &Dispatcher{
		projector: projector,
		renderer:  renderer,
		state:     State{Page: PageToday},
	}
}

// State возвращает текущее UI-состояние.
func (d *Dispatcher) State() State {
	return d.state
}

// SetFilter меняет фильтр категории и пересчитывает список All.
func (d *Dispatcher) SetFilter(category string) {
	d.state.Filter = category
	d.Render(ViewAll)
}

// SetSearchTerm нормализует поисковый запрос, меняет состояние и
// пересчитывает результаты.
func (d *Dispatcher) SetSearchTerm(term string) {
	d.state.SearchTerm = strings.ToLower(strings.TrimSpace(term))
	d.Render(ViewSearch)
}

// SetPage переключает активную страницу.
func (d *Dispatcher) SetPage(page Page) {
	d.state.Page = page
}

// Render пересчитывает одно представление и отдает его рендереру.
// Поиск с пустым запросом подменяется секцией Popular.
func (d *Dispatcher) Render(name Name) {
	if name == ViewSearch && d.state.SearchTerm == "" {
		d.renderer.RenderView(ViewPopular, d.projector.Compute(ViewPopular, d.state))
		return
	}
	d.renderer.RenderView(name, d.projector.Compute(name, d.state))
}

// Apply пересчитывает все представления, затронутые изменением.
// Обход идет в порядке AllViews, порядок детерминирован.
func (d *Dispatcher) Apply(change catalog.Change) {
	if change == catalog.ChangeNone {
		return
	}
	names, ok := affected[change]
	if !ok {
		return
	}
	set := make(map[Name]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	for _, n := range AllViews {
		if _, hit := set[n]; hit {
			d.Render(n)
		}
	}
}

// RenderAll пересчитывает все представления. Используется при старте.
func (d *Dispatcher) RenderAll() {
	for _, n := range AllViews {
		d.Render(n)
	}
}
