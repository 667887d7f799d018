package views

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/nexstore/internal/catalog"
	"github.com/iudanet/nexstore/internal/models"
)

// fakeSource детерминированный источник для тестов проектора
type fakeSource struct {
	apps []models.App
}

func (f *fakeSource) All() []models.App { return f.apps }

func (f *fakeSource) ByCategory(category string) []models.App {
	if category == "" {
		return f.apps
	}
	out := []models.App{}
	for _, a := range f.apps {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}

func (f *fakeSource) Search(term string) []models.App {
	out := []models.App{}
	for _, a := range f.apps {
		if strings.EqualFold(a.Name, term) {
			out = append(out, a)
		}
	}
	return out
}

func (f *fakeSource) TopByRating(n int) []models.App {
	if n > len(f.apps) {
		n = len(f.apps)
	}
	return f.apps[:n]
}

func (f *fakeSource) ByBadge(badgeKey string) []models.App {
	out := []models.App{}
	for _, a := range f.apps {
		if a.HasBadge(badgeKey) {
			out = append(out, a)
		}
	}
	return out
}

func (f *fakeSource) Hot() []models.App {
	out := []models.App{}
	for _, a := range f.apps {
		if a.IsHot {
			out = append(out, a)
		}
	}
	return out
}

// recordingRenderer запоминает порядок и содержимое рендеров
type recordingRenderer struct {
	calls []Name
	last  map[Name][]models.App
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{last: make(map[Name][]models.App)}
}

func (r *recordingRenderer) RenderView(name Name, apps []models.App) {
	r.calls = append(r.calls, name)
	r.last[name] = apps
}

func testApps() []models.App {
	return []models.App{
		{ID: "a", Name: "Alpha", Category: "games", IsHot: true, Badges: []string{"featured"}},
		{ID: "b", Name: "Beta", Category: "music", Badges: []string{}},
		{ID: "c", Name: "Gamma", Category: "games", Badges: []string{"trending", "new"}},
	}
}

func TestProjectorCompute(t *testing.T) {
	p := NewProjector(&fakeSource{apps: testApps()})

	hot := p.Compute(ViewHot, State{})
	require.Len(t, hot, 1)
	assert.Equal(t, "a", hot[0].ID)

	filtered := p.Compute(ViewAll, State{Filter: "games"})
	require.Len(t, filtered, 2)

	all := p.Compute(ViewAll, State{})
	assert.Len(t, all, 3)

	featured := p.Compute(ViewFeatured, State{})
	require.Len(t, featured, 1)
	assert.Equal(t, "a", featured[0].ID)
}

func TestProjectorEmptySearchSuppressed(t *testing.T) {
	p := NewProjector(&fakeSource{apps: testApps()})

	assert.Nil(t, p.Compute(ViewSearch, State{SearchTerm: ""}))

	found := p.Compute(ViewSearch, State{SearchTerm: "Beta"})
	require.Len(t, found, 1)
	assert.Equal(t, "b", found[0].ID)
}

func TestProjectorAdminBadgesOnlyBadged(t *testing.T) {
	p := NewProjector(&fakeSource{apps: testApps()})

	badged := p.Compute(ViewAdminBadges, State{})
	require.Len(t, badged, 2)
	assert.Equal(t, "a", badged[0].ID)
	assert.Equal(t, "c", badged[1].ID)
}

func TestDispatcherApplyRating(t *testing.T) {
	renderer := newRecordingRenderer()
	d := NewDispatcher(NewProjector(&fakeSource{apps: testApps()}), renderer)

	d.Apply(catalog.ChangeRatingChanged)

	assert.Equal(t, []Name{
		ViewHot, ViewPopular, ViewAll, ViewAdminApps, ViewAdminRatings,
	}, renderer.calls)
}

func TestDispatcherApplyBadges(t *testing.T) {
	renderer := newRecordingRenderer()
	d := NewDispatcher(NewProjector(&fakeSource{apps: testApps()}), renderer)

	d.Apply(catalog.ChangeBadgesChanged)

	assert.Equal(t, []Name{
		ViewEditorsChoice, ViewFeatured, ViewTrending, ViewNew,
		ViewAdminApps, ViewAdminBadges,
	}, renderer.calls)
}

func TestDispatcherApplyRecordTouchesEverything(t *testing.T) {
	renderer := newRecordingRenderer()
	d := NewDispatcher(NewProjector(&fakeSource{apps: testApps()}), renderer)

	d.Apply(catalog.ChangeRecordAdded)

	// Поиск с пустым запросом подменяется Popular, поэтому Popular
	// встречается дважды, а Search не встречается вовсе.
	assert.Equal(t, []Name{
		ViewHot, ViewPopular, ViewAll, ViewPopular,
		ViewEditorsChoice, ViewFeatured, ViewTrending, ViewNew,
		ViewAdminApps, ViewAdminRatings, ViewAdminBadges,
	}, renderer.calls)
}

func TestDispatcherApplyNone(t *testing.T) {
	renderer := newRecordingRenderer()
	d := NewDispatcher(NewProjector(&fakeSource{apps: testApps()}), renderer)

	d.Apply(catalog.ChangeNone)

	assert.Empty(t, renderer.calls)
}

func TestDispatcherSetSearchTerm(t *testing.T) {
	renderer := newRecordingRenderer()
	d := NewDispatcher(NewProjector(&fakeSource{apps: testApps()}), renderer)

	d.SetSearchTerm("Alpha")
	require.Equal(t, []Name{ViewSearch}, renderer.calls)
	require.Len(t, renderer.last[ViewSearch], 1)

	// Сброс запроса снова показывает Popular
	d.SetSearchTerm("")
	assert.Equal(t, []Name{ViewSearch, ViewPopular}, renderer.calls)
}

func TestDispatcherNormalizesSearchTerm(t *testing.T) {
	renderer := newRecordingRenderer()
	d := NewDispatcher(NewProjector(&fakeSource{apps: testApps()}), renderer)

	d.SetSearchTerm("  ALPHA ")
	assert.Equal(t, "alpha", d.State().SearchTerm)
	require.Len(t, renderer.last[ViewSearch], 1)

	// Запрос из одних пробелов эквивалентен пустому
	d.SetSearchTerm("   ")
	assert.Equal(t, "", d.State().SearchTerm)
	assert.Equal(t, []Name{ViewSearch, ViewPopular}, renderer.calls)
}

func TestDispatcherSetFilter(t *testing.T) {
	renderer := newRecordingRenderer()
	d := NewDispatcher(NewProjector(&fakeSource{apps: testApps()}), renderer)

	d.SetFilter("games")
	require.Equal(t, []Name{ViewAll}, renderer.calls)
	assert.Len(t, renderer.last[ViewAll], 2)
	assert.Equal(t, "games", d.State().Filter)
}
