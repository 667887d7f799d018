package catalog

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/nexstore/internal/models"
	"github.com/iudanet/nexstore/internal/storage/boltdb"
	"github.com/iudanet/nexstore/internal/validation"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTestCatalog создает каталог поверх временного BoltDB файла
func createTestCatalog(t *testing.T, seed []models.App) (*Catalog, *boltdb.Storage) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "catalog_test.db")
	store, err := boltdb.New(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	c := New(testLogger(), store, seed)
	require.NoError(t, c.Initialize(context.Background()))

	return c, store
}

func seedApps() []models.App {
	return []models.App{
		{ID: "alpha", Name: "Alpha Chat", Developer: "Acme", Description: "Messaging", Category: "social", Rating: 4.5, IsHot: true, Badges: []string{"featured"}},
		{ID: "beta", Name: "Beta Play", Developer: "Acme", Description: "Arcade games", Category: "games", Rating: 4.5, Badges: []string{"trending"}},
		{ID: "gamma", Name: "Gamma Notes", Developer: "Umbrella", Description: "Alpha-grade notes", Category: "productivity", Rating: 3.2, Badges: []string{}},
		{ID: "delta", Name: "Delta Cam", Developer: "Umbrella", Description: "Camera filters", Category: "photography", Rating: 4.8, IsHot: true, Badges: []string{"trending", "new"}},
	}
}

func TestInitializeSeedsOnce(t *testing.T) {
	ctx := context.Background()
	c, store := createTestCatalog(t, seedApps())

	require.Len(t, c.All(), 4)

	// Удаляем запись и заново инициализируем новый инстанс поверх
	// того же хранилища: стартовый набор повторно не применяется.
	_, err := c.Remove(ctx, "alpha")
	require.NoError(t, err)

	fresh := New(testLogger(), store, seedApps())
	require.NoError(t, fresh.Initialize(ctx))
	assert.Len(t, fresh.All(), 3)

	// Повторный Initialize того же инстанса тоже идемпотентен
	require.NoError(t, fresh.Initialize(ctx))
	assert.Len(t, fresh.All(), 3)
}

func TestCreatePersistsAndDefaults(t *testing.T) {
	ctx := context.Background()
	c, store := createTestCatalog(t, nil)

	app, change, err := c.Create(ctx, CreateFields{
		Name:        "Foo",
		Description: "A social app",
		Category:    "social",
		DownloadURL: "https://x",
		Rating:      4.2,
	})
	require.NoError(t, err)
	assert.Equal(t, ChangeRecordAdded, change)
	assert.Equal(t, "User Added", app.Developer)
	assert.Equal(t, "fas fa-mobile-alt", app.Icon)
	assert.False(t, app.IsHot)
	assert.Empty(t, app.Badges)

	all := c.All()
	require.Len(t, all, 1)
	assert.Equal(t, "Foo", all[0].Name)
	assert.InDelta(t, 4.2, all[0].Rating, 0.0001)

	// Изменение долговечно: новый инстанс видит запись после Initialize
	fresh := New(testLogger(), store, nil)
	require.NoError(t, fresh.Initialize(ctx))
	got := fresh.All()
	require.Len(t, got, 1)
	assert.Equal(t, app.ID, got[0].ID)
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	c, _ := createTestCatalog(t, nil)

	_, change, err := c.Create(ctx, CreateFields{
		Name:        "",
		Description: "",
		Category:    "social",
		DownloadURL: "https://x",
		Rating:      9,
	})
	require.Error(t, err)
	assert.Equal(t, ChangeNone, change)

	var vErr *validation.Error
	require.ErrorAs(t, err, &vErr)
	assert.ElementsMatch(t, []string{"name", "description", "rating"}, vErr.Fields)

	// Ничего не применилось
	assert.Empty(t, c.All())
}

func TestCreateIDUniqueness(t *testing.T) {
	ctx := context.Background()
	c, _ := createTestCatalog(t, nil)

	ids := make(map[string]struct{})
	for i := 0; i < 20; i++ {
		app, _, err := c.Create(ctx, CreateFields{
			Name:        "Same Name",
			Description: "dup test",
			Category:    "games",
			DownloadURL: "https://x",
			Rating:      3,
		})
		require.NoError(t, err)
		_, dup := ids[app.ID]
		require.False(t, dup, "duplicate id %s", app.ID)
		ids[app.ID] = struct{}{}
	}
}

func TestByCategory(t *testing.T) {
	c, _ := createTestCatalog(t, seedApps())

	social := c.ByCategory("social")
	require.Len(t, social, 1)
	assert.Equal(t, "alpha", social[0].ID)

	// Пустая категория возвращает всё
	assert.Len(t, c.ByCategory(""), 4)

	assert.Empty(t, c.ByCategory("music"))
}

func TestSearchRankingAndEmptyTerm(t *testing.T) {
	c, _ := createTestCatalog(t, seedApps())

	// "alpha" входит в название Alpha Chat и в описание Gamma Notes;
	// запись с префиксом в названии идет первой.
	got := c.Search("alpha")
	require.Len(t, got, 2)
	assert.Equal(t, "alpha", got[0].ID)
	assert.Equal(t, "gamma", got[1].ID)

	// Регистр и пробелы не влияют
	got = c.Search("  ALPHA ")
	require.Len(t, got, 2)

	// Поиск по разработчику
	got = c.Search("umbrella")
	require.Len(t, got, 2)
	assert.Equal(t, "gamma", got[0].ID)
	assert.Equal(t, "delta", got[1].ID)

	// Пустой запрос не вычисляется
	assert.Nil(t, c.Search(""))
	assert.Nil(t, c.Search("   "))
}

func TestTopByRatingStable(t *testing.T) {
	c, _ := createTestCatalog(t, seedApps())

	top := c.TopByRating(3)
	require.Len(t, top, 3)
	assert.Equal(t, "delta", top[0].ID)
	// alpha и beta делят 4.5: порядок вставки сохраняется
	assert.Equal(t, "alpha", top[1].ID)
	assert.Equal(t, "beta", top[2].ID)

	// n больше размера коллекции
	assert.Len(t, c.TopByRating(100), 4)
}

func TestByBadgeDedupeAndLimit(t *testing.T) {
	ctx := context.Background()

	// Гипотетическая коллекция с дубликатом id попадает в каталог
	// напрямую через хранилище.
	apps := []models.App{
		{ID: "dup", Name: "Dup", Badges: []string{"trending"}},
		{ID: "dup", Name: "Dup Copy", Badges: []string{"trending"}},
	}
	for i := 0; i < 10; i++ {
		apps = append(apps, models.App{
			ID:     string(rune('a' + i)),
			Name:   "App",
			Badges: []string{"trending"},
		})
	}

	dbPath := filepath.Join(t.TempDir(), "badges_test.db")
	store, err := boltdb.New(ctx, dbPath)
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.SaveApps(ctx, apps))

	c := New(testLogger(), store, nil)
	require.NoError(t, c.Initialize(ctx))

	got := c.ByBadge("trending")
	assert.Len(t, got, 8)

	seen := make(map[string]int)
	for _, app := range got {
		seen[app.ID]++
	}
	assert.Equal(t, 1, seen["dup"], "duplicate ids must be collapsed")
}

func TestSetRatingRoundingAndClamp(t *testing.T) {
	ctx := context.Background()
	c, _ := createTestCatalog(t, nil)

	app, _, err := c.Create(ctx, CreateFields{
		Name: "Foo", Description: "d", Category: "social", DownloadURL: "https://x", Rating: 4.2,
	})
	require.NoError(t, err)

	// Округление до одного знака
	updated, change, err := c.SetRating(ctx, app.ID, 4.26)
	require.NoError(t, err)
	assert.Equal(t, ChangeRatingChanged, change)
	assert.InDelta(t, 4.3, updated.Rating, 0.0001)

	// Значение вне диапазона отклоняется, рейтинг не меняется
	_, change, err = c.SetRating(ctx, app.ID, 6)
	require.Error(t, err)
	assert.Equal(t, ChangeNone, change)
	var vErr *validation.Error
	assert.ErrorAs(t, err, &vErr)

	got, err := c.Get(app.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.3, got.Rating, 0.0001)

	_, _, err = c.SetRating(ctx, app.ID, 0.5)
	assert.Error(t, err)

	_, _, err = c.SetRating(ctx, "missing", 4)
	assert.ErrorIs(t, err, ErrAppNotFound)
}

func TestAdjustRatingClamps(t *testing.T) {
	ctx := context.Background()
	c, _ := createTestCatalog(t, []models.App{
		{ID: "low", Name: "Low", Rating: 1.2},
		{ID: "high", Name: "High", Rating: 4.8},
	})

	app, _, err := c.AdjustRating(ctx, "low", -0.5)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, app.Rating, 0.0001)

	app, _, err = c.AdjustRating(ctx, "high", 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, app.Rating, 0.0001)
}

func TestAddBadgeDuplicate(t *testing.T) {
	ctx := context.Background()
	c, _ := createTestCatalog(t, nil)

	app, _, err := c.Create(ctx, CreateFields{
		Name: "Foo", Description: "d", Category: "social", DownloadURL: "https://x", Rating: 4,
	})
	require.NoError(t, err)

	change, err := c.AddBadge(ctx, app.ID, "trending")
	require.NoError(t, err)
	assert.Equal(t, ChangeBadgesChanged, change)

	// Повторное присвоение того же бейджа
	change, err = c.AddBadge(ctx, app.ID, "trending")
	require.ErrorIs(t, err, ErrDuplicateBadge)
	assert.Equal(t, ChangeNone, change)

	got := c.ByBadge("trending")
	require.Len(t, got, 1)
	assert.Equal(t, app.ID, got[0].ID)
}

func TestSetBadgesReplacesSet(t *testing.T) {
	ctx := context.Background()
	c, _ := createTestCatalog(t, seedApps())

	change, err := c.SetBadges(ctx, "alpha", []string{"new", "trending", "new"})
	require.NoError(t, err)
	assert.Equal(t, ChangeBadgesChanged, change)

	got, err := c.Get("alpha")
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "trending"}, got.Badges)

	_, err = c.SetBadges(ctx, "missing", []string{"new"})
	assert.ErrorIs(t, err, ErrAppNotFound)
}

func TestUpdateFields(t *testing.T) {
	ctx := context.Background()
	c, _ := createTestCatalog(t, seedApps())

	name := "Alpha Chat Pro"
	hot := false
	url := "https://updated.example.com"
	app, change, err := c.Update(ctx, "alpha", AppUpdate{
		Name:        &name,
		IsHot:       &hot,
		DownloadURL: &url,
	})
	require.NoError(t, err)
	assert.Equal(t, ChangeRecordEdited, change)
	assert.Equal(t, "Alpha Chat Pro", app.Name)
	assert.False(t, app.IsHot)
	assert.Equal(t, url, app.DownloadURL)
	// Нетронутые поля сохраняются
	assert.Equal(t, "Acme", app.Developer)

	_, _, err = c.Update(ctx, "missing", AppUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrAppNotFound)
}

func TestRemoveSilentNoop(t *testing.T) {
	ctx := context.Background()
	c, _ := createTestCatalog(t, seedApps())

	change, err := c.Remove(ctx, "alpha")
	require.NoError(t, err)
	assert.Equal(t, ChangeRecordRemoved, change)
	assert.Len(t, c.All(), 3)

	// Отсутствующий id — молчаливый no-op
	change, err = c.Remove(ctx, "alpha")
	require.NoError(t, err)
	assert.Equal(t, ChangeNone, change)
	assert.Len(t, c.All(), 3)
}

func TestAllReturnsSnapshot(t *testing.T) {
	c, _ := createTestCatalog(t, seedApps())

	snap := c.All()
	snap[0].Name = "mutated"
	snap[0].Badges[0] = "mutated"

	got := c.All()
	assert.Equal(t, "Alpha Chat", got[0].Name)
	assert.Equal(t, "featured", got[0].Badges[0])
}
