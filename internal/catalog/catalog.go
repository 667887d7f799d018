// Package catalog владеет канонической коллекцией приложений.
// Все запросы работают по snapshot-у состояния в памяти, каждая
// мутация синхронно пишет коллекцию целиком через storage-адаптер
// до возврата управления. Авторизации здесь нет: ограничение доступа
// к мутациям — обязанность вызывающего слоя.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/iudanet/nexstore/internal/models"
	"github.com/iudanet/nexstore/internal/storage"
	"github.com/iudanet/nexstore/internal/validation"
)

const (
	// hotLimit максимум записей в секции Hot
	hotLimit = 8
	// badgeLimit максимум записей в каждой бейдж-секции
	badgeLimit = 8

	defaultDeveloper = "User Added"
	defaultIcon      = "fas fa-mobile-alt"
)

// Catalog управляет коллекцией приложений с write-through персистентностью.
// Исполнение однопоточное, но пара "мутация + запись" все равно держится
// под одним мьютексом, чтобы инвариант сохранился при переносе в
// конкурентное окружение.
type Catalog struct {
	logger *slog.Logger
	store  storage.CatalogStorage
	seed   []models.App

	mu   sync.Mutex
	apps []models.App
}

// New создает каталог поверх storage-адаптера.
// seed — стартовый набор, применяемый один раз при первом запуске.
func New(logger *slog.Logger, store storage.CatalogStorage, seed []models.App) *Catalog {
	return &Catalog{
		logger: logger,
		store:  store,
		seed:   seed,
	}
}

// Initialize загружает коллекцию из хранилища. Если коллекция
// отсутствует или не читается, применяется стартовый набор и сразу
// персистится. Повторный вызов поверх сохраненных данных набор
// не применяет.
func (c *Catalog) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	apps, err := c.store.LoadApps(ctx)
	switch {
	case err == nil:
		c.apps = apps
		c.logger.InfoContext(ctx, "catalog loaded", slog.Int("apps", len(apps)))
		return nil
	case errors.Is(err, storage.ErrCatalogNotFound), errors.Is(err, storage.ErrDataCorrupt):
		// Первый запуск либо нечитаемые данные: материализуем стартовый набор
		if errors.Is(err, storage.ErrDataCorrupt) {
			c.logger.WarnContext(ctx, "stored catalog is corrupt, reseeding")
		}
		seeded := models.CloneApps(c.seed)
		if seeded == nil {
			seeded = []models.App{}
		}
		if err := c.store.SaveApps(ctx, seeded); err != nil {
			return fmt.Errorf("failed to persist seed catalog: %w", err)
		}
		c.apps = seeded
		c.logger.InfoContext(ctx, "catalog seeded", slog.Int("apps", len(seeded)))
		return nil
	default:
		return fmt.Errorf("failed to load catalog: %w", err)
	}
}

// All возвращает snapshot всей коллекции в порядке вставки.
func (c *Catalog) All() []models.App {
	c.mu.Lock()
	defer c.mu.Unlock()
	return models.CloneApps(c.apps)
}

// Get возвращает запись по id.
func (c *Catalog) Get(id string) (models.App, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return models.App{}, ErrAppNotFound
	}
	return c.apps[i].Clone(), nil
}

// ByCategory возвращает записи с точным совпадением категории.
// Пустая категория означает отсутствие фильтра и возвращает всё.
func (c *Catalog) ByCategory(category string) []models.App {
	if category == "" {
		return c.All()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	out := []models.App{}
	for _, app := range c.apps {
		if app.Category == category {
			out = append(out, app.Clone())
		}
	}
	return out
}

// Search ищет подстроку без учета регистра в названии, разработчике,
// описании и категории. Записи, чье название начинается с запроса,
// идут первыми; взаимный порядок внутри групп сохраняется.
// Пустой запрос не вычисляется: вызывающий слой обязан обработать
// его отдельно (показ Popular вместо результатов поиска).
func (c *Catalog) Search(term string) []models.App {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var prefix, rest []models.App
	for _, app := range c.apps {
		name := strings.ToLower(app.Name)
		if !strings.Contains(name, term) &&
			!strings.Contains(strings.ToLower(app.Developer), term) &&
			!strings.Contains(strings.ToLower(app.Description), term) &&
			!strings.Contains(strings.ToLower(app.Category), term) {
			continue
		}
		if strings.HasPrefix(name, term) {
			prefix = append(prefix, app.Clone())
		} else {
			rest = append(rest, app.Clone())
		}
	}

	return append(prefix, rest...)
}

// TopByRating возвращает первые n записей по убыванию рейтинга.
// Сортировка стабильная: равные рейтинги сохраняют порядок вставки.
func (c *Catalog) TopByRating(n int) []models.App {
	apps := c.All()
	sort.SliceStable(apps, func(i, j int) bool {
		return apps[i].Rating > apps[j].Rating
	})
	if n >= 0 && n < len(apps) {
		apps = apps[:n]
	}
	return apps
}

// ByBadge возвращает записи с данным бейджем: дубликаты по id
// отбрасываются (остается первое вхождение), результат обрезается
// до лимита отображения.
func (c *Catalog) ByBadge(badgeKey string) []models.App {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[string]struct{})
	out := []models.App{}
	for _, app := range c.apps {
		if !app.HasBadge(badgeKey) {
			continue
		}
		if _, dup := seen[app.ID]; dup {
			continue
		}
		seen[app.ID] = struct{}{}
		out = append(out, app.Clone())
		if len(out) == badgeLimit {
			break
		}
	}
	return out
}

// Hot возвращает записи с флагом IsHot, не больше лимита секции.
func (c *Catalog) Hot() []models.App {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := []models.App{}
	for _, app := range c.apps {
		if !app.IsHot {
			continue
		}
		out = append(out, app.Clone())
		if len(out) == hotLimit {
			break
		}
	}
	return out
}

// CreateFields задает поля новой записи. Developer и Icon опциональны
// и получают значения по умолчанию.
type CreateFields struct {
	Name        string
	Description string
	Category    string
	DownloadURL string
	Developer   string
	Icon        string
	Rating      float64
}

// Create валидирует поля, назначает уникальный id и добавляет запись
// в конец коллекции. При ошибке валидации ничего не применяется.
func (c *Catalog) Create(ctx context.Context, fields CreateFields) (models.App, Change, error) {
	var violated []string
	if strings.TrimSpace(fields.Name) == "" {
		violated = append(violated, "name")
	}
	if strings.TrimSpace(fields.Description) == "" {
		violated = append(violated, "description")
	}
	if strings.TrimSpace(fields.Category) == "" {
		violated = append(violated, "category")
	}
	if strings.TrimSpace(fields.DownloadURL) == "" {
		violated = append(violated, "downloadUrl")
	}
	if err := validation.ValidateRating(fields.Rating); err != nil {
		violated = append(violated, "rating")
	}
	if len(violated) > 0 {
		return models.App{}, ChangeNone, validation.NewError(violated...)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	app := models.App{
		ID:          c.newID(fields.Name),
		Name:        fields.Name,
		Developer:   fields.Developer,
		Description: fields.Description,
		Category:    fields.Category,
		Icon:        fields.Icon,
		DownloadURL: fields.DownloadURL,
		Rating:      roundRating(fields.Rating),
		IsHot:       false,
		Badges:      []string{},
	}
	if app.Developer == "" {
		app.Developer = defaultDeveloper
	}
	if app.Icon == "" {
		app.Icon = defaultIcon
	}

	next := append(models.CloneApps(c.apps), app)
	if err := c.persist(ctx, next); err != nil {
		return models.App{}, ChangeNone, err
	}

	return app.Clone(), ChangeRecordAdded, nil
}

// AppUpdate описывает частичное изменение записи: применяются только
// ненулевые поля. Рейтинг здесь не валидируется — проверка диапазона
// лежит на административном слое, вызывающем Update.
type AppUpdate struct {
	Name        *string
	Developer   *string
	Description *string
	Category    *string
	Icon        *string
	DownloadURL *string
	Rating      *float64
	IsHot       *bool
}

// Update применяет изменения к записи с данным id.
func (c *Catalog) Update(ctx context.Context, id string, upd AppUpdate) (models.App, Change, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return models.App{}, ChangeNone, ErrAppNotFound
	}

	next := models.CloneApps(c.apps)
	app := &next[i]
	if upd.Name != nil {
		app.Name = *upd.Name
	}
	if upd.Developer != nil {
		app.Developer = *upd.Developer
	}
	if upd.Description != nil {
		app.Description = *upd.Description
	}
	if upd.Category != nil {
		app.Category = *upd.Category
	}
	if upd.Icon != nil {
		app.Icon = *upd.Icon
	}
	if upd.DownloadURL != nil {
		app.DownloadURL = *upd.DownloadURL
	}
	if upd.Rating != nil {
		app.Rating = roundRating(*upd.Rating)
	}
	if upd.IsHot != nil {
		app.IsHot = *upd.IsHot
	}

	if err := c.persist(ctx, next); err != nil {
		return models.App{}, ChangeNone, err
	}

	return next[i].Clone(), ChangeRecordEdited, nil
}

// Remove удаляет запись. Отсутствующий id — не ошибка: операция
// молча ничего не делает и возвращает ChangeNone.
func (c *Catalog) Remove(ctx context.Context, id string) (Change, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return ChangeNone, nil
	}

	next := models.CloneApps(c.apps)
	next = append(next[:i], next[i+1:]...)
	if err := c.persist(ctx, next); err != nil {
		return ChangeNone, err
	}

	return ChangeRecordRemoved, nil
}

// SetBadges заменяет весь набор бейджей записи. Дубликаты во входном
// наборе схлопываются с сохранением первого вхождения.
func (c *Catalog) SetBadges(ctx context.Context, id string, badges []string) (Change, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return ChangeNone, ErrAppNotFound
	}

	seen := make(map[string]struct{}, len(badges))
	deduped := []string{}
	for _, b := range badges {
		if _, dup := seen[b]; dup {
			continue
		}
		seen[b] = struct{}{}
		deduped = append(deduped, b)
	}

	next := models.CloneApps(c.apps)
	next[i].Badges = deduped
	if err := c.persist(ctx, next); err != nil {
		return ChangeNone, err
	}

	return ChangeBadgesChanged, nil
}

// AddBadge добавляет один бейдж к записи.
// Возвращает ErrDuplicateBadge, если бейдж уже присвоен.
func (c *Catalog) AddBadge(ctx context.Context, id, badgeKey string) (Change, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return ChangeNone, ErrAppNotFound
	}
	if c.apps[i].HasBadge(badgeKey) {
		return ChangeNone, ErrDuplicateBadge
	}

	next := models.CloneApps(c.apps)
	next[i].Badges = append(next[i].Badges, badgeKey)
	if err := c.persist(ctx, next); err != nil {
		return ChangeNone, err
	}

	return ChangeBadgesChanged, nil
}

// SetRating устанавливает рейтинг записи. Значение проверяется на
// диапазон [1,5] и округляется до одного знака после запятой; при
// ошибке прежний рейтинг остается без изменений.
func (c *Catalog) SetRating(ctx context.Context, id string, value float64) (models.App, Change, error) {
	if err := validation.ValidateRating(value); err != nil {
		return models.App{}, ChangeNone, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return models.App{}, ChangeNone, ErrAppNotFound
	}

	next := models.CloneApps(c.apps)
	next[i].Rating = roundRating(value)
	if err := c.persist(ctx, next); err != nil {
		return models.App{}, ChangeNone, err
	}

	return next[i].Clone(), ChangeRatingChanged, nil
}

// AdjustRating сдвигает рейтинг на delta с ограничением в [1,5]
// (кнопки Raise/Lower в административном списке рейтингов).
func (c *Catalog) AdjustRating(ctx context.Context, id string, delta float64) (models.App, Change, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return models.App{}, ChangeNone, ErrAppNotFound
	}

	value := c.apps[i].Rating + delta
	value = math.Max(validation.RatingMin, math.Min(validation.RatingMax, value))

	next := models.CloneApps(c.apps)
	next[i].Rating = roundRating(value)
	if err := c.persist(ctx, next); err != nil {
		return models.App{}, ChangeNone, err
	}

	return next[i].Clone(), ChangeRatingChanged, nil
}

// persist пишет новую коллекцию в хранилище и только после успешной
// записи подменяет состояние в памяти. Вызывается под c.mu.
func (c *Catalog) persist(ctx context.Context, next []models.App) error {
	if err := c.store.SaveApps(ctx, next); err != nil {
		return fmt.Errorf("failed to persist catalog: %w", err)
	}
	c.apps = next
	return nil
}

// indexOf ищет позицию записи по id. Вызывается под c.mu.
func (c *Catalog) indexOf(id string) int {
	for i := range c.apps {
		if c.apps[i].ID == id {
			return i
		}
	}
	return -1
}

// newID строит уникальный id из slug названия и текущего времени.
// Вызывается под c.mu; при коллизии добавляется числовой суффикс.
func (c *Catalog) newID(name string) string {
	base := slugify(name) + "-" + fmt.Sprintf("%d", time.Now().UnixMilli())
	id := base
	for n := 1; c.indexOf(id) >= 0; n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return id
}

func slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

func roundRating(v float64) float64 {
	return math.Round(v*10) / 10
}
