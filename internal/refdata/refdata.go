// Package refdata содержит статические справочники магазина:
// категории, типы бейджей и стартовый набор приложений.
// Данные встроены в бинарник и доступны только на чтение;
// ядро обращается к ним по ключу.
package refdata

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/iudanet/nexstore/internal/models"
)

//go:embed categories.json badges.json apps.json
var embedded embed.FS

// Category описывает категорию приложений
type Category struct {
	Name string `json:"name"` // отображаемое название
}

// Badge описывает тип бейджа
type Badge struct {
	Name string `json:"name"` // отображаемое название
	Icon string `json:"icon"` // emoji-иконка
}

var (
	categories map[string]Category
	badges     map[string]Badge
	seedApps   []models.App
)

func init() {
	if err := load(); err != nil {
		// Справочники встроены в бинарник: ошибка здесь означает
		// поврежденный билд, продолжать нет смысла.
		panic(fmt.Sprintf("refdata: %v", err))
	}
}

func load() error {
	if err := loadJSON("categories.json", &categories); err != nil {
		return err
	}
	if err := loadJSON("badges.json", &badges); err != nil {
		return err
	}
	return loadJSON("apps.json", &seedApps)
}

func loadJSON(name string, dst any) error {
	data, err := embedded.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// CategoryByKey возвращает категорию по ключу.
// Для неизвестного ключа возвращается категория с именем,
// равным самому ключу (поведение исходного справочника).
func CategoryByKey(key string) Category {
	if c, ok := categories[key]; ok {
		return c
	}
	return Category{Name: key}
}

// KnownCategory проверяет наличие ключа в справочнике категорий.
func KnownCategory(key string) bool {
	_, ok := categories[key]
	return ok
}

// CategoryKeys возвращает отсортированный список ключей категорий.
func CategoryKeys() []string {
	keys := make([]string, 0, len(categories))
	for k := range categories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// BadgeByKey возвращает описание бейджа и признак его существования.
func BadgeByKey(key string) (Badge, bool) {
	b, ok := badges[key]
	return b, ok
}

// BadgeKeys возвращает отсортированный список ключей бейджей.
func BadgeKeys() []string {
	keys := make([]string, 0, len(badges))
	for k := range badges {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SeedApps возвращает копию стартового набора приложений.
// Используется каталогом один раз при первом запуске.
func SeedApps() []models.App {
	return models.CloneApps(seedApps)
}
