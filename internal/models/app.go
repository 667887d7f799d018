package models

// App представляет одну запись каталога приложений.
// Коллекция приложений целиком принадлежит Catalog; все остальные
// компоненты получают данные только через его snapshot.
type App struct {
	ID          string   `json:"id"`          // ID уникальный идентификатор, неизменяемый после создания
	Name        string   `json:"name"`        // Name название приложения
	Developer   string   `json:"developer"`   // Developer разработчик
	Description string   `json:"description"` // Description описание
	Category    string   `json:"category"`    // Category ключ категории из справочника refdata
	Icon        string   `json:"icon"`        // Icon CSS-класс иконки (например, "fab fa-youtube")
	DownloadURL string   `json:"downloadUrl"` // DownloadURL внешняя ссылка для скачивания
	Rating      float64  `json:"rating"`      // Rating рейтинг в диапазоне [0,5], один знак после запятой
	IsHot       bool     `json:"isHot"`       // IsHot флаг секции Hot
	Badges      []string `json:"badges"`      // Badges набор ключей бейджей (семантически множество)
}

// HasBadge сообщает, присвоен ли приложению бейдж с данным ключом.
func (a *App) HasBadge(key string) bool {
	for _, b := range a.Badges {
		if b == key {
			return true
		}
	}
	return false
}

// Clone возвращает глубокую копию записи (срез бейджей копируется).
func (a App) Clone() App {
	c := a
	if a.Badges != nil {
		c.Badges = make([]string, len(a.Badges))
		copy(c.Badges, a.Badges)
	}
	return c
}

// CloneApps возвращает глубокую копию коллекции.
// Используется для snapshot-ов, чтобы вызывающий код не мог
// изменить внутреннее состояние каталога.
func CloneApps(apps []App) []App {
	if apps == nil {
		return nil
	}
	out := make([]App, len(apps))
	for i, a := range apps {
		out[i] = a.Clone()
	}
	return out
}
