// Package storage определяет контракты хранения для каталога,
// реестра пользователей, сессии и настроек. Реализации лежат в
// подпакетах boltdb и sqlite; выбор бэкенда делает конфигурация.
package storage

import (
	"context"
	"encoding/json"

	"github.com/iudanet/nexstore/internal/models"
)

// CatalogStorage defines the persistence contract for the app collection.
// The collection is always written as a whole: the catalog owns the
// in-memory state and every mutation writes through synchronously.
type CatalogStorage interface {
	// LoadApps returns the persisted collection in insertion order.
	// Returns ErrCatalogNotFound if nothing has been persisted yet
	// (an empty persisted collection is not "absent") and
	// ErrDataCorrupt if the stored value cannot be decoded.
	LoadApps(ctx context.Context) ([]models.App, error)

	// SaveApps persists the whole collection, replacing the previous value.
	SaveApps(ctx context.Context, apps []models.App) error
}

// appRecord is the on-disk JSON shape of a single app.
//
// Исторический формат дублировал два поля под разными именами:
// downloadUrl/download_url и isHot/is_hot. На чтении принимаются оба
// написания, на записи всегда уходит каноническое. Дальше границы
// адаптера двойные имена не распространяются.
type appRecord struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Developer         string   `json:"developer"`
	Description       string   `json:"description"`
	Category          string   `json:"category"`
	Icon              string   `json:"icon"`
	DownloadURL       string   `json:"downloadUrl,omitempty"`
	LegacyDownloadURL string   `json:"download_url,omitempty"`
	Rating            float64  `json:"rating"`
	IsHot             *bool    `json:"isHot,omitempty"`
	LegacyIsHot       *bool    `json:"is_hot,omitempty"`
	Badges            []string `json:"badges"`
}

func (r *appRecord) toModel() models.App {
	app := models.App{
		ID:          r.ID,
		Name:        r.Name,
		Developer:   r.Developer,
		Description: r.Description,
		Category:    r.Category,
		Icon:        r.Icon,
		DownloadURL: r.DownloadURL,
		Rating:      r.Rating,
		Badges:      r.Badges,
	}
	if app.DownloadURL == "" {
		app.DownloadURL = r.LegacyDownloadURL
	}
	switch {
	case r.IsHot != nil:
		app.IsHot = *r.IsHot
	case r.LegacyIsHot != nil:
		app.IsHot = *r.LegacyIsHot
	}
	if app.Badges == nil {
		app.Badges = []string{}
	}
	return app
}

func recordFromModel(app models.App) appRecord {
	hot := app.IsHot
	badges := app.Badges
	if badges == nil {
		badges = []string{}
	}
	return appRecord{
		ID:          app.ID,
		Name:        app.Name,
		Developer:   app.Developer,
		Description: app.Description,
		Category:    app.Category,
		Icon:        app.Icon,
		DownloadURL: app.DownloadURL,
		Rating:      app.Rating,
		IsHot:       &hot,
		Badges:      badges,
	}
}

// EncodeApps serializes the collection to its canonical JSON form.
func EncodeApps(apps []models.App) ([]byte, error) {
	records := make([]appRecord, len(apps))
	for i, app := range apps {
		records[i] = recordFromModel(app)
	}
	return json.Marshal(records)
}

// DecodeApps parses a stored collection, tolerating legacy field
// spellings. Returns ErrDataCorrupt if the payload is not valid JSON.
func DecodeApps(data []byte) ([]models.App, error) {
	var records []appRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, ErrDataCorrupt
	}
	apps := make([]models.App, len(records))
	for i := range records {
		apps[i] = records[i].toModel()
	}
	return apps, nil
}
