package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/iudanet/nexstore/internal/models"
	"github.com/iudanet/nexstore/internal/storage"
)

// LoadApps returns the persisted app collection in insertion order.
// Returns storage.ErrCatalogNotFound if SaveApps was never called.
func (s *Storage) LoadApps(ctx context.Context) ([]models.App, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // read-only tx

	saved, err := s.settingExists(ctx, tx, markerCatalog)
	if err != nil {
		return nil, err
	}
	if !saved {
		return nil, storage.ErrCatalogNotFound
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT id, name, developer, description, category, icon, download_url, rating, is_hot, badges
		FROM apps
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query apps: %w", err)
	}
	defer rows.Close()

	apps := []models.App{}
	for rows.Next() {
		var app models.App
		var badgesJSON string

		if err := rows.Scan(
			&app.ID,
			&app.Name,
			&app.Developer,
			&app.Description,
			&app.Category,
			&app.Icon,
			&app.DownloadURL,
			&app.Rating,
			&app.IsHot,
			&badgesJSON,
		); err != nil {
			return nil, fmt.Errorf("failed to scan app: %w", err)
		}

		if err := json.Unmarshal([]byte(badgesJSON), &app.Badges); err != nil {
			return nil, storage.ErrDataCorrupt
		}
		if app.Badges == nil {
			app.Badges = []string{}
		}

		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate apps: %w", err)
	}

	return apps, nil
}

// SaveApps persists the whole collection, replacing the previous value.
func (s *Storage) SaveApps(ctx context.Context, apps []models.App) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM apps"); err != nil {
		return fmt.Errorf("failed to clear apps: %w", err)
	}

	for i, app := range apps {
		badges := app.Badges
		if badges == nil {
			badges = []string{}
		}
		badgesJSON, err := json.Marshal(badges)
		if err != nil {
			return fmt.Errorf("failed to marshal badges: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO apps (position, id, name, developer, description, category, icon, download_url, rating, is_hot, badges)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			i+1,
			app.ID,
			app.Name,
			app.Developer,
			app.Description,
			app.Category,
			app.Icon,
			app.DownloadURL,
			app.Rating,
			app.IsHot,
			string(badgesJSON),
		)
		if err != nil {
			return fmt.Errorf("failed to insert app %s: %w", app.ID, err)
		}
	}

	if err := setSetting(ctx, tx, markerCatalog, "1"); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}
