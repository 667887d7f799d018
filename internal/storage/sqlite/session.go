package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/iudanet/nexstore/internal/models"
	"github.com/iudanet/nexstore/internal/storage"
)

const (
	settingSession = "session"
	settingTheme   = "theme"
)

// GetSession retrieves the stored session identity.
// Returns storage.ErrSessionNotFound if no session exists.
func (s *Storage) GetSession(ctx context.Context) (*models.Session, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM settings WHERE key = ?", settingSession,
	).Scan(&value)

	if err == sql.ErrNoRows {
		return nil, storage.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	session := &models.Session{}
	if err := json.Unmarshal([]byte(value), session); err != nil {
		// Нечитаемая сессия равнозначна отсутствующей
		return nil, storage.ErrSessionNotFound
	}

	return session, nil
}

// SaveSession persists the session identity.
// A nil session erases the key instead of storing a null marker.
func (s *Storage) SaveSession(ctx context.Context, session *models.Session) error {
	if session == nil {
		return s.DeleteSession(ctx)
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := setSetting(ctx, tx, settingSession, string(data)); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteSession removes the stored session identity (logout).
func (s *Storage) DeleteSession(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM settings WHERE key = ?", settingSession)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// GetTheme returns the persisted theme preference.
// Returns storage.ErrSettingNotFound if none was saved.
func (s *Storage) GetTheme(ctx context.Context) (models.Theme, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM settings WHERE key = ?", settingTheme,
	).Scan(&value)

	if err == sql.ErrNoRows {
		return "", storage.ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query theme: %w", err)
	}

	return models.Theme(value), nil
}

// SaveTheme persists the theme preference.
func (s *Storage) SaveTheme(ctx context.Context, theme models.Theme) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := setSetting(ctx, tx, settingTheme, string(theme)); err != nil {
		return err
	}

	return tx.Commit()
}
