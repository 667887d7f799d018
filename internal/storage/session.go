package storage

import (
	"context"

	"github.com/iudanet/nexstore/internal/models"
)

// SessionStorage defines the persistence contract for the current
// session identity. At most one identity exists per database.
type SessionStorage interface {
	// GetSession returns the persisted identity.
	// Returns ErrSessionNotFound if no session exists.
	GetSession(ctx context.Context) (*models.Session, error)

	// SaveSession persists the identity. A nil session erases the key
	// entirely, so that "no session" is observable only as absence.
	SaveSession(ctx context.Context, session *models.Session) error

	// DeleteSession removes the stored identity (logout).
	// Deleting an absent session is not an error.
	DeleteSession(ctx context.Context) error
}

// SettingsStorage defines the persistence contract for small
// presentation settings (currently only the theme preference).
type SettingsStorage interface {
	// GetTheme returns the persisted theme name.
	// Returns ErrSettingNotFound if none was saved.
	GetTheme(ctx context.Context) (models.Theme, error)

	// SaveTheme persists the theme preference.
	SaveTheme(ctx context.Context, theme models.Theme) error
}
