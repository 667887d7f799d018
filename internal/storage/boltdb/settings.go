package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/nexstore/internal/models"
	"github.com/iudanet/nexstore/internal/storage"
)

var themeKey = []byte("theme")

// GetTheme returns the persisted theme preference.
// Returns storage.ErrSettingNotFound if none was saved.
func (s *Storage) GetTheme(ctx context.Context) (models.Theme, error) {
	var theme models.Theme

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSettings)
		if bucket == nil {
			return fmt.Errorf("settings bucket not found")
		}

		data := bucket.Get(themeKey)
		if data == nil {
			return storage.ErrSettingNotFound
		}

		theme = models.Theme(data)
		return nil
	})

	if err != nil {
		return "", err
	}

	return theme, nil
}

// SaveTheme persists the theme preference.
func (s *Storage) SaveTheme(ctx context.Context, theme models.Theme) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSettings)
		if bucket == nil {
			return fmt.Errorf("settings bucket not found")
		}

		if err := bucket.Put(themeKey, []byte(theme)); err != nil {
			return fmt.Errorf("failed to save theme: %w", err)
		}

		return nil
	})
}
