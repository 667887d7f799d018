package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/nexstore/internal/models"
	"github.com/iudanet/nexstore/internal/storage"
)

var catalogKey = []byte("apps")

// LoadApps returns the persisted app collection.
// Returns storage.ErrCatalogNotFound if nothing was saved yet.
func (s *Storage) LoadApps(ctx context.Context) ([]models.App, error) {
	var apps []models.App

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCatalog)
		if bucket == nil {
			return fmt.Errorf("catalog bucket not found")
		}

		data := bucket.Get(catalogKey)
		if data == nil {
			return storage.ErrCatalogNotFound
		}

		decoded, err := storage.DecodeApps(data)
		if err != nil {
			return err
		}
		apps = decoded

		return nil
	})

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// SaveApps persists the whole collection, replacing the previous value.
func (s *Storage) SaveApps(ctx context.Context, apps []models.App) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCatalog)
		if bucket == nil {
			return fmt.Errorf("catalog bucket not found")
		}

		data, err := storage.EncodeApps(apps)
		if err != nil {
			return fmt.Errorf("failed to marshal apps: %w", err)
		}

		if err := bucket.Put(catalogKey, data); err != nil {
			return fmt.Errorf("failed to save apps: %w", err)
		}

		return nil
	})
}
