package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/nexstore/internal/models"
	"github.com/iudanet/nexstore/internal/storage"
)

var usersKey = []byte("registry")

// LoadUsers returns the persisted user registry.
// Returns storage.ErrUsersNotFound if nothing was saved yet.
func (s *Storage) LoadUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketUsers)
		if bucket == nil {
			return fmt.Errorf("users bucket not found")
		}

		data := bucket.Get(usersKey)
		if data == nil {
			return storage.ErrUsersNotFound
		}

		decoded, err := storage.DecodeUsers(data)
		if err != nil {
			return err
		}
		users = decoded

		return nil
	})

	if err != nil {
		return nil, err
	}

	return users, nil
}

// SaveUsers persists the whole registry, replacing the previous value.
func (s *Storage) SaveUsers(ctx context.Context, users []models.User) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketUsers)
		if bucket == nil {
			return fmt.Errorf("users bucket not found")
		}

		data, err := storage.EncodeUsers(users)
		if err != nil {
			return fmt.Errorf("failed to marshal users: %w", err)
		}

		if err := bucket.Put(usersKey, data); err != nil {
			return fmt.Errorf("failed to save users: %w", err)
		}

		return nil
	})
}
