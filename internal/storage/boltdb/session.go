package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/nexstore/internal/models"
	"github.com/iudanet/nexstore/internal/storage"
)

var sessionKey = []byte("current")

// GetSession retrieves the stored session identity.
// Returns storage.ErrSessionNotFound if no session exists.
func (s *Storage) GetSession(ctx context.Context) (*models.Session, error) {
	var session *models.Session

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		data := bucket.Get(sessionKey)
		if data == nil {
			return storage.ErrSessionNotFound
		}

		session = &models.Session{}
		if err := json.Unmarshal(data, session); err != nil {
			// Нечитаемая сессия равнозначна отсутствующей
			session = nil
			return storage.ErrSessionNotFound
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return session, nil
}

// SaveSession persists the session identity.
// A nil session erases the key instead of storing a null marker.
func (s *Storage) SaveSession(ctx context.Context, session *models.Session) error {
	if session == nil {
		return s.DeleteSession(ctx)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		data, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}

		if err := bucket.Put(sessionKey, data); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}

		return nil
	})
}

// DeleteSession removes the stored session identity (logout).
func (s *Storage) DeleteSession(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		return bucket.Delete(sessionKey)
	})
}
