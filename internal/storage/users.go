package storage

import (
	"context"
	"encoding/json"

	"github.com/iudanet/nexstore/internal/models"
)

// UserStorage defines the persistence contract for the local user registry.
// Users are never hard-deleted: bans flip a flag on the record.
type UserStorage interface {
	// LoadUsers returns the persisted registry.
	// Returns ErrUsersNotFound if no registry has been persisted yet
	// and ErrDataCorrupt if the stored value cannot be decoded.
	LoadUsers(ctx context.Context) ([]models.User, error)

	// SaveUsers persists the whole registry, replacing the previous value.
	SaveUsers(ctx context.Context, users []models.User) error
}

// EncodeUsers serializes the registry to JSON.
func EncodeUsers(users []models.User) ([]byte, error) {
	return json.Marshal(users)
}

// DecodeUsers parses a stored registry.
// Returns ErrDataCorrupt if the payload is not valid JSON.
func DecodeUsers(data []byte) ([]models.User, error) {
	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, ErrDataCorrupt
	}
	return users, nil
}
