package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iudanet/nexstore/internal/models"
	"github.com/iudanet/nexstore/internal/storage"
)

// LoadUsers returns the persisted user registry.
// Returns storage.ErrUsersNotFound if SaveUsers was never called.
func (s *Storage) LoadUsers(ctx context.Context) ([]models.User, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // read-only tx

	saved, err := s.settingExists(ctx, tx, markerUsers)
	if err != nil {
		return nil, err
	}
	if !saved {
		return nil, storage.ErrUsersNotFound
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT id, username, password, email, created_at, is_banned
		FROM users
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Password,
			&user.Email,
			&user.CreatedAt,
			&user.IsBanned,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// SaveUsers persists the whole registry, replacing the previous value.
func (s *Storage) SaveUsers(ctx context.Context, users []models.User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM users"); err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}

	for i, user := range users {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO users (position, id, username, password, email, created_at, is_banned)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			i+1,
			user.ID,
			user.Username,
			user.Password,
			user.Email,
			user.CreatedAt,
			user.IsBanned,
		)
		if err != nil {
			return fmt.Errorf("failed to insert user %s: %w", user.Username, err)
		}
	}

	if err := setSetting(ctx, tx, markerUsers, "1"); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}
