package storage

import "errors"

// Common storage errors
var (
	// ErrCatalogNotFound indicates that no app collection has been persisted yet
	ErrCatalogNotFound = errors.New("app collection not found")

	// ErrUsersNotFound indicates that no user registry has been persisted yet
	ErrUsersNotFound = errors.New("user registry not found")

	// ErrSessionNotFound indicates that no session identity exists
	ErrSessionNotFound = errors.New("session not found")

	// ErrSettingNotFound indicates that a settings key has no stored value
	ErrSettingNotFound = errors.New("setting not found")

	// ErrDataCorrupt indicates that stored data exists but cannot be decoded.
	// Callers treat the collection as empty instead of failing.
	ErrDataCorrupt = errors.New("stored data is corrupt")
)
