package catalog

import "errors"

// Common catalog errors
var (
	// ErrAppNotFound indicates that the operation targets a nonexistent app id
	ErrAppNotFound = errors.New("app not found")

	// ErrDuplicateBadge indicates that the badge is already assigned to the app
	ErrDuplicateBadge = errors.New("badge already assigned to this app")
)
