package domain

import "errors"

// Sentinel errors used throughout the application.
// Handlers translate these to HTTP status codes via a single mapError function.
var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("missing or invalid bearer token")
	ErrInvalidTeamName = errors.New("team_name must be between 1 and 100 characters")
	ErrInvalidQuery    = errors.New("search query must not be empty")
	ErrInvalidSnapshot = errors.New("snapshot records must name both teams and carry non-negative scores")
	ErrSyncInProgress  = errors.New("a score sync is already running")
	ErrFeedUnavailable = errors.New("live score feed unavailable")
	ErrSyncTimeout     = errors.New("score sync exceeded its time budget")
)
