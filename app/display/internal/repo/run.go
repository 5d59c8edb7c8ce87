package repo

import (
	"context"
	"errors"

	"github.com/iWorld-y/usecase_radar/app/display/internal/domain"
)

// ErrHistoryDisabled no run history store is configured
var ErrHistoryDisabled = errors.New("run history is not configured")

// RunRepo run history repository
type RunRepo interface {
	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]*domain.Run, error)
}
