package services

import (
	"context"
	"time"

	"shiftboard.com/shiftboard/internal/constants"
	model "shiftboard.com/shiftboard/internal/models"
	"shiftboard.com/shiftboard/internal/query"
	repository "shiftboard.com/shiftboard/internal/repositories"
)

// ShiftStore is the storage collaborator for shifts. Conditional updates
// report whether a row matched; they never read-then-write.
type ShiftStore interface {
	FindByID(ctx context.Context, id string) (*model.Shift, error)
	List(ctx context.Context, page query.Page) ([]model.Shift, error)
	FindOverlapping(ctx context.Context, workerID string, start, end time.Time) ([]model.Shift, error)

	ClaimIfAvailable(ctx context.Context, id, workerID string) (bool, error)
	MarkPendingCancellation(ctx context.Context, id string, at time.Time) (bool, error)
	ReleaseClaim(ctx context.Context, id string, at time.Time) (bool, error)
	ClearPendingCancellation(ctx context.Context, id string) (bool, error)

	ListAvailable(ctx context.Context, p query.Predicate, page query.Page) ([]model.Shift, error)
	DistinctValues(ctx context.Context, axis constants.FilterAxis, p query.Predicate, page query.Page) ([]string, error)
	ListByWorker(ctx context.Context, workerID string, page query.Page) ([]model.Shift, error)
	CountCompletedByWorkplace(ctx context.Context, now time.Time) ([]repository.WorkplaceCount, error)
}

type WorkplaceStore interface {
	FindByIDs(ctx context.Context, ids []string) ([]model.Workplace, error)
}

type WorkerStore interface {
	FindByID(ctx context.Context, id string) (*model.Worker, error)
}

var (
	_ ShiftStore     = (*repository.ShiftRepository)(nil)
	_ WorkplaceStore = (*repository.WorkplaceRepository)(nil)
	_ WorkerStore    = (*repository.WorkerRepository)(nil)
)
