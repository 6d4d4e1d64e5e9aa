// Package testutil builds throwaway sqlite databases and fixtures for tests.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	config "shiftboard.com/shiftboard/internal/configs"
	"shiftboard.com/shiftboard/internal/constants"
	model "shiftboard.com/shiftboard/internal/models"
	repository "shiftboard.com/shiftboard/internal/repositories"
)

// NewDB opens an in-memory sqlite database private to the calling test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := config.NewDatabase(config.DriverSQLite, dsn)
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

type Fixtures struct {
	t          testing.TB
	Shifts     *repository.ShiftRepository
	Workplaces *repository.WorkplaceRepository
	Workers    *repository.WorkerRepository
}

func NewFixtures(t testing.TB, db *gorm.DB) *Fixtures {
	return &Fixtures{
		t:          t,
		Shifts:     repository.NewShiftRepository(db),
		Workplaces: repository.NewWorkplaceRepository(db),
		Workers:    repository.NewWorkerRepository(db),
	}
}

func (f *Fixtures) Workplace(name string, status constants.WorkplaceStatus) *model.Workplace {
	f.t.Helper()
	w := &model.Workplace{Name: name, Status: status}
	require.NoError(f.t, f.Workplaces.Create(context.Background(), w))
	return w
}

func (f *Fixtures) Worker(name string) *model.Worker {
	f.t.Helper()
	w := &model.Worker{Name: name, Status: constants.WorkerActive}
	require.NoError(f.t, f.Workers.Create(context.Background(), w))
	return w
}

// ShiftOption customizes a fixture shift before it is stored.
type ShiftOption func(*model.Shift)

func WithJobType(jobType string) ShiftOption {
	return func(s *model.Shift) { s.JobType = jobType }
}

func WithPayRate(rate float64) ShiftOption {
	return func(s *model.Shift) { s.PayRate = rate }
}

func WithWorker(workerID string) ShiftOption {
	return func(s *model.Shift) { s.WorkerID = &workerID }
}

func WithMinCancellationHours(hours int) ShiftOption {
	return func(s *model.Shift) { s.MinCancellationHours = &hours }
}

func WithContact(name, number string) ShiftOption {
	return func(s *model.Shift) {
		if name != "" {
			s.ContactPersonName = &name
		}
		if number != "" {
			s.ContactPersonNumber = &number
		}
	}
}

func WithShard(shard int) ShiftOption {
	return func(s *model.Shift) { s.Shard = shard }
}

func (f *Fixtures) Shift(workplace *model.Workplace, start, end time.Time, opts ...ShiftOption) *model.Shift {
	f.t.Helper()
	s := &model.Shift{
		WorkplaceID: workplace.ID,
		StartAt:     start,
		EndAt:       end,
		JobType:     "Food Service Assistant",
		PayRate:     20,
	}
	for _, opt := range opts {
		opt(s)
	}
	require.NoError(f.t, f.Shifts.Create(context.Background(), s))
	return s
}
