package services

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap/zaptest"

	"shiftboard.com/shiftboard/internal/cache"
	"shiftboard.com/shiftboard/internal/constants"
	model "shiftboard.com/shiftboard/internal/models"
	"shiftboard.com/shiftboard/internal/query"
	repository "shiftboard.com/shiftboard/internal/repositories"
	"shiftboard.com/shiftboard/internal/testutil"
)

var testNow = time.Date(2030, time.March, 4, 8, 0, 0, 0, time.UTC)

type testEnv struct {
	fx      *testutil.Fixtures
	clock   *clockwork.FakeClock
	options *cache.MemoryOptionCache

	claims  *ClaimService
	cancels *CancellationService
	shifts  *ShiftService
	workers *WorkerService
	reports *ReportService
}

func setupTestEnv(t *testing.T, pageSize int) *testEnv {
	t.Helper()

	fx := testutil.NewFixtures(t, testutil.NewDB(t))
	clock := clockwork.NewFakeClockAt(testNow)
	options := cache.NewMemoryOptionCache(clock, time.Minute)
	logger := zaptest.NewLogger(t).Sugar()

	return &testEnv{
		fx:      fx,
		clock:   clock,
		options: options,
		claims:  NewClaimService(fx.Shifts, options, logger),
		cancels: NewCancellationService(fx.Shifts, options, clock, logger),
		shifts:  NewShiftService(fx.Shifts, options, clock, logger, pageSize),
		workers: NewWorkerService(fx.Workers, fx.Shifts, clock, pageSize),
		reports: NewReportService(fx.Shifts, fx.Workplaces, clock),
	}
}

// at returns testNow shifted by whole days plus a wall-clock hour and minute.
func at(days, hour, minute int) time.Time {
	return time.Date(testNow.Year(), testNow.Month(), testNow.Day()+days, hour, minute, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}

// mockShiftStore lets engine tests script storage behaviour per method.
type mockShiftStore struct {
	findByID        func(ctx context.Context, id string) (*model.Shift, error)
	findOverlapping func(ctx context.Context, workerID string, start, end time.Time) ([]model.Shift, error)
	claimIfAvail    func(ctx context.Context, id, workerID string) (bool, error)
	markPending     func(ctx context.Context, id string, at time.Time) (bool, error)
	releaseClaim    func(ctx context.Context, id string, at time.Time) (bool, error)
	clearPending    func(ctx context.Context, id string) (bool, error)
	distinctValues  func(ctx context.Context, axis constants.FilterAxis, p query.Predicate, page query.Page) ([]string, error)
}

func (m *mockShiftStore) FindByID(ctx context.Context, id string) (*model.Shift, error) {
	if m.findByID == nil {
		return nil, repository.ErrNotFound
	}
	return m.findByID(ctx, id)
}

func (m *mockShiftStore) List(ctx context.Context, page query.Page) ([]model.Shift, error) {
	return nil, nil
}

func (m *mockShiftStore) FindOverlapping(ctx context.Context, workerID string, start, end time.Time) ([]model.Shift, error) {
	if m.findOverlapping == nil {
		return nil, nil
	}
	return m.findOverlapping(ctx, workerID, start, end)
}

func (m *mockShiftStore) ClaimIfAvailable(ctx context.Context, id, workerID string) (bool, error) {
	if m.claimIfAvail == nil {
		return true, nil
	}
	return m.claimIfAvail(ctx, id, workerID)
}

func (m *mockShiftStore) MarkPendingCancellation(ctx context.Context, id string, at time.Time) (bool, error) {
	if m.markPending == nil {
		return true, nil
	}
	return m.markPending(ctx, id, at)
}

func (m *mockShiftStore) ReleaseClaim(ctx context.Context, id string, at time.Time) (bool, error) {
	if m.releaseClaim == nil {
		return true, nil
	}
	return m.releaseClaim(ctx, id, at)
}

func (m *mockShiftStore) ClearPendingCancellation(ctx context.Context, id string) (bool, error) {
	if m.clearPending == nil {
		return true, nil
	}
	return m.clearPending(ctx, id)
}

func (m *mockShiftStore) ListAvailable(ctx context.Context, p query.Predicate, page query.Page) ([]model.Shift, error) {
	return nil, nil
}

func (m *mockShiftStore) DistinctValues(ctx context.Context, axis constants.FilterAxis, p query.Predicate, page query.Page) ([]string, error) {
	if m.distinctValues == nil {
		return nil, nil
	}
	return m.distinctValues(ctx, axis, p, page)
}

func (m *mockShiftStore) ListByWorker(ctx context.Context, workerID string, page query.Page) ([]model.Shift, error) {
	return nil, nil
}

func (m *mockShiftStore) CountCompletedByWorkplace(ctx context.Context, now time.Time) ([]repository.WorkplaceCount, error) {
	return nil, nil
}
