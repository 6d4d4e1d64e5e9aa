package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftboard.com/shiftboard/internal/constants"
	model "shiftboard.com/shiftboard/internal/models"
	"shiftboard.com/shiftboard/internal/query"
	repository "shiftboard.com/shiftboard/internal/repositories"
	"shiftboard.com/shiftboard/internal/testutil"
)

var base = time.Now().UTC().Truncate(time.Hour).Add(48 * time.Hour)

func TestShiftRepository_CreateRejectsInvalidInterval(t *testing.T) {
	fx := testutil.NewFixtures(t, testutil.NewDB(t))
	wp := fx.Workplace("Dock 7", constants.WorkplaceActive)

	err := fx.Shifts.Create(context.Background(), &model.Shift{
		WorkplaceID: wp.ID,
		StartAt:     base,
		EndAt:       base,
		JobType:     "Data Analyst",
	})
	assert.ErrorIs(t, err, model.ErrInvalidInterval)
}

func TestShiftRepository_FindByIDJoinsWorkplace(t *testing.T) {
	fx := testutil.NewFixtures(t, testutil.NewDB(t))
	wp := fx.Workplace("Dock 7", constants.WorkplaceActive)
	s := fx.Shift(wp, base, base.Add(4*time.Hour))

	found, err := fx.Shifts.FindByID(context.Background(), s.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Workplace)
	assert.Equal(t, "Dock 7", found.Workplace.Name)

	_, err = fx.Shifts.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestShiftRepository_ClaimIfAvailable(t *testing.T) {
	ctx := context.Background()
	fx := testutil.NewFixtures(t, testutil.NewDB(t))
	active := fx.Workplace("Dock 7", constants.WorkplaceActive)
	inactive := fx.Workplace("Hangar 2", constants.WorkplaceInactive)
	alice := fx.Worker("Alice")
	bob := fx.Worker("Bob")

	open := fx.Shift(active, base, base.Add(4*time.Hour))
	closed := fx.Shift(inactive, base, base.Add(4*time.Hour))

	ok, err := fx.Shifts.ClaimIfAvailable(ctx, open.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = fx.Shifts.ClaimIfAvailable(ctx, open.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, ok, "already held")

	ok, err = fx.Shifts.ClaimIfAvailable(ctx, closed.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, ok, "workplace not active")

	got, err := fx.Shifts.FindByID(ctx, open.ID)
	require.NoError(t, err)
	assert.True(t, got.IsClaimedBy(alice.ID))
}

func TestShiftRepository_ClaimClearsCancelledAt(t *testing.T) {
	ctx := context.Background()
	fx := testutil.NewFixtures(t, testutil.NewDB(t))
	wp := fx.Workplace("Dock 7", constants.WorkplaceActive)
	alice := fx.Worker("Alice")
	s := fx.Shift(wp, base, base.Add(4*time.Hour), testutil.WithWorker(alice.ID))

	released, err := fx.Shifts.ReleaseClaim(ctx, s.ID, time.Now())
	require.NoError(t, err)
	require.True(t, released)

	ok, err := fx.Shifts.ClaimIfAvailable(ctx, s.ID, alice.ID)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := fx.Shifts.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CancelledAt)
	assert.Equal(t, constants.StateClaimed, got.State())
}

func TestShiftRepository_FindOverlappingHalfOpen(t *testing.T) {
	ctx := context.Background()
	fx := testutil.NewFixtures(t, testutil.NewDB(t))
	wp := fx.Workplace("Dock 7", constants.WorkplaceActive)
	alice := fx.Worker("Alice")

	held := fx.Shift(wp, base.Add(10*time.Hour), base.Add(14*time.Hour), testutil.WithWorker(alice.ID))

	conflicts, err := fx.Shifts.FindOverlapping(ctx, alice.ID, base.Add(13*time.Hour+59*time.Minute), base.Add(16*time.Hour))
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, held.ID, conflicts[0].ID)

	conflicts, err = fx.Shifts.FindOverlapping(ctx, alice.ID, base.Add(14*time.Hour), base.Add(16*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, conflicts)

	conflicts, err = fx.Shifts.FindOverlapping(ctx, alice.ID, base.Add(6*time.Hour), base.Add(10*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestShiftRepository_PendingAndRelease(t *testing.T) {
	ctx := context.Background()
	fx := testutil.NewFixtures(t, testutil.NewDB(t))
	wp := fx.Workplace("Dock 7", constants.WorkplaceActive)
	alice := fx.Worker("Alice")
	held := fx.Shift(wp, base, base.Add(4*time.Hour), testutil.WithWorker(alice.ID))
	open := fx.Shift(wp, base, base.Add(4*time.Hour))

	ok, err := fx.Shifts.MarkPendingCancellation(ctx, open.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, ok, "unheld shift cannot go pending")

	ok, err = fx.Shifts.MarkPendingCancellation(ctx, held.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, ok)

	got, _ := fx.Shifts.FindByID(ctx, held.ID)
	assert.Equal(t, constants.StatePendingCancellation, got.State())

	ok, err = fx.Shifts.ReleaseClaim(ctx, held.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, ok)

	got, _ = fx.Shifts.FindByID(ctx, held.ID)
	assert.Nil(t, got.WorkerID)
	assert.Nil(t, got.PendingCancellationAt)
	assert.NotNil(t, got.CancelledAt)
	assert.Equal(t, constants.StateAvailable, got.State(), "released shifts return to the pool")
}

func TestShiftRepository_ListAvailableFilters(t *testing.T) {
	ctx := context.Background()
	fx := testutil.NewFixtures(t, testutil.NewDB(t))
	dock := fx.Workplace("Dock 7", constants.WorkplaceActive)
	hangar := fx.Workplace("Hangar 2", constants.WorkplaceActive)
	closed := fx.Workplace("Closed Bay", constants.WorkplaceSuspended)
	alice := fx.Worker("Alice")

	first := fx.Shift(dock, base, base.Add(4*time.Hour), testutil.WithJobType("Security Officer"), testutil.WithPayRate(30))
	second := fx.Shift(hangar, base.Add(24*time.Hour), base.Add(28*time.Hour), testutil.WithJobType("Security Officer"), testutil.WithPayRate(18))
	fx.Shift(dock, base.Add(time.Hour), base.Add(5*time.Hour), testutil.WithWorker(alice.ID))
	fx.Shift(closed, base, base.Add(4*time.Hour))
	fx.Shift(dock, time.Now().UTC().Add(-2*time.Hour), time.Now().UTC().Add(2*time.Hour))

	all, err := fx.Shifts.ListAvailable(ctx, query.Available(query.Filters{}, time.Now()), query.NewPage(0, 10))
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)
	assert.NotNil(t, all[0].Workplace)

	minRate := 25.0
	rich, err := fx.Shifts.ListAvailable(ctx, query.Available(query.Filters{PayRateMin: &minRate}, time.Now()), query.NewPage(0, 10))
	require.NoError(t, err)
	require.Len(t, rich, 1)
	assert.Equal(t, first.ID, rich[0].ID)

	atHangar, err := fx.Shifts.ListAvailable(ctx, query.Available(query.Filters{Location: "Hangar 2"}, time.Now()), query.NewPage(0, 10))
	require.NoError(t, err)
	require.Len(t, atHangar, 1)
	assert.Equal(t, second.ID, atHangar[0].ID)

	dateTo := base
	firstDay, err := fx.Shifts.ListAvailable(ctx, query.Available(query.Filters{DateTo: &dateTo}, time.Now()), query.NewPage(0, 10))
	require.NoError(t, err)
	require.Len(t, firstDay, 1)
	assert.Equal(t, first.ID, firstDay[0].ID)
}

func TestShiftRepository_DistinctValues(t *testing.T) {
	ctx := context.Background()
	fx := testutil.NewFixtures(t, testutil.NewDB(t))
	dock := fx.Workplace("Dock 7", constants.WorkplaceActive)
	hangar := fx.Workplace("Hangar 2", constants.WorkplaceActive)
	dome := fx.Workplace("Hydroponics Dome", constants.WorkplaceActive)

	fx.Shift(dock, base, base.Add(4*time.Hour), testutil.WithJobType("Security Officer"))
	fx.Shift(dock, base.Add(8*time.Hour), base.Add(12*time.Hour), testutil.WithJobType("Security Officer"))
	fx.Shift(hangar, base, base.Add(4*time.Hour), testutil.WithJobType("Equipment Maintenance"))
	fx.Shift(dome, base, base.Add(4*time.Hour), testutil.WithJobType("Security Officer"))

	p, _ := query.OptionSearch(constants.AxisLocation, "", query.Filters{JobType: "Security Officer"}, time.Now())
	values, err := fx.Shifts.DistinctValues(ctx, constants.AxisLocation, p, query.NewPage(0, 10))
	require.NoError(t, err)
	assert.Equal(t, []string{"Dock 7", "Hydroponics Dome"}, values)

	p, _ = query.OptionSearch(constants.AxisLocation, "DOCK", query.Filters{}, time.Now())
	values, err = fx.Shifts.DistinctValues(ctx, constants.AxisLocation, p, query.NewPage(0, 10))
	require.NoError(t, err)
	assert.Equal(t, []string{"Dock 7"}, values)

	p, _ = query.OptionSearch(constants.AxisJobType, "", query.Filters{}, time.Now())
	values, err = fx.Shifts.DistinctValues(ctx, constants.AxisJobType, p, query.NewPage(0, 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"Equipment Maintenance"}, values)
}

func TestShiftRepository_ContainsEscapesWildcards(t *testing.T) {
	ctx := context.Background()
	fx := testutil.NewFixtures(t, testutil.NewDB(t))
	wp := fx.Workplace("Dock 7", constants.WorkplaceActive)
	fx.Shift(wp, base, base.Add(4*time.Hour), testutil.WithJobType("Data Analyst"))

	p, _ := query.OptionSearch(constants.AxisJobType, "%", query.Filters{}, time.Now())
	values, err := fx.Shifts.DistinctValues(ctx, constants.AxisJobType, p, query.NewPage(0, 10))
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestShiftRepository_CountCompletedByWorkplace(t *testing.T) {
	ctx := context.Background()
	fx := testutil.NewFixtures(t, testutil.NewDB(t))
	wp := fx.Workplace("Dock 7", constants.WorkplaceActive)
	alice := fx.Worker("Alice")
	past := time.Now().UTC().Add(-48 * time.Hour)

	fx.Shift(wp, past, past.Add(4*time.Hour), testutil.WithWorker(alice.ID))
	fx.Shift(wp, past.Add(6*time.Hour), past.Add(10*time.Hour), testutil.WithWorker(alice.ID))
	fx.Shift(wp, past, past.Add(4*time.Hour))
	fx.Shift(wp, base, base.Add(4*time.Hour), testutil.WithWorker(alice.ID))

	counts, err := fx.Shifts.CountCompletedByWorkplace(ctx, time.Now())
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, wp.ID, counts[0].WorkplaceID)
	assert.EqualValues(t, 2, counts[0].Completed)
}
