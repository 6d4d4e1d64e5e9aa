package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftboard.com/shiftboard/internal/constants"
	apperrors "shiftboard.com/shiftboard/internal/errors"
	"shiftboard.com/shiftboard/internal/testutil"
)

func TestWorkerService_BookedShifts(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t, 10)
	laguna := env.fx.Workplace("Laguna Honda", constants.WorkplaceActive)
	closed := env.fx.Workplace("Closed Clinic", constants.WorkplaceInactive)
	alice := env.fx.Worker("Alice")
	bob := env.fx.Worker("Bob")

	past := env.fx.Shift(laguna, at(-2, 8, 0), at(-2, 12, 0), testutil.WithWorker(alice.ID))
	soon := env.fx.Shift(laguna, at(1, 8, 0), at(1, 12, 0), testutil.WithWorker(alice.ID))
	later := env.fx.Shift(laguna, at(5, 8, 0), at(5, 12, 0), testutil.WithWorker(alice.ID))
	env.fx.Shift(closed, at(2, 8, 0), at(2, 12, 0), testutil.WithWorker(alice.ID))
	env.fx.Shift(laguna, at(3, 8, 0), at(3, 12, 0), testutil.WithWorker(bob.ID))

	booked, err := env.workers.BookedShifts(ctx, alice.ID, 0)
	require.NoError(t, err)
	require.Len(t, booked.Upcoming, 2)
	assert.Equal(t, later.ID, booked.Upcoming[0].ID, "newest first")
	assert.Equal(t, soon.ID, booked.Upcoming[1].ID)
	require.Len(t, booked.Past, 1)
	assert.Equal(t, past.ID, booked.Past[0].ID)
	assert.False(t, booked.HasNext)
}

func TestWorkerService_BookedShiftsUnknownWorker(t *testing.T) {
	env := setupTestEnv(t, 10)

	_, err := env.workers.BookedShifts(context.Background(), "missing", 0)
	assert.ErrorIs(t, err, apperrors.ErrWorkerNotFound)
}
