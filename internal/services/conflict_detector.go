package services

import (
	"context"
	"sort"
	"time"

	"github.com/cockroachdb/errors"

	apperrors "shiftboard.com/shiftboard/internal/errors"
	model "shiftboard.com/shiftboard/internal/models"
)

type ConflictDetector struct {
	store ShiftStore
}

func NewConflictDetector(store ShiftStore) *ConflictDetector {
	return &ConflictDetector{store: store}
}

// Detect returns the worker's non-cancelled shifts overlapping [start, end),
// ordered by start time.
func (d *ConflictDetector) Detect(ctx context.Context, workerID string, start, end time.Time) ([]model.Shift, error) {
	found, err := d.store.FindOverlapping(ctx, workerID, start, end)
	if err != nil {
		return nil, errors.Wrapf(err, "find shifts overlapping for worker %s", workerID)
	}

	conflicts := make([]model.Shift, 0, len(found))
	for _, s := range found {
		if s.CancelledAt == nil && s.IsClaimedBy(workerID) && s.Overlaps(start, end) {
			conflicts = append(conflicts, s)
		}
	}
	sort.SliceStable(conflicts, func(i, j int) bool {
		return conflicts[i].StartAt.Before(conflicts[j].StartAt)
	})
	return conflicts, nil
}

func conflictIntervals(shifts []model.Shift) []apperrors.Interval {
	out := make([]apperrors.Interval, 0, len(shifts))
	for _, s := range shifts {
		out = append(out, apperrors.Interval{StartAt: s.StartAt.UTC(), EndAt: s.EndAt.UTC()})
	}
	return out
}
