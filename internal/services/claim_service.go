package services

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"shiftboard.com/shiftboard/internal/cache"
	apperrors "shiftboard.com/shiftboard/internal/errors"
	model "shiftboard.com/shiftboard/internal/models"
	repository "shiftboard.com/shiftboard/internal/repositories"
)

type ClaimService struct {
	store    ShiftStore
	detector *ConflictDetector
	options  cache.OptionCache
	logger   *zap.SugaredLogger
}

func NewClaimService(store ShiftStore, options cache.OptionCache, logger *zap.SugaredLogger) *ClaimService {
	return &ClaimService{
		store:    store,
		detector: NewConflictDetector(store),
		options:  options,
		logger:   logger,
	}
}

// Claim assigns the shift to the worker. The conflict check runs on a
// best-effort read so the caller gets the overlapping windows; exclusivity is
// enforced only by the conditional update.
func (s *ClaimService) Claim(ctx context.Context, shiftID, workerID string) (*model.Shift, error) {
	shift, err := s.findShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}

	if err := s.checkConflicts(ctx, shift, workerID); err != nil {
		return nil, err
	}

	if err := s.assign(ctx, shiftID, workerID); err != nil {
		return nil, err
	}

	invalidateOptions(ctx, s.options, s.logger)

	claimed, err := s.findShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("shift claimed", "shift_id", shiftID, "worker_id", workerID)
	return claimed, nil
}

func (s *ClaimService) findShift(ctx context.Context, shiftID string) (*model.Shift, error) {
	shift, err := s.store.FindByID(ctx, shiftID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrShiftNotFound
		}
		return nil, errors.Wrapf(err, "load shift %s", shiftID)
	}
	return shift, nil
}

func (s *ClaimService) checkConflicts(ctx context.Context, shift *model.Shift, workerID string) error {
	conflicts, err := s.detector.Detect(ctx, workerID, shift.StartAt, shift.EndAt)
	if err != nil {
		return err
	}
	if len(conflicts) == 0 {
		return nil
	}

	s.logger.Infow("claim rejected: schedule conflict",
		"shift_id", shift.ID, "worker_id", workerID, "conflicts", len(conflicts))
	return apperrors.NewConflictError(conflictIntervals(conflicts))
}

func (s *ClaimService) assign(ctx context.Context, shiftID, workerID string) error {
	ok, err := s.store.ClaimIfAvailable(ctx, shiftID, workerID)
	if err != nil {
		return errors.Wrapf(err, "claim shift %s", shiftID)
	}
	if !ok {
		s.logger.Infow("claim rejected: shift unavailable", "shift_id", shiftID, "worker_id", workerID)
		return apperrors.ErrShiftUnavailable
	}
	return nil
}

func invalidateOptions(ctx context.Context, options cache.OptionCache, logger *zap.SugaredLogger) {
	if options == nil {
		return
	}
	if err := options.Invalidate(ctx); err != nil {
		logger.Warnw("failed to invalidate filter option cache", "error", err)
	}
}
