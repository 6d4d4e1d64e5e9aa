package services

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"shiftboard.com/shiftboard/internal/cache"
	"shiftboard.com/shiftboard/internal/constants"
	apperrors "shiftboard.com/shiftboard/internal/errors"
	model "shiftboard.com/shiftboard/internal/models"
	repository "shiftboard.com/shiftboard/internal/repositories"
)

type CancelResult struct {
	Shift   *model.Shift
	Status  constants.CancelStatus
	Message string
}

type CancellationService struct {
	store   ShiftStore
	options cache.OptionCache
	clock   clockwork.Clock
	logger  *zap.SugaredLogger
}

func NewCancellationService(store ShiftStore, options cache.OptionCache, clock clockwork.Clock, logger *zap.SugaredLogger) *CancellationService {
	return &CancellationService{
		store:   store,
		options: options,
		clock:   clock,
		logger:  logger,
	}
}

// Cancel releases a held shift or, inside its notice window, parks it in
// pending-cancellation. Cancelling a shift that is already pending releases
// it without re-applying the threshold.
func (s *CancellationService) Cancel(ctx context.Context, shiftID string) (*CancelResult, error) {
	shift, err := s.findShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if shift.WorkerID == nil {
		return nil, apperrors.ErrShiftNotClaimed
	}

	now := s.clock.Now().UTC()

	if shift.PendingCancellationAt == nil {
		if decision := DecideCancellation(shift, now); decision.LastMinute {
			return s.markPending(ctx, shift, decision, now)
		}
	}

	return s.release(ctx, shift, now)
}

func (s *CancellationService) markPending(ctx context.Context, shift *model.Shift, decision CancellationDecision, now time.Time) (*CancelResult, error) {
	ok, err := s.store.MarkPendingCancellation(ctx, shift.ID, now)
	if err != nil {
		return nil, errors.Wrapf(err, "mark shift %s pending cancellation", shift.ID)
	}
	if !ok {
		return nil, apperrors.ErrShiftNotClaimed
	}

	updated, err := s.findShift(ctx, shift.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("cancellation pending manual contact",
		"shift_id", shift.ID, "hours_until_start", decision.HoursUntilStart)
	return &CancelResult{
		Shift:   updated,
		Status:  constants.CancelStatusPending,
		Message: decision.Message,
	}, nil
}

func (s *CancellationService) release(ctx context.Context, shift *model.Shift, now time.Time) (*CancelResult, error) {
	ok, err := s.store.ReleaseClaim(ctx, shift.ID, now)
	if err != nil {
		return nil, errors.Wrapf(err, "cancel shift %s", shift.ID)
	}
	if !ok {
		return nil, apperrors.ErrShiftNotClaimed
	}

	invalidateOptions(ctx, s.options, s.logger)

	updated, err := s.findShift(ctx, shift.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("shift cancelled", "shift_id", shift.ID)
	return &CancelResult{
		Shift:  updated,
		Status: constants.CancelStatusCancelled,
	}, nil
}

// Keep withdraws a pending cancellation. The worker assignment is untouched.
func (s *CancellationService) Keep(ctx context.Context, shiftID string) (*model.Shift, error) {
	ok, err := s.store.ClearPendingCancellation(ctx, shiftID)
	if err != nil {
		return nil, errors.Wrapf(err, "keep shift %s", shiftID)
	}
	if !ok {
		return nil, apperrors.ErrShiftNotFound
	}

	kept, err := s.findShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("shift kept", "shift_id", shiftID)
	return kept, nil
}

func (s *CancellationService) findShift(ctx context.Context, shiftID string) (*model.Shift, error) {
	shift, err := s.store.FindByID(ctx, shiftID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrShiftNotFound
		}
		return nil, errors.Wrapf(err, "load shift %s", shiftID)
	}
	return shift, nil
}
