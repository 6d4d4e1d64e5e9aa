package services

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"

	apperrors "shiftboard.com/shiftboard/internal/errors"
	model "shiftboard.com/shiftboard/internal/models"
	"shiftboard.com/shiftboard/internal/query"
	repository "shiftboard.com/shiftboard/internal/repositories"
)

// BookedShifts is one page of a worker's claims split around now.
type BookedShifts struct {
	Upcoming []model.Shift
	Past     []model.Shift
	HasNext  bool
	NextPage *query.Page
}

type WorkerService struct {
	workers  WorkerStore
	shifts   ShiftStore
	clock    clockwork.Clock
	pageSize int
}

func NewWorkerService(workers WorkerStore, shifts ShiftStore, clock clockwork.Clock, pageSize int) *WorkerService {
	return &WorkerService{
		workers:  workers,
		shifts:   shifts,
		clock:    clock,
		pageSize: pageSize,
	}
}

func (s *WorkerService) GetWorker(ctx context.Context, id string) (*model.Worker, error) {
	worker, err := s.workers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrWorkerNotFound
		}
		return nil, errors.Wrapf(err, "load worker %s", id)
	}
	return worker, nil
}

// BookedShifts lists the worker's claims at active workplaces, newest first.
func (s *WorkerService) BookedShifts(ctx context.Context, workerID string, pageNum int) (*BookedShifts, error) {
	if _, err := s.GetWorker(ctx, workerID); err != nil {
		return nil, err
	}

	page := query.NewPage(pageNum, s.pageSize)
	claims, err := s.shifts.ListByWorker(ctx, workerID, page)
	if err != nil {
		return nil, errors.Wrapf(err, "list claims for worker %s", workerID)
	}

	result := query.Paginate(claims, page)
	now := s.clock.Now()
	booked := &BookedShifts{
		Upcoming: []model.Shift{},
		Past:     []model.Shift{},
		HasNext:  result.HasNext,
		NextPage: result.NextPage,
	}
	for _, shift := range result.Data {
		if shift.StartAt.Before(now) {
			booked.Past = append(booked.Past, shift)
		} else {
			booked.Upcoming = append(booked.Upcoming, shift)
		}
	}
	return booked, nil
}
