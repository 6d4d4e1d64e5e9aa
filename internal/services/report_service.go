package services

import (
	"context"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
)

type WorkplaceRank struct {
	Name   string `json:"name"`
	Shifts int64  `json:"shifts"`
}

type ReportService struct {
	shifts     ShiftStore
	workplaces WorkplaceStore
	clock      clockwork.Clock
}

func NewReportService(shifts ShiftStore, workplaces WorkplaceStore, clock clockwork.Clock) *ReportService {
	return &ReportService{
		shifts:     shifts,
		workplaces: workplaces,
		clock:      clock,
	}
}

// TopWorkplaces ranks active workplaces by completed shifts, most first,
// ties broken by name.
func (s *ReportService) TopWorkplaces(ctx context.Context, limit int) ([]WorkplaceRank, error) {
	if limit <= 0 {
		limit = 3
	}

	counts, err := s.shifts.CountCompletedByWorkplace(ctx, s.clock.Now())
	if err != nil {
		return nil, errors.Wrap(err, "count completed shifts")
	}

	ids := make([]string, 0, len(counts))
	completed := make(map[string]int64, len(counts))
	for _, c := range counts {
		ids = append(ids, c.WorkplaceID)
		completed[c.WorkplaceID] = c.Completed
	}

	workplaces, err := s.workplaces.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "load workplaces")
	}

	ranks := make([]WorkplaceRank, 0, len(workplaces))
	for _, wp := range workplaces {
		if !wp.IsActive() {
			continue
		}
		ranks = append(ranks, WorkplaceRank{Name: wp.Name, Shifts: completed[wp.ID]})
	}

	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Shifts != ranks[j].Shifts {
			return ranks[i].Shifts > ranks[j].Shifts
		}
		return ranks[i].Name < ranks[j].Name
	})
	if len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks, nil
}
