package services

import (
	"context"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"shiftboard.com/shiftboard/internal/cache"
	"shiftboard.com/shiftboard/internal/constants"
	apperrors "shiftboard.com/shiftboard/internal/errors"
	model "shiftboard.com/shiftboard/internal/models"
	"shiftboard.com/shiftboard/internal/query"
	repository "shiftboard.com/shiftboard/internal/repositories"
)

type ShiftService struct {
	store    ShiftStore
	options  cache.OptionCache
	clock    clockwork.Clock
	logger   *zap.SugaredLogger
	pageSize int
}

func NewShiftService(
	store ShiftStore,
	options cache.OptionCache,
	clock clockwork.Clock,
	logger *zap.SugaredLogger,
	pageSize int,
) *ShiftService {
	return &ShiftService{
		store:    store,
		options:  options,
		clock:    clock,
		logger:   logger,
		pageSize: pageSize,
	}
}

func (s *ShiftService) GetShift(ctx context.Context, id string) (*model.Shift, error) {
	shift, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrShiftNotFound
		}
		return nil, errors.Wrapf(err, "load shift %s", id)
	}
	return shift, nil
}

func (s *ShiftService) ListShifts(ctx context.Context, pageNum int) (query.Result[model.Shift], error) {
	page := query.NewPage(pageNum, s.pageSize)
	shifts, err := s.store.List(ctx, page)
	if err != nil {
		return query.Result[model.Shift]{}, errors.Wrap(err, "list shifts")
	}
	return query.Paginate(shifts, page), nil
}

// ListAvailable returns one page of open shifts ordered by start time.
func (s *ShiftService) ListAvailable(ctx context.Context, pageNum int, filters query.Filters) (query.Result[model.Shift], error) {
	page := query.NewPage(pageNum, s.pageSize)
	predicate := query.Available(filters, s.clock.Now())

	shifts, err := s.store.ListAvailable(ctx, predicate, page)
	if err != nil {
		return query.Result[model.Shift]{}, errors.Wrap(err, "list available shifts")
	}
	return query.Paginate(shifts, page), nil
}

// SearchFilterOptions lists distinct locations or job types that still have
// available shifts under the other selected filters. Page 0 always carries the
// value currently selected for axis.
func (s *ShiftService) SearchFilterOptions(
	ctx context.Context,
	axis constants.FilterAxis,
	search string,
	pageNum int,
	limit int,
	filters query.Filters,
) ([]string, error) {
	if axis != constants.AxisLocation && axis != constants.AxisJobType {
		return nil, apperrors.NewValidationError("type", "must be %q or %q", constants.AxisLocation, constants.AxisJobType)
	}

	page := query.OptionPage(pageNum, limit)
	key := cache.OptionKey(axis, search, filters, page)
	values, gen, cacheable := s.cachedOptions(ctx, key)
	if values != nil {
		return values, nil
	}

	predicate, selected := query.OptionSearch(axis, search, filters, s.clock.Now())
	values, err := s.store.DistinctValues(ctx, axis, predicate, page)
	if err != nil {
		return nil, errors.Wrapf(err, "search %s options", axis)
	}

	values = dedupe(values)
	if page.Num == 0 && selected != "" {
		values = mergeSelected(values, selected)
	}

	if cacheable {
		if err := s.options.Set(ctx, gen, key, values); err != nil {
			s.logger.Warnw("failed to cache filter options", "axis", axis, "error", err)
		}
	}
	return values, nil
}

// cachedOptions returns a cached page, or nil plus the generation a freshly
// scanned page may be stored under. cacheable is false when the cache is
// absent or unreadable.
func (s *ShiftService) cachedOptions(ctx context.Context, key string) (values []string, gen int64, cacheable bool) {
	if s.options == nil {
		return nil, 0, false
	}
	values, gen, ok, err := s.options.Get(ctx, key)
	if err != nil {
		s.logger.Warnw("filter option cache read failed", "error", err)
		return nil, 0, false
	}
	if !ok {
		return nil, gen, true
	}
	if values == nil {
		values = []string{}
	}
	return values, gen, true
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func mergeSelected(values []string, selected string) []string {
	i := sort.SearchStrings(values, selected)
	if i < len(values) && values[i] == selected {
		return values
	}
	values = append(values, "")
	copy(values[i+1:], values[i:])
	values[i] = selected
	return values
}
