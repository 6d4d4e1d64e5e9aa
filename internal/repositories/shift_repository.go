package repository

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"shiftboard.com/shiftboard/internal/constants"
	model "shiftboard.com/shiftboard/internal/models"
	"shiftboard.com/shiftboard/internal/query"
)

type ShiftRepository struct {
	db *gorm.DB
}

// WorkplaceCount is the number of completed shifts at one workplace.
type WorkplaceCount struct {
	WorkplaceID string
	Completed   int64
}

func NewShiftRepository(db *gorm.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

func (r *ShiftRepository) Create(ctx context.Context, shift *model.Shift) error {
	if err := shift.Validate(); err != nil {
		return err
	}
	if shift.ID == "" {
		shift.ID = uuid.NewString()
	}
	if shift.CreatedAt.IsZero() {
		shift.CreatedAt = time.Now().UTC()
	}
	shift.StartAt = shift.StartAt.UTC()
	shift.EndAt = shift.EndAt.UTC()

	return translate(r.db.WithContext(ctx).Omit("Workplace").Create(shift).Error)
}

func (r *ShiftRepository) FindByID(ctx context.Context, id string) (*model.Shift, error) {
	var shift model.Shift
	err := r.db.WithContext(ctx).Preload("Workplace").First(&shift, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &shift, nil
}

func (r *ShiftRepository) List(ctx context.Context, page query.Page) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).
		Order("id asc").
		Limit(page.Size).Offset(page.Offset()).
		Find(&shifts).Error
	return shifts, translate(err)
}

// FindOverlapping returns the worker's non-cancelled shifts intersecting
// [start, end), ordered by start.
func (r *ShiftRepository) FindOverlapping(ctx context.Context, workerID string, start, end time.Time) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).
		Where("worker_id = ? AND cancelled_at IS NULL", workerID).
		Where("start_at < ? AND end_at > ?", end.UTC(), start.UTC()).
		Order("start_at asc").
		Find(&shifts).Error
	return shifts, translate(err)
}

// ClaimIfAvailable assigns the worker in a single conditional UPDATE. It
// reports false when the shift is already held or its workplace is not active.
func (r *ShiftRepository) ClaimIfAvailable(ctx context.Context, id, workerID string) (bool, error) {
	activeWorkplaces := r.db.Model(&model.Workplace{}).
		Select("id").
		Where("status = ?", constants.WorkplaceActive)

	res := r.db.WithContext(ctx).Model(&model.Shift{}).
		Where("id = ? AND worker_id IS NULL", id).
		Where("workplace_id IN (?)", activeWorkplaces).
		Updates(map[string]interface{}{
			"worker_id":    workerID,
			"cancelled_at": nil,
		})
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *ShiftRepository) MarkPendingCancellation(ctx context.Context, id string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Shift{}).
		Where("id = ? AND worker_id IS NOT NULL AND cancelled_at IS NULL", id).
		Update("pending_cancellation_at", at.UTC())
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ReleaseClaim cancels a held shift: the worker is cleared together with any
// pending cancellation request.
func (r *ShiftRepository) ReleaseClaim(ctx context.Context, id string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Shift{}).
		Where("id = ? AND worker_id IS NOT NULL", id).
		Updates(map[string]interface{}{
			"cancelled_at":            at.UTC(),
			"worker_id":               nil,
			"pending_cancellation_at": nil,
		})
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *ShiftRepository) ClearPendingCancellation(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Shift{}).
		Where("id = ?", id).
		Update("pending_cancellation_at", nil)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *ShiftRepository) ListAvailable(ctx context.Context, p query.Predicate, page query.Page) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.availableScope(r.db.WithContext(ctx).Model(&model.Shift{}), p).
		Select("shifts.*").
		Preload("Workplace").
		Order("shifts.start_at asc, shifts.id asc").
		Limit(page.Size).Offset(page.Offset()).
		Find(&shifts).Error
	return shifts, translate(err)
}

// DistinctValues scans the distinct values of one axis among available
// shifts matching p, ordered lexicographically.
func (r *ShiftRepository) DistinctValues(ctx context.Context, axis constants.FilterAxis, p query.Predicate, page query.Page) ([]string, error) {
	column, err := axisColumn(axis)
	if err != nil {
		return nil, err
	}

	var values []string
	err = r.availableScope(r.db.WithContext(ctx).Model(&model.Shift{}), p).
		Distinct(column).
		Where(column + " <> ''").
		Order(column + " asc").
		Limit(page.Size).Offset(page.Offset()).
		Pluck(column, &values).Error
	return values, translate(err)
}

func (r *ShiftRepository) ListByWorker(ctx context.Context, workerID string, page query.Page) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).Model(&model.Shift{}).
		Select("shifts.*").
		Joins("JOIN workplaces ON workplaces.id = shifts.workplace_id").
		Where("shifts.worker_id = ?", workerID).
		Where("workplaces.status = ?", constants.WorkplaceActive).
		Preload("Workplace").
		Order("shifts.start_at desc, shifts.id asc").
		Limit(page.Size).Offset(page.Offset()).
		Find(&shifts).Error
	return shifts, translate(err)
}

// CountCompletedByWorkplace counts held, never-released shifts that ended
// before now, grouped by workplace.
func (r *ShiftRepository) CountCompletedByWorkplace(ctx context.Context, now time.Time) ([]WorkplaceCount, error) {
	var counts []WorkplaceCount
	err := r.db.WithContext(ctx).Model(&model.Shift{}).
		Select("workplace_id, COUNT(*) AS completed").
		Where("worker_id IS NOT NULL AND cancelled_at IS NULL AND end_at < ?", now.UTC()).
		Group("workplace_id").
		Scan(&counts).Error
	return counts, translate(err)
}

func (r *ShiftRepository) availableScope(db *gorm.DB, p query.Predicate) *gorm.DB {
	db = db.Joins("JOIN workplaces ON workplaces.id = shifts.workplace_id").
		Where("shifts.worker_id IS NULL").
		Where("workplaces.status = ?", constants.WorkplaceActive).
		Where("shifts.start_at >= ?", p.StartFrom.UTC())

	if p.StartUntil != nil {
		db = db.Where("shifts.start_at <= ?", p.StartUntil.UTC())
	}
	if p.Location != nil {
		db = matchColumn(db, "workplaces.name", *p.Location)
	}
	if p.JobType != nil {
		db = matchColumn(db, "shifts.job_type", *p.JobType)
	}
	if p.PayRateMin != nil {
		db = db.Where("shifts.pay_rate >= ?", *p.PayRateMin)
	}
	if p.ExcludeLocation != "" {
		db = db.Where("workplaces.name <> ?", p.ExcludeLocation)
	}
	if p.ExcludeJobType != "" {
		db = db.Where("shifts.job_type <> ?", p.ExcludeJobType)
	}
	return db
}

func matchColumn(db *gorm.DB, column string, m query.Match) *gorm.DB {
	if m.Mode == query.MatchContains {
		pattern := "%" + strings.ToLower(query.EscapeLike(m.Value)) + "%"
		return db.Where("LOWER("+column+") LIKE ? ESCAPE '\\'", pattern)
	}
	return db.Where(column+" = ?", m.Value)
}

func axisColumn(axis constants.FilterAxis) (string, error) {
	switch axis {
	case constants.AxisLocation:
		return "workplaces.name", nil
	case constants.AxisJobType:
		return "shifts.job_type", nil
	default:
		return "", errors.Newf("unknown filter axis %q", axis)
	}
}
