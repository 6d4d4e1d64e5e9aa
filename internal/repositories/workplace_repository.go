package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "shiftboard.com/shiftboard/internal/models"
)

type WorkplaceRepository struct {
	db *gorm.DB
}

func NewWorkplaceRepository(db *gorm.DB) *WorkplaceRepository {
	return &WorkplaceRepository{db: db}
}

func (r *WorkplaceRepository) Create(ctx context.Context, workplace *model.Workplace) error {
	if workplace.ID == "" {
		workplace.ID = uuid.NewString()
	}
	if workplace.CreatedAt.IsZero() {
		workplace.CreatedAt = time.Now().UTC()
	}
	return translate(r.db.WithContext(ctx).Create(workplace).Error)
}

func (r *WorkplaceRepository) FindByID(ctx context.Context, id string) (*model.Workplace, error) {
	var workplace model.Workplace
	if err := r.db.WithContext(ctx).First(&workplace, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &workplace, nil
}

func (r *WorkplaceRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Workplace, error) {
	var workplaces []model.Workplace
	if len(ids) == 0 {
		return workplaces, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&workplaces).Error
	return workplaces, translate(err)
}

func (r *WorkplaceRepository) UpdateStatus(ctx context.Context, workplace *model.Workplace) error {
	res := r.db.WithContext(ctx).Model(&model.Workplace{}).
		Where("id = ?", workplace.ID).
		Update("status", workplace.Status)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
