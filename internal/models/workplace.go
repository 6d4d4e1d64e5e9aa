package model

import (
	"time"

	"shiftboard.com/shiftboard/internal/constants"
)

type Workplace struct {
	ID        string                    `gorm:"primaryKey;size:36" json:"id"`
	Name      string                    `gorm:"not null;index" json:"name"`
	Status    constants.WorkplaceStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt time.Time                 `json:"createdAt"`
}

func (w *Workplace) IsActive() bool {
	return w != nil && w.Status == constants.WorkplaceActive
}
