package model

import (
	"time"

	"shiftboard.com/shiftboard/internal/constants"
)

type Worker struct {
	ID        string                 `gorm:"primaryKey;size:36" json:"id"`
	Name      string                 `gorm:"not null" json:"name"`
	Status    constants.WorkerStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt time.Time              `json:"createdAt"`
}
