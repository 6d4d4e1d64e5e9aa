package model

import (
	"time"

	"shiftboard.com/shiftboard/internal/constants"
)

type Shift struct {
	ID                    string     `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt             time.Time  `json:"createdAt"`
	StartAt               time.Time  `gorm:"not null;index" json:"startAt"`
	EndAt                 time.Time  `gorm:"not null;index" json:"endAt"`
	WorkplaceID           string     `gorm:"size:36;not null;index" json:"workplaceId"`
	Workplace             *Workplace `gorm:"foreignKey:WorkplaceID" json:"workplace,omitempty"`
	WorkerID              *string    `gorm:"size:36;index" json:"workerId"`
	CancelledAt           *time.Time `json:"cancelledAt"`
	PendingCancellationAt *time.Time `json:"pendingCancellationAt"`
	MinCancellationHours  *int       `json:"minCancellationHours,omitempty"`
	ContactPersonName     *string    `json:"contactPersonName,omitempty"`
	ContactPersonNumber   *string    `json:"contactPersonNumber,omitempty"`
	JobType               string     `gorm:"not null;index" json:"jobType"`
	PayRate               float64    `gorm:"not null;default:0" json:"payRate"`
	Shard                 int        `gorm:"not null;default:0" json:"-"`
}

// State derives the lifecycle state from the nullable fields. A released
// shift is back in the pool: CancelledAt only records the last release.
func (s *Shift) State() constants.ShiftState {
	switch {
	case s.WorkerID != nil && s.PendingCancellationAt != nil:
		return constants.StatePendingCancellation
	case s.WorkerID != nil:
		return constants.StateClaimed
	default:
		return constants.StateAvailable
	}
}

func (s *Shift) IsClaimedBy(workerID string) bool {
	return s.WorkerID != nil && *s.WorkerID == workerID
}

// Overlaps reports whether [StartAt, EndAt) intersects [start, end).
// Touching endpoints do not overlap.
func (s *Shift) Overlaps(start, end time.Time) bool {
	return s.StartAt.Before(end) && s.EndAt.After(start)
}

func (s *Shift) Validate() error {
	if !s.EndAt.After(s.StartAt) {
		return ErrInvalidInterval
	}
	if s.PayRate < 0 {
		return ErrNegativePayRate
	}
	if s.MinCancellationHours != nil && *s.MinCancellationHours < 0 {
		return ErrNegativeThreshold
	}
	return nil
}
