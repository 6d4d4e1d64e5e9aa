package dto

import (
	"time"

	"shiftboard.com/shiftboard/internal/constants"
	model "shiftboard.com/shiftboard/internal/models"
)

type WorkplaceData struct {
	ID     string                    `json:"id"`
	Name   string                    `json:"name"`
	Status constants.WorkplaceStatus `json:"status"`
}

// ShiftData is the outward form of a shift. It has no shard field.
type ShiftData struct {
	ID                    string               `json:"id"`
	StartAt               time.Time            `json:"startAt"`
	EndAt                 time.Time            `json:"endAt"`
	WorkplaceID           string               `json:"workplaceId"`
	Workplace             *WorkplaceData       `json:"workplace,omitempty"`
	WorkerID              *string              `json:"workerId"`
	CancelledAt           *time.Time           `json:"cancelledAt"`
	PendingCancellationAt *time.Time           `json:"pendingCancellationAt"`
	MinCancellationHours  *int                 `json:"minCancellationHours,omitempty"`
	ContactPersonName     *string              `json:"contactPersonName,omitempty"`
	ContactPersonNumber   *string              `json:"contactPersonNumber,omitempty"`
	JobType               string               `json:"jobType"`
	PayRate               float64              `json:"payRate"`
	State                 constants.ShiftState `json:"state"`
	CreatedAt             time.Time            `json:"createdAt"`
}

func NewShiftData(s model.Shift) ShiftData {
	data := ShiftData{
		ID:                    s.ID,
		StartAt:               s.StartAt.UTC(),
		EndAt:                 s.EndAt.UTC(),
		WorkplaceID:           s.WorkplaceID,
		WorkerID:              s.WorkerID,
		CancelledAt:           s.CancelledAt,
		PendingCancellationAt: s.PendingCancellationAt,
		MinCancellationHours:  s.MinCancellationHours,
		ContactPersonName:     s.ContactPersonName,
		ContactPersonNumber:   s.ContactPersonNumber,
		JobType:               s.JobType,
		PayRate:               s.PayRate,
		State:                 s.State(),
		CreatedAt:             s.CreatedAt.UTC(),
	}
	if s.Workplace != nil {
		data.Workplace = &WorkplaceData{
			ID:     s.Workplace.ID,
			Name:   s.Workplace.Name,
			Status: s.Workplace.Status,
		}
	}
	return data
}

func NewShiftList(shifts []model.Shift) []ShiftData {
	out := make([]ShiftData, 0, len(shifts))
	for _, s := range shifts {
		out = append(out, NewShiftData(s))
	}
	return out
}

type ClaimRequest struct {
	WorkerID string `json:"workerId"`
}

type CancelResponse struct {
	Shift   ShiftData              `json:"shift"`
	Status  constants.CancelStatus `json:"status"`
	Message string                 `json:"message,omitempty"`
}

type BookedShiftsData struct {
	Upcoming []ShiftData `json:"upcoming"`
	Past     []ShiftData `json:"past"`
}
