package errors

import (
	"fmt"
	"strings"
	"time"
)

type Interval struct {
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
}

// ConflictError carries every overlapping interval; the list is never truncated.
type ConflictError struct {
	Conflicts []Interval
}

func NewConflictError(conflicts []Interval) *ConflictError {
	return &ConflictError{Conflicts: conflicts}
}

func (e *ConflictError) Error() string {
	parts := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		parts = append(parts, fmt.Sprintf("%s - %s",
			c.StartAt.UTC().Format(time.RFC3339), c.EndAt.UTC().Format(time.RFC3339)))
	}
	return "cannot book shift due to time conflict with existing shifts: " + strings.Join(parts, ", ")
}
