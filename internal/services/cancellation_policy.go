package services

import (
	"fmt"
	"time"

	model "shiftboard.com/shiftboard/internal/models"
)

// CancellationDecision is the outcome of applying a shift's advance-notice
// threshold at a given instant.
type CancellationDecision struct {
	LastMinute      bool
	HoursUntilStart float64
	Message         string
}

// DecideCancellation treats a cancellation as last-minute when the shift has
// a positive threshold and starts in fewer than that many hours. Exactly the
// threshold is enough notice.
func DecideCancellation(shift *model.Shift, now time.Time) CancellationDecision {
	hours := shift.StartAt.Sub(now).Hours()
	d := CancellationDecision{HoursUntilStart: hours}

	if shift.MinCancellationHours == nil || *shift.MinCancellationHours <= 0 {
		return d
	}
	if hours < float64(*shift.MinCancellationHours) {
		d.LastMinute = true
		d.Message = pendingMessage(shift)
	}
	return d
}

func pendingMessage(shift *model.Shift) string {
	return fmt.Sprintf("This shift is within %d hours of start time. Please contact %s to discuss cancellation.",
		*shift.MinCancellationHours, contactInfo(shift))
}

func contactInfo(shift *model.Shift) string {
	if shift.ContactPersonName == nil || *shift.ContactPersonName == "" {
		return "the manager"
	}
	number := "the provided number"
	if shift.ContactPersonNumber != nil && *shift.ContactPersonNumber != "" {
		number = *shift.ContactPersonNumber
	}
	return fmt.Sprintf("%s at %s", *shift.ContactPersonName, number)
}
