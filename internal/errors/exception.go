package errors

import (
	"net/http"

	crdb "github.com/cockroachdb/errors"
)

type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindScheduleConflict Kind = "schedule_conflict"
	KindShiftUnavailable Kind = "shift_unavailable"
	KindShiftNotClaimed  Kind = "shift_not_claimed"
	KindValidation       Kind = "validation"
	KindInternal         Kind = "internal"
)

type Exception struct {
	Message    string
	StatusCode int
	Kind       Kind
}

func (e *Exception) Error() string {
	return e.Message
}

func StatusCode(err error) int {
	var conflict *ConflictError
	if crdb.As(err, &conflict) {
		return http.StatusConflict
	}
	var invalid *ValidationError
	if crdb.As(err, &invalid) {
		return http.StatusBadRequest
	}
	var appErr *Exception
	if crdb.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

func KindOf(err error) Kind {
	var conflict *ConflictError
	if crdb.As(err, &conflict) {
		return KindScheduleConflict
	}
	var invalid *ValidationError
	if crdb.As(err, &invalid) {
		return KindValidation
	}
	var appErr *Exception
	if crdb.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
