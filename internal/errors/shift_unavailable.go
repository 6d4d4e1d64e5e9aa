package errors

import "net/http"

// ErrShiftUnavailable is returned when the conditional claim touched no row:
// another worker won the race or the workplace stopped being active.
var ErrShiftUnavailable = &Exception{
	Message:    "shift is no longer available",
	StatusCode: http.StatusConflict,
	Kind:       KindShiftUnavailable,
}
