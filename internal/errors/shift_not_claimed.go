package errors

import "net/http"

var ErrShiftNotClaimed = &Exception{
	Message:    "shift is not currently claimed",
	StatusCode: http.StatusConflict,
	Kind:       KindShiftNotClaimed,
}
