package errors

import "net/http"

var ErrShiftNotFound = &Exception{
	Message:    "shift not found",
	StatusCode: http.StatusNotFound,
	Kind:       KindNotFound,
}

var ErrWorkerNotFound = &Exception{
	Message:    "worker not found",
	StatusCode: http.StatusNotFound,
	Kind:       KindNotFound,
}
