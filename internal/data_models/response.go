package dto

import (
	"shiftboard.com/shiftboard/internal/errors"
)

type Response struct {
	Data any `json:"data"`
}

type Links struct {
	Next string `json:"next,omitempty"`
}

type PaginatedResponse struct {
	Data    any   `json:"data"`
	Links   Links `json:"links"`
	HasNext bool  `json:"hasNext"`
}

type ErrorResponse struct {
	Error     string            `json:"error"`
	Kind      errors.Kind       `json:"kind"`
	Field     string            `json:"field,omitempty"`
	Conflicts []errors.Interval `json:"conflicts,omitempty"`
}
