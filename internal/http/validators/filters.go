package validators

import (
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"shiftboard.com/shiftboard/internal/constants"
	dto "shiftboard.com/shiftboard/internal/data_models"
	apperrors "shiftboard.com/shiftboard/internal/errors"
	"shiftboard.com/shiftboard/internal/query"
)

// Filters reads the optional listing filters from the query string.
func Filters(c echo.Context) (query.Filters, error) {
	f := query.Filters{
		Location: strings.TrimSpace(c.QueryParam("location")),
		JobType:  strings.TrimSpace(c.QueryParam("jobtype")),
	}

	if raw := c.QueryParam("payratemin"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return query.Filters{}, apperrors.NewValidationError("payratemin", "must be a non-negative number")
		}
		f.PayRateMin = &v
	}

	from, err := parseDate(c, "datefrom")
	if err != nil {
		return query.Filters{}, err
	}
	to, err := parseDate(c, "dateto")
	if err != nil {
		return query.Filters{}, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return query.Filters{}, apperrors.NewValidationError("dateto", "must not be before datefrom")
	}
	f.DateFrom, f.DateTo = from, to

	return f, nil
}

// Page reads the zero-based page index.
func Page(c echo.Context) (int, error) {
	return nonNegativeInt(c, "page", 0)
}

// Limit reads the filter-option page size. Zero means the default.
func Limit(c echo.Context) (int, error) {
	limit, err := nonNegativeInt(c, "limit", 0)
	if err != nil {
		return 0, err
	}
	if limit > query.MaxOptionLimit {
		return 0, apperrors.NewValidationError("limit", "must be between 1 and %d", query.MaxOptionLimit)
	}
	return limit, nil
}

func Axis(c echo.Context) (constants.FilterAxis, error) {
	axis := constants.FilterAxis(c.QueryParam("type"))
	switch axis {
	case constants.AxisLocation, constants.AxisJobType:
		return axis, nil
	default:
		return "", apperrors.NewValidationError("type", "must be %q or %q", constants.AxisLocation, constants.AxisJobType)
	}
}

func ValidateClaimRequest(r *dto.ClaimRequest) error {
	r.WorkerID = strings.TrimSpace(r.WorkerID)
	if r.WorkerID == "" {
		return apperrors.NewValidationError("workerId", "is required")
	}
	return nil
}

func nonNegativeInt(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, apperrors.NewValidationError(name, "must be a non-negative integer")
	}
	return v, nil
}

func parseDate(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, apperrors.NewValidationError(name, "must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
}
