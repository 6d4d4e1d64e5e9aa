package http

import (
	"net/http"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	dto "shiftboard.com/shiftboard/internal/data_models"
	apperrors "shiftboard.com/shiftboard/internal/errors"
	"shiftboard.com/shiftboard/internal/http/validators"
	"shiftboard.com/shiftboard/internal/query"
	"shiftboard.com/shiftboard/internal/services"
)

type Handler struct {
	claims  *services.ClaimService
	cancels *services.CancellationService
	shifts  *services.ShiftService
	workers *services.WorkerService
	reports *services.ReportService
	logger  *zap.SugaredLogger
}

func NewHandler(
	claims *services.ClaimService,
	cancels *services.CancellationService,
	shifts *services.ShiftService,
	workers *services.WorkerService,
	reports *services.ReportService,
	logger *zap.SugaredLogger,
) *Handler {
	return &Handler{
		claims:  claims,
		cancels: cancels,
		shifts:  shifts,
		workers: workers,
		reports: reports,
		logger:  logger,
	}
}

func (h *Handler) ListAvailable(c echo.Context) error {
	page, err := validators.Page(c)
	if err != nil {
		return h.fail(c, err)
	}
	filters, err := validators.Filters(c)
	if err != nil {
		return h.fail(c, err)
	}

	res, err := h.shifts.ListAvailable(c.Request().Context(), page, filters)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, paginated(c, query.Map(res, dto.NewShiftData)))
}

func (h *Handler) SearchFilterOptions(c echo.Context) error {
	axis, err := validators.Axis(c)
	if err != nil {
		return h.fail(c, err)
	}
	page, err := validators.Page(c)
	if err != nil {
		return h.fail(c, err)
	}
	limit, err := validators.Limit(c)
	if err != nil {
		return h.fail(c, err)
	}
	filters, err := validators.Filters(c)
	if err != nil {
		return h.fail(c, err)
	}

	values, err := h.shifts.SearchFilterOptions(c.Request().Context(), axis, c.QueryParam("search"), page, limit, filters)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, dto.Response{Data: values})
}

func (h *Handler) GetShift(c echo.Context) error {
	shift, err := h.shifts.GetShift(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, dto.Response{Data: dto.NewShiftData(*shift)})
}

func (h *Handler) ListShifts(c echo.Context) error {
	page, err := validators.Page(c)
	if err != nil {
		return h.fail(c, err)
	}

	res, err := h.shifts.ListShifts(c.Request().Context(), page)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, paginated(c, query.Map(res, dto.NewShiftData)))
}

func (h *Handler) Claim(c echo.Context) error {
	var req dto.ClaimRequest
	if err := c.Bind(&req); err != nil {
		return h.fail(c, apperrors.NewValidationError("", "invalid JSON payload"))
	}
	if err := validators.ValidateClaimRequest(&req); err != nil {
		return h.fail(c, err)
	}

	shift, err := h.claims.Claim(c.Request().Context(), c.Param("id"), req.WorkerID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, dto.Response{Data: dto.NewShiftData(*shift)})
}

func (h *Handler) Cancel(c echo.Context) error {
	res, err := h.cancels.Cancel(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, dto.Response{Data: dto.CancelResponse{
		Shift:   dto.NewShiftData(*res.Shift),
		Status:  res.Status,
		Message: res.Message,
	}})
}

func (h *Handler) Keep(c echo.Context) error {
	shift, err := h.cancels.Keep(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, dto.Response{Data: dto.NewShiftData(*shift)})
}

func (h *Handler) BookedShifts(c echo.Context) error {
	page, err := validators.Page(c)
	if err != nil {
		return h.fail(c, err)
	}

	booked, err := h.workers.BookedShifts(c.Request().Context(), c.Param("id"), page)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, dto.PaginatedResponse{
		Data: dto.BookedShiftsData{
			Upcoming: dto.NewShiftList(booked.Upcoming),
			Past:     dto.NewShiftList(booked.Past),
		},
		Links:   dto.Links{Next: nextLink(c, booked.NextPage)},
		HasNext: booked.HasNext,
	})
}

func (h *Handler) TopWorkplaces(c echo.Context) error {
	limit := 3
	if raw := c.QueryParam("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return h.fail(c, apperrors.NewValidationError("limit", "must be a positive integer"))
		}
		limit = v
	}

	ranks, err := h.reports.TopWorkplaces(c.Request().Context(), limit)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, dto.Response{Data: ranks})
}

// fail writes the error body. Unknown errors are logged and reported
// without detail.
func (h *Handler) fail(c echo.Context, err error) error {
	status := apperrors.StatusCode(err)
	body := dto.ErrorResponse{Error: err.Error(), Kind: apperrors.KindOf(err)}

	var conflict *apperrors.ConflictError
	if errors.As(err, &conflict) {
		body.Conflicts = conflict.Conflicts
	}
	var invalid *apperrors.ValidationError
	if errors.As(err, &invalid) {
		body.Field = invalid.Field
		body.Error = invalid.Message
	}

	if status == http.StatusInternalServerError {
		h.logger.Errorw("request failed", "path", c.Path(), "error", err)
		body.Error = "internal server error"
	}
	return c.JSON(status, body)
}

func paginated[T any](c echo.Context, res query.Result[T]) dto.PaginatedResponse {
	return dto.PaginatedResponse{
		Data:    res.Data,
		Links:   dto.Links{Next: nextLink(c, res.NextPage)},
		HasNext: res.HasNext,
	}
}

// nextLink repeats the current request with the page parameter advanced.
func nextLink(c echo.Context, next *query.Page) string {
	if next == nil {
		return ""
	}
	u := *c.Request().URL
	q := u.Query()
	q.Set("page", strconv.Itoa(next.Num))
	u.RawQuery = q.Encode()
	return u.RequestURI()
}
