package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shiftlog-hq/timetracker-backend-go/internal/domain/timelog"
	"github.com/shiftlog-hq/timetracker-backend-go/internal/handler/http/response"
)

type TimeLogHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	StartBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)
	GetMyTimeLogs(w http.ResponseWriter, r *http.Request)
	GetMyStats(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListByRange(w http.ResponseWriter, r *http.Request)
	GetEmployeeTimeLogs(w http.ResponseWriter, r *http.Request)
	GetEmployeeStats(w http.ResponseWriter, r *http.Request)
	UpdateNotes(w http.ResponseWriter, r *http.Request)
}

type timeLogHandlerImpl struct {
	timeLogService timelog.TimeLogService
}

func NewTimeLogHandler(timeLogService timelog.TimeLogService) TimeLogHandler {
	return &timeLogHandlerImpl{
		timeLogService: timeLogService,
	}
}

// ClockIn implements TimeLogHandler.
func (h *timeLogHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	result, err := h.timeLogService.ClockIn(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock in successful", result)
}

// ClockOut implements TimeLogHandler.
func (h *timeLogHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	result, err := h.timeLogService.ClockOut(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clock out successful", result)
}

// StartBreak implements TimeLogHandler.
func (h *timeLogHandlerImpl) StartBreak(w http.ResponseWriter, r *http.Request) {
	result, err := h.timeLogService.StartBreak(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break started", result)
}

// EndBreak implements TimeLogHandler.
func (h *timeLogHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	result, err := h.timeLogService.EndBreak(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break ended", result)
}

// GetMyTimeLogs implements TimeLogHandler.
func (h *timeLogHandlerImpl) GetMyTimeLogs(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timeLogService.GetMyTimeLogs(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.TimeLogs, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// GetMyStats implements TimeLogHandler.
func (h *timeLogHandlerImpl) GetMyStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.timeLogService.GetMyStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements TimeLogHandler.
func (h *timeLogHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timeLogService.ListTimeLogs(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.TimeLogs, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// ListByRange implements TimeLogHandler. Same as List, but the date range is
// mandatory.
func (h *timeLogHandlerImpl) ListByRange(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if filter.StartDate == nil || filter.EndDate == nil {
		response.BadRequest(w, "start_date and end_date are required", nil)
		return
	}

	result, err := h.timeLogService.ListTimeLogs(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.TimeLogs, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// GetEmployeeTimeLogs implements TimeLogHandler.
func (h *timeLogHandlerImpl) GetEmployeeTimeLogs(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	filter, err := filterFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timeLogService.GetEmployeeTimeLogs(r.Context(), employeeID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.TimeLogs, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// GetEmployeeStats implements TimeLogHandler.
func (h *timeLogHandlerImpl) GetEmployeeStats(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.timeLogService.GetEmployeeStats(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateNotes implements TimeLogHandler.
func (h *timeLogHandlerImpl) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	var req timelog.UpdateNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode notes request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.timeLogService.UpdateNotes(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notes updated", result)
}

// filterFromQuery builds a validated filter from list query parameters.
func filterFromQuery(r *http.Request) (timelog.TimeLogFilter, error) {
	q := r.URL.Query()

	var filter timelog.TimeLogFilter
	if v := q.Get("status"); v != "" {
		filter.Status = &v
	}
	if v := q.Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := q.Get("end_date"); v != "" {
		filter.EndDate = &v
	}
	if v := q.Get("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil && page > 0 {
			filter.Page = page
		}
	}
	if v := q.Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	filter.SortOrder = q.Get("sort")

	if err := filter.Validate(); err != nil {
		return timelog.TimeLogFilter{}, err
	}

	return filter, nil
}
