package http

import (
	"net/http"
	"strconv"

	"github.com/chandra447/dk-stores/internal/domain/report"
	"github.com/chandra447/dk-stores/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	Dashboard(w http.ResponseWriter, r *http.Request)
	Contribution(w http.ResponseWriter, r *http.Request)
	Hourly(w http.ResponseWriter, r *http.Request)
	EmployeeRange(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// rangeQueryFrom reads the shared report parameters from the query string.
func rangeQueryFrom(r *http.Request) *report.RangeQuery {
	var query report.RangeQuery

	query.FromMs, _ = int64Query(r, "from")
	query.ToMs, _ = int64Query(r, "to")

	if v := r.URL.Query().Get("register_id"); v != "" {
		query.RegisterID = &v
	}
	if v := r.URL.Query().Get("employee_id"); v != "" {
		query.EmployeeID = &v
	}
	if v := r.URL.Query().Get("tz_offset_minutes"); v != "" {
		if offset, err := strconv.Atoi(v); err == nil {
			query.TzOffsetMinutes = &offset
		}
	}
	return &query
}

// Dashboard implements ReportHandler.
func (h *ReportHandlerImpl) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reportService.Dashboard(r.Context(), rangeQueryFrom(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, stats)
}

// Contribution implements ReportHandler.
func (h *ReportHandlerImpl) Contribution(w http.ResponseWriter, r *http.Request) {
	days, err := h.reportService.Contribution(r.Context(), rangeQueryFrom(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, days)
}

// Hourly implements ReportHandler.
func (h *ReportHandlerImpl) Hourly(w http.ResponseWriter, r *http.Request) {
	buckets, err := h.reportService.Hourly(r.Context(), rangeQueryFrom(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, buckets)
}

// EmployeeRange implements ReportHandler.
func (h *ReportHandlerImpl) EmployeeRange(w http.ResponseWriter, r *http.Request) {
	from, okFrom := int64Query(r, "from")
	to, okTo := int64Query(r, "to")
	if !okFrom || !okTo {
		response.BadRequest(w, "from and to are required unix millisecond timestamps", nil)
		return
	}

	log, err := h.reportService.EmployeeRange(r.Context(), chi.URLParam(r, "employeeID"), from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, log)
}
