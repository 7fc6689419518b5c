package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/chandra447/dk-stores/internal/domain/rollcall"
	"github.com/chandra447/dk-stores/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type RollcallHandler interface {
	MarkPresent(w http.ResponseWriter, r *http.Request)
	MarkAbsent(w http.ResponseWriter, r *http.Request)
	ReturnFromAbsence(w http.ResponseWriter, r *http.Request)
	StartBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)
	SetHalfDay(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	ActiveBreaks(w http.ResponseWriter, r *http.Request)
	DayLog(w http.ResponseWriter, r *http.Request)
}

type RollcallHandlerImpl struct {
	rollcallService rollcall.RollcallService
}

func NewRollcallHandler(rollcallService rollcall.RollcallService) RollcallHandler {
	return &RollcallHandlerImpl{rollcallService: rollcallService}
}

func (h *RollcallHandlerImpl) decodeMark(w http.ResponseWriter, r *http.Request) (*rollcall.MarkRequest, bool) {
	var req rollcall.MarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Rollcall decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return nil, false
	}
	return &req, true
}

// MarkPresent implements RollcallHandler.
func (h *RollcallHandlerImpl) MarkPresent(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeMark(w, r)
	if !ok {
		return
	}

	rc, err := h.rollcallService.MarkPresent(r.Context(), req)
	if err != nil {
		slog.Error("Mark present service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee marked present", rc)
}

// MarkAbsent implements RollcallHandler.
func (h *RollcallHandlerImpl) MarkAbsent(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeMark(w, r)
	if !ok {
		return
	}

	rc, err := h.rollcallService.MarkAbsent(r.Context(), req)
	if err != nil {
		slog.Error("Mark absent service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee marked absent", rc)
}

// ReturnFromAbsence implements RollcallHandler.
func (h *RollcallHandlerImpl) ReturnFromAbsence(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeMark(w, r)
	if !ok {
		return
	}

	rc, err := h.rollcallService.ReturnFromAbsence(r.Context(), req)
	if err != nil {
		slog.Error("Return from absence service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee returned from absence", rc)
}

// StartBreak implements RollcallHandler.
func (h *RollcallHandlerImpl) StartBreak(w http.ResponseWriter, r *http.Request) {
	req := rollcall.StartBreakRequest{RollcallID: chi.URLParam(r, "rollcallID")}

	b, err := h.rollcallService.StartBreak(r.Context(), &req)
	if err != nil {
		slog.Error("Start break service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Break started", b)
}

// EndBreak implements RollcallHandler.
func (h *RollcallHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	b, err := h.rollcallService.EndBreak(r.Context(), chi.URLParam(r, "breakID"))
	if err != nil {
		slog.Error("End break service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Break ended", b)
}

// SetHalfDay implements RollcallHandler.
func (h *RollcallHandlerImpl) SetHalfDay(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HalfDay bool `json:"half_day"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Set half day decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rc, err := h.rollcallService.SetHalfDay(r.Context(), chi.URLParam(r, "rollcallID"), req.HalfDay)
	if err != nil {
		slog.Error("Set half day service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Half day flag updated", rc)
}

// Status implements RollcallHandler.
func (h *RollcallHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.rollcallService.Status(r.Context(),
		r.URL.Query().Get("employee_id"), r.URL.Query().Get("register_log_id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, status)
}

// ActiveBreaks implements RollcallHandler.
func (h *RollcallHandlerImpl) ActiveBreaks(w http.ResponseWriter, r *http.Request) {
	breaks, err := h.rollcallService.ActiveBreaks(r.Context(), chi.URLParam(r, "registerLogID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, breaks)
}

// DayLog implements RollcallHandler.
func (h *RollcallHandlerImpl) DayLog(w http.ResponseWriter, r *http.Request) {
	log, err := h.rollcallService.DayLog(r.Context(),
		r.URL.Query().Get("employee_id"), chi.URLParam(r, "registerLogID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, log)
}
