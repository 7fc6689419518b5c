package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/chandra447/dk-stores/internal/domain/register"
	"github.com/chandra447/dk-stores/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type RegisterHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Open(w http.ResponseWriter, r *http.Request)
	TodayLog(w http.ResponseWriter, r *http.Request)
}

type RegisterHandlerImpl struct {
	registerService register.RegisterService
}

func NewRegisterHandler(registerService register.RegisterService) RegisterHandler {
	return &RegisterHandlerImpl{registerService: registerService}
}

// Create implements RegisterHandler.
func (h *RegisterHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req register.CreateRegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create register decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.registerService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Create register service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Register created", "register_id", created.ID)
	response.Created(w, "Register created successfully", created)
}

// Get implements RegisterHandler.
func (h *RegisterHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	reg, err := h.registerService.Get(r.Context(), chi.URLParam(r, "registerID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, reg)
}

// ListMine implements RegisterHandler.
func (h *RegisterHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	registers, err := h.registerService.ListMine(r.Context(), dayQueryFrom(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, registers)
}

// Open implements RegisterHandler.
func (h *RegisterHandlerImpl) Open(w http.ResponseWriter, r *http.Request) {
	var req register.OpenRegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Open register decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RegisterID = chi.URLParam(r, "registerID")

	log, err := h.registerService.Open(r.Context(), req)
	if err != nil {
		slog.Error("Open register service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Register opened", "register_id", req.RegisterID, "log_id", log.ID)
	response.Created(w, "Register opened for the day", log)
}

// TodayLog implements RegisterHandler.
func (h *RegisterHandlerImpl) TodayLog(w http.ResponseWriter, r *http.Request) {
	log, err := h.registerService.TodayLog(r.Context(), chi.URLParam(r, "registerID"), dayQueryFrom(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, log)
}
