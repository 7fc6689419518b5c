package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/chandra447/dk-stores/internal/domain/employee"
	"github.com/chandra447/dk-stores/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	CreateManager(w http.ResponseWriter, r *http.Request)
	ProvisionLogin(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListWithStatus(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeService}
}

// Create implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RegisterID = chi.URLParam(r, "registerID")

	created, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Create employee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Employee created", "employee_id", created.ID)
	response.Created(w, "Employee created successfully", created)
}

// CreateManager implements EmployeeHandler.
func (h *EmployeeHandlerImpl) CreateManager(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateManagerRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create manager decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RegisterID = chi.URLParam(r, "registerID")

	created, err := h.employeeService.CreateManager(r.Context(), req)
	if err != nil {
		slog.Error("Create manager service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Manager created", "employee_id", created.ID)
	response.Created(w, "Manager created successfully", created)
}

// ProvisionLogin implements EmployeeHandler.
func (h *EmployeeHandlerImpl) ProvisionLogin(w http.ResponseWriter, r *http.Request) {
	provisioned, err := h.employeeService.ProvisionLogin(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		slog.Error("Provision login service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Login account provisioned", provisioned)
}

// Update implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateEmployeeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")

	updated, err := h.employeeService.Update(r.Context(), req)
	if err != nil {
		slog.Error("Update employee service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee updated successfully", updated)
}

// Delete implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.employeeService.Delete(r.Context(), chi.URLParam(r, "employeeID"), dayQueryFrom(r))
	if err != nil {
		slog.Error("Delete employee service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}

// List implements EmployeeHandler.
func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeService.List(r.Context(), chi.URLParam(r, "registerID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, employees)
}

// ListWithStatus implements EmployeeHandler.
func (h *EmployeeHandlerImpl) ListWithStatus(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeService.ListWithStatus(r.Context(), chi.URLParam(r, "registerID"), dayQueryFrom(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, employees)
}
