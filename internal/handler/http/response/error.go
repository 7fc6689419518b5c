package response

import (
	"errors"
	"net/http"

	"github.com/chandra447/dk-stores/internal/domain/auth"
	"github.com/chandra447/dk-stores/internal/domain/employee"
	"github.com/chandra447/dk-stores/internal/domain/register"
	"github.com/chandra447/dk-stores/internal/domain/rollcall"
	"github.com/chandra447/dk-stores/internal/domain/user"
	"github.com/chandra447/dk-stores/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidPIN):
		Unauthorized(w, "Invalid PIN")
	case errors.Is(err, auth.ErrAccountNotFound):
		Unauthorized(w, "No account found for this login")
	case errors.Is(err, auth.ErrNotAuthenticated):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Register domain errors
	case errors.Is(err, register.ErrRegisterNotFound):
		NotFound(w, "Register not found")
	case errors.Is(err, register.ErrLogNotFound):
		NotFound(w, "Register has not been opened for this day")
	case errors.Is(err, register.ErrAccessDenied):
		Forbidden(w, "Access to this register denied")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrNotRegisterOwner):
		Forbidden(w, "Only the register owner can manage employees")
	case errors.Is(err, employee.ErrPINRequired):
		BadRequest(w, "A 4 digit PIN is required for manager employees", nil)
	case errors.Is(err, employee.ErrLoginKeyTaken):
		Conflict(w, "Another manager already uses this name for login")
	case errors.Is(err, employee.ErrNotManager):
		BadRequest(w, "Employee is not a manager", nil)
	case errors.Is(err, employee.ErrLoginLinked):
		Conflict(w, "Login account already linked")
	case errors.Is(err, employee.ErrEmployeeOnShift):
		Conflict(w, "Employee is currently on shift and cannot be deleted")

	// Rollcall domain errors
	case errors.Is(err, rollcall.ErrRollcallNotFound):
		NotFound(w, "Rollcall entry not found")
	case errors.Is(err, rollcall.ErrBreakNotFound):
		NotFound(w, "Break not found")
	case errors.Is(err, rollcall.ErrBreakOpen):
		Conflict(w, "Employee already has an open break")
	case errors.Is(err, rollcall.ErrBreakClosed):
		Conflict(w, "Break has already ended")
	case errors.Is(err, rollcall.ErrNotAbsent):
		Conflict(w, "Employee is not marked absent")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
