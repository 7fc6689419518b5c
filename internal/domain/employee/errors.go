package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrNotRegisterOwner = errors.New("only the register owner can manage employees")
	ErrPINRequired      = errors.New("manager PIN is required for manager employees")
	ErrLoginKeyTaken    = errors.New("another manager already uses this name for login")
	ErrNotManager       = errors.New("employee is not a manager")
	ErrLoginLinked      = errors.New("login account already linked")

	// ErrEmployeeOnShift guards deletion: an employee marked present without a
	// closing absence today is still working or on break.
	ErrEmployeeOnShift = errors.New("employee is currently on shift and cannot be deleted")
)
