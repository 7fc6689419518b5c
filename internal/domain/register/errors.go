package register

import "errors"

var (
	ErrRegisterNotFound = errors.New("register not found")
	ErrLogNotFound      = errors.New("register log not found")
	ErrAccessDenied     = errors.New("access to this register denied")
)
