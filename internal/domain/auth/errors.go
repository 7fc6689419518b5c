package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidPIN          = errors.New("invalid name or PIN")
	ErrAccountNotFound     = errors.New("account not found, please sign up first")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrTokenExpired        = errors.New("token has expired")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	ErrNotAuthenticated    = errors.New("not authenticated")
)
