// Package common defines shared constants and sentinel errors used across
// the client and server layers. Callers should match these with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Inventory-specific errors.
	ErrorInsufficientStock = errors.New("insufficient stock")
	ErrorEmptySale         = errors.New("sale has no items")

	// Auth/token errors.
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
