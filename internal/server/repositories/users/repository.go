// Package users declares the server-side repository contract for user
// accounts.
package users

import (
	"context"

	"github.com/Fury174k/pharmstock/internal/server/models"
)

type Repository interface {
	// Create inserts a new user. A username or email collision yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByUsername returns the user with the given username, or
	// common.ErrorNotFound.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByID returns the user with the given ID, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
