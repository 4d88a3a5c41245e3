// Package users declares the users collection contract and its PostgreSQL
// implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/budgettracker/internal/server/models"
)

type Repository interface {
	// Create inserts user and fills in the generated ID and CreatedAt.
	// A duplicate username yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
