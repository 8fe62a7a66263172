// Package users persists the durable account records backing signup and
// login. This is the only package touching relational storage.
package users

import (
	"context"

	"github.com/datamind-io/authcore/internal/server/models"
)

// Repository is the contract for the durable users table.
type Repository interface {
	// Create inserts a new user. A duplicate email fails with
	// common.ErrEmailTaken; other database failures surface as
	// common.ErrStorageUnavailable.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail fetches a user by exact (case-sensitive) email match.
	// Absence is common.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
