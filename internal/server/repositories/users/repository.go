// Package users implements the account directory: the persistent store of
// user records, queried by unique username or id.
package users

import (
	"context"

	"github.com/avetrovs/userhub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
