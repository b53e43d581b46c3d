package services

import (
	"context"
	"errors"
	"strings"

	"github.com/avetrovs/userhub/internal/common"
	"github.com/avetrovs/userhub/internal/server/models"
	"github.com/avetrovs/userhub/internal/server/validation"
)

// SearchByUsername returns the public profile of the user with the given
// username. Any authenticated caller may look up any user. An empty query
// yields ErrMissingQuery, an unknown username ErrorNotFound. The password
// hash never leaves this layer.
//
// The query goes through the same sanitization as usernames at
// registration, so lookups match what was stored.
func (s *UserService) SearchByUsername(ctx context.Context, username string) (*models.PublicUser, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, common.ErrMissingQuery
	}
	username = validation.Sanitize(username)

	opCtx, cancel := context.WithTimeout(ctx, s.depTimeout)
	defer cancel()

	user, err := s.repomanager.Users(s.db).GetByUsername(opCtx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, mapTimeout(err)
	}

	return user.Public(), nil
}
