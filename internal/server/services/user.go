// Package services contains server-side business logic. This file implements
// UserService, which handles registration and login: exhaustive input
// validation, uniqueness checks, password hashing/verification, and
// session-token issuance.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/avetrovs/userhub/internal/common"
	"github.com/avetrovs/userhub/internal/dbx"
	"github.com/avetrovs/userhub/internal/server/auth"
	"github.com/avetrovs/userhub/internal/server/config"
	"github.com/avetrovs/userhub/internal/server/models"
	"github.com/avetrovs/userhub/internal/server/repositories/repomanager"
	"github.com/avetrovs/userhub/internal/server/validation"
)

// AuthResult bundles the public user view with the freshly minted session
// token. The transport layer decides how to attach the token to the client.
type AuthResult struct {
	User  *models.PublicUser
	Token string
}

// UserService provides authentication-related operations:
// - Register: validate, create the user, mint a session token
// - Login: verify credentials and mint a session token
// - ResolveUser: map a token-embedded user id back to a stored account
type UserService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	hasher        auth.PasswordHasher
	jwtSecret     []byte
	tokenValidity time.Duration
	depTimeout    time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, h auth.PasswordHasher, cfg *config.Config) *UserService {
	return &UserService{
		db:            db,
		repomanager:   m,
		hasher:        h,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.SessionTokenValidityDuration,
		depTimeout:    cfg.DependencyTimeout,
	}
}

// Register validates the input, persists a new user, and mints a session
// token for it. The token is issued strictly after the insert commits:
// a user must exist before being granted a session for it.
func (s *UserService) Register(ctx context.Context, in *validation.RegisterInput) (*AuthResult, error) {
	if err := validation.ValidateRegister(in); err != nil {
		return nil, err
	}

	dob, err := models.ParseDate(in.DateOfBirth)
	if err != nil {
		return nil, err
	}

	opCtx, cancel := context.WithTimeout(ctx, s.depTimeout)
	defer cancel()

	hash, err := s.hasher.Hash(opCtx, in.Password)
	if err != nil {
		return nil, mapTimeout(err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     validation.Sanitize(in.Username),
		FullName:     validation.Sanitize(in.FullName),
		PasswordHash: hash,
		DateOfBirth:  dob,
		Gender:       models.Gender(in.Gender),
		Country:      validation.Sanitize(in.Country),
	}

	err = dbx.WithTx(opCtx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		// Early duplicate check for a friendly error; the unique
		// constraint still decides races at commit time.
		_, err := repo.GetByUsername(ctx, user.Username)
		if err == nil {
			return common.ErrDuplicateUsername
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		_, err = repo.Create(ctx, user)
		return err
	})
	if err != nil {
		return nil, mapTimeout(err)
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &AuthResult{User: user.Public(), Token: token}, nil
}

// Login verifies the provided credentials and, on success, returns the
// public user view with a new session token. A missing account and a wrong
// password stay distinct sentinels here; the transport layer renders both
// identically so callers cannot tell which one failed.
func (s *UserService) Login(ctx context.Context, in *validation.LoginInput) (*AuthResult, error) {
	if err := validation.ValidateLogin(in); err != nil {
		return nil, err
	}

	opCtx, cancel := context.WithTimeout(ctx, s.depTimeout)
	defer cancel()

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByUsername(opCtx, validation.Sanitize(in.Username))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, mapTimeout(err)
	}

	ok, err := s.hasher.Verify(opCtx, in.Password, user.PasswordHash)
	if err != nil {
		return nil, mapTimeout(err)
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &AuthResult{User: user.Public(), Token: token}, nil
}

// ResolveUser maps a session-token user id to the stored account. Used by
// the route guard; an id that no longer maps to an account (e.g. deleted)
// yields common.ErrUnknownUser.
func (s *UserService) ResolveUser(ctx context.Context, userID string) (*models.PublicUser, error) {
	opCtx, cancel := context.WithTimeout(ctx, s.depTimeout)
	defer cancel()

	user, err := s.repomanager.Users(s.db).GetByID(opCtx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUnknownUser
		}
		return nil, mapTimeout(err)
	}
	return user.Public(), nil
}

// mapTimeout converts a context deadline hit on a dependency call into the
// request-fatal ErrDependencyTimeout; everything else passes through.
func mapTimeout(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, common.ErrDependencyTimeout) {
		return common.ErrDependencyTimeout
	}
	return err
}
