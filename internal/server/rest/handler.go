package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avetrovs/userhub/internal/common"
	"github.com/avetrovs/userhub/internal/server/validation"
)

func (s *Server) register(c *gin.Context) {
	ctx := c.Request.Context()
	s.logger.Info(ctx, "Registration request")

	var in validation.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res, err := s.users.Register(ctx, &in)
	if err != nil {
		s.renderError(c, err)
		return
	}

	s.setSessionCookie(c, res.Token)
	s.logger.Info(ctx, "Registered", "username", res.User.Username)
	c.JSON(http.StatusCreated, res.User)
}

func (s *Server) login(c *gin.Context) {
	ctx := c.Request.Context()

	var in validation.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res, err := s.users.Login(ctx, &in)
	if err != nil {
		s.renderError(c, err)
		return
	}

	s.setSessionCookie(c, res.Token)
	c.JSON(http.StatusOK, res.User)
}

func (s *Server) search(c *gin.Context) {
	user, err := s.users.SearchByUsername(c.Request.Context(), c.Query("username"))
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// renderError translates service errors into the HTTP contract. A missing
// account and a wrong password produce byte-identical responses so the API
// does not reveal which one was wrong. Anything unrecognized becomes a
// generic 500 with the detail kept server-side.
func (s *Server) renderError(c *gin.Context, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "validation failed",
			"violations": verr.Violations,
		})
		return
	}

	switch {
	case errors.Is(err, common.ErrDuplicateUsername):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
	case errors.Is(err, common.ErrUserNotFound), errors.Is(err, common.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid username or password"})
	case errors.Is(err, common.ErrMissingQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a username to search"})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	default:
		s.logger.Error(c.Request.Context(), "request failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
