package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avetrovs/userhub/internal/common"
	"github.com/avetrovs/userhub/internal/server/auth"
)

// ContextUserIDKey is where the route guard stores the authenticated
// user's identifier for downstream handlers.
const ContextUserIDKey = "auth.user_id"

// requireSession is the route guard: it validates the session cookie and
// resolves the embedded user id against the account directory before the
// protected handler runs.
func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(common.SessionCookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no session token provided"})
			return
		}

		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			if errors.Is(err, common.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session token"})
			return
		}

		// The account may have disappeared after the token was minted.
		user, err := s.users.ResolveUser(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, common.ErrUnknownUser) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session token"})
				return
			}
			s.logger.Error(c.Request.Context(), "route guard user resolution failed", "error", err.Error())
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Next()
	}
}
