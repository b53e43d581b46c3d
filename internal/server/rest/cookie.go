package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avetrovs/userhub/internal/common"
)

// setSessionCookie attaches the signed session token to the response.
// HTTP-only and SameSite=Strict keep it out of reach of client script;
// the Secure flag is dropped only in development mode.
func (s *Server) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		common.SessionCookieName,
		token,
		int(s.cookieTTL.Seconds()),
		common.SessionCookiePath,
		"",
		!s.devMode,
		true,
	)
}
