// Package rest exposes the HTTP surface of the server: registration, login,
// and the protected user-search endpoint, with the route guard in front of
// protected groups.
package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/avetrovs/userhub/internal/logging"
	"github.com/avetrovs/userhub/internal/server/config"
	"github.com/avetrovs/userhub/internal/server/services"
)

type Server struct {
	address     string
	users       *services.UserService
	logger      logging.Logger
	jwtSecret   []byte
	cookieTTL   time.Duration
	devMode     bool
	corsOrigins []string
	engine      *gin.Engine
}

func NewServer(cfg *config.Config, l logging.Logger, us *services.UserService) *Server {
	if !cfg.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		address:     cfg.EndpointAddr,
		users:       us,
		logger:      l.With("module", "rest_server"),
		jwtSecret:   []byte(cfg.SecretKey),
		cookieTTL:   cfg.SessionTokenValidityDuration,
		devMode:     cfg.DevMode,
		corsOrigins: strings.Split(cfg.CORSAllowedOrigins, ","),
	}
	s.engine = s.buildRouter()
	return s
}

func (s *Server) buildRouter() *gin.Engine {
	router := gin.New()
	// Recovery is the outermost net: panics become a plain 500 with no
	// internal detail leaked.
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = s.corsOrigins
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", s.register)
			authRoutes.POST("/login", s.login)
		}

		user := api.Group("/user")
		user.Use(s.requireSession())
		{
			user.GET("/search", s.search)
		}
	}

	return router
}

// Router exposes the engine for tests.
func (s *Server) Router() http.Handler {
	return s.engine
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.engine,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
