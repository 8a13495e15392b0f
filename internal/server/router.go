// Package server wires the HTTP surface to the auth and storage layers.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Kohei100802/28-LifePlanner/internal/auth"
	"github.com/Kohei100802/28-LifePlanner/internal/middleware"
	"github.com/Kohei100802/28-LifePlanner/internal/storage"
)

// Server holds the dependencies shared by all HTTP handlers.
type Server struct {
	store      storage.Store
	authn      auth.Authenticator
	jwtManager *auth.JWTManager
	logger     *slog.Logger
}

// New creates a Server with the given dependencies.
func New(store storage.Store, authn auth.Authenticator, jwtManager *auth.JWTManager, logger *slog.Logger) *Server {
	return &Server{
		store:      store,
		authn:      authn,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// Router assembles the gin engine with all routes and middleware.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logging(), middleware.Metrics())

	r.GET("/healthz", s.handleHealthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authGroup := r.Group("/auth")
	authGroup.POST("/register", s.handleRegister)
	authGroup.POST("/login", s.handleLogin)
	authGroup.GET("/me", middleware.RequireAuth(s.jwtManager), s.handleMe)

	// Every simulation route sits behind the session guard; handlers scope
	// all store calls by the identity taken from the token.
	sims := r.Group("/simulations", middleware.RequireAuth(s.jwtManager))
	sims.GET("", s.handleListSimulations)
	sims.POST("", s.handleCreateSimulation)
	sims.GET("/:id", s.handleGetSimulation)
	sims.GET("/:id/series", s.handleSimulationSeries)
	sims.DELETE("/:id", s.handleDeleteSimulation)

	return r
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
