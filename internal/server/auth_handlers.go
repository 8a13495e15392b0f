package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kohei100802/28-LifePlanner/internal/auth"
	"github.com/Kohei100802/28-LifePlanner/internal/middleware"
	"github.com/Kohei100802/28-LifePlanner/internal/storage"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// handleRegister creates a new user account.
func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := s.authn.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, auth.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			s.logger.Error("Registration failed", "email", req.Email, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}

	s.logger.Info("User registered", "user_id", user.ID, "email", user.Email)
	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

// handleLogin authenticates a user and returns a session token.
func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := s.authn.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// Single generic failure for unknown email and wrong password alike
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidCredentials.Error()})
		return
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	s.logger.Info("User logged in", "user_id", user.ID)
	c.JSON(http.StatusOK, gin.H{
		"user":  user.Identity(),
		"token": token,
	})
}

// handleMe returns the authenticated user's current record.
func (s *Server) handleMe(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrMissingToken.Error()})
		return
	}

	user, err := s.store.GetUserByID(c.Request.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Token outlived the account
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			return
		}
		s.logger.Error("Failed to load user", "user_id", identity.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.Identity()})
}
