package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kohei100802/28-LifePlanner/internal/aggregate"
	"github.com/Kohei100802/28-LifePlanner/internal/auth"
	"github.com/Kohei100802/28-LifePlanner/internal/middleware"
	"github.com/Kohei100802/28-LifePlanner/internal/models"
	"github.com/Kohei100802/28-LifePlanner/internal/storage"
)

type entryInput struct {
	Age    int    `json:"age"`
	Kind   string `json:"kind"`
	Label  string `json:"label"`
	Amount int    `json:"amount"`
}

type createSimulationRequest struct {
	Title   string       `json:"title"`
	BaseAge int          `json:"baseAge"`
	Entries []entryInput `json:"entries"`
}

// validate checks the whole request against the boundary rules. Any violation
// fails the request; nothing is partially accepted.
func (r *createSimulationRequest) validate() error {
	if r.Title == "" {
		return errors.New("title must not be empty")
	}
	if r.BaseAge < 0 {
		return errors.New("baseAge must be a non-negative integer")
	}
	for i, e := range r.Entries {
		if e.Age < 0 {
			return fmt.Errorf("entries[%d]: age must be a non-negative integer", i)
		}
		if !models.EntryKind(e.Kind).Valid() {
			return fmt.Errorf("entries[%d]: kind must be %q or %q", i, models.KindIncome, models.KindExpense)
		}
		if e.Label == "" {
			return fmt.Errorf("entries[%d]: label must not be empty", i)
		}
		if e.Amount < 0 {
			return fmt.Errorf("entries[%d]: amount must be a non-negative integer", i)
		}
	}
	return nil
}

// handleListSimulations returns the caller's simulations, most recent first.
func (s *Server) handleListSimulations(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrMissingToken.Error()})
		return
	}

	sims, err := s.store.ListSimulationsByOwner(c.Request.Context(), identity.ID)
	if err != nil {
		s.logger.Error("Failed to list simulations", "user_id", identity.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "listing failed"})
		return
	}
	if sims == nil {
		sims = []models.Simulation{}
	}
	for i := range sims {
		if sims[i].Entries == nil {
			sims[i].Entries = []models.Entry{}
		}
	}

	c.JSON(http.StatusOK, sims)
}

// handleCreateSimulation validates and persists a simulation with its entries.
func (s *Server) handleCreateSimulation(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrMissingToken.Error()})
		return
	}

	// The token may outlive the account; reject before writing anything.
	if _, err := s.store.GetUserByID(c.Request.Context(), identity.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			return
		}
		s.logger.Error("Failed to load user", "user_id", identity.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}

	var req createSimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := req.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sim := &models.Simulation{
		Title:   req.Title,
		BaseAge: req.BaseAge,
		// Owner comes from the session token, never from the client
		UserID:  identity.ID,
		Entries: make([]models.Entry, len(req.Entries)),
	}
	for i, e := range req.Entries {
		sim.Entries[i] = models.Entry{
			Age:    e.Age,
			Kind:   models.EntryKind(e.Kind),
			Label:  e.Label,
			Amount: e.Amount,
		}
	}

	if err := s.store.CreateSimulation(c.Request.Context(), sim); err != nil {
		s.logger.Error("Failed to create simulation", "user_id", identity.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	if sim.Entries == nil {
		sim.Entries = []models.Entry{}
	}

	s.logger.Info("Simulation created", "simulation_id", sim.ID, "user_id", identity.ID, "entries", len(sim.Entries))
	c.JSON(http.StatusCreated, sim)
}

// handleGetSimulation returns one owned simulation with entries.
func (s *Server) handleGetSimulation(c *gin.Context) {
	sim, ok := s.ownedSimulation(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sim)
}

// handleSimulationSeries returns the aggregated per-age series of an owned
// simulation.
func (s *Server) handleSimulationSeries(c *gin.Context) {
	sim, ok := s.ownedSimulation(c)
	if !ok {
		return
	}

	series := aggregate.Series(sim.Entries)
	if series == nil {
		series = []aggregate.Point{}
	}

	c.JSON(http.StatusOK, gin.H{
		"simulationId": sim.ID,
		"baseAge":      sim.BaseAge,
		"series":       series,
	})
}

// handleDeleteSimulation removes an owned simulation and its entries.
func (s *Server) handleDeleteSimulation(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrMissingToken.Error()})
		return
	}

	err := s.store.DeleteSimulation(c.Request.Context(), identity.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "simulation not found"})
			return
		}
		s.logger.Error("Failed to delete simulation", "user_id", identity.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ownedSimulation loads the simulation named by the :id path parameter,
// scoped to the authenticated owner. On failure it writes the error response
// and returns false.
func (s *Server) ownedSimulation(c *gin.Context) (*models.Simulation, bool) {
	identity, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrMissingToken.Error()})
		return nil, false
	}

	sim, err := s.store.GetSimulation(c.Request.Context(), identity.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "simulation not found"})
			return nil, false
		}
		s.logger.Error("Failed to get simulation", "user_id", identity.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return nil, false
	}

	if sim.Entries == nil {
		sim.Entries = []models.Entry{}
	}

	return sim, true
}
