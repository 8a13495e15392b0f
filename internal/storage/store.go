// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/Kohei100802/28-LifePlanner/internal/models"
)

var (
	// ErrNotFound indicates the requested record does not exist or is not
	// visible to the requesting owner.
	ErrNotFound = errors.New("storage: not found")

	// ErrEmailTaken indicates a user row with the same email already exists.
	ErrEmailTaken = errors.New("storage: email already registered")
)

// Store defines the persistence operations for users and simulations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateUser persists a new user.
	// Returns ErrEmailTaken if the email is already registered.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by exact email match.
	// Returns ErrNotFound if no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns ErrNotFound if no such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// CreateSimulation persists the simulation header and all of its entries
	// as one unit: either everything is stored or nothing is.
	// Missing IDs and timestamps are populated on the passed model.
	CreateSimulation(ctx context.Context, sim *models.Simulation) error

	// ListSimulationsByOwner returns the owner's simulations with entries
	// eagerly attached, ordered by UpdatedAt descending.
	ListSimulationsByOwner(ctx context.Context, ownerID string) ([]models.Simulation, error)

	// GetSimulation retrieves one simulation with entries, scoped to the
	// owner. Returns ErrNotFound if it does not exist or belongs to someone
	// else.
	GetSimulation(ctx context.Context, ownerID, simID string) (*models.Simulation, error)

	// DeleteSimulation removes an owner's simulation and its entries.
	// Returns ErrNotFound if it does not exist or belongs to someone else.
	DeleteSimulation(ctx context.Context, ownerID, simID string) error

	// Close releases any resources held by the store.
	Close() error
}
