package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Kohei100802/28-LifePlanner/internal/models"
	"github.com/Kohei100802/28-LifePlanner/internal/storage"
)

// CreateSimulation persists a simulation header and all of its entries in a
// single transaction. A failure on any entry rolls back the whole write.
func (s *SQLiteStore) CreateSimulation(ctx context.Context, sim *models.Simulation) error {
	// Generate IDs and timestamps if not set
	if sim.ID == "" {
		sim.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if sim.CreatedAt == 0 {
		sim.CreatedAt = now
	}
	if sim.UpdatedAt == 0 {
		sim.UpdatedAt = now
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO simulations (id, title, base_age, user_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		sim.ID, sim.Title, sim.BaseAge, sim.UserID, sim.CreatedAt, sim.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert simulation: %w", err)
	}

	// Insert entries, preserving submission order via position
	for i := range sim.Entries {
		entry := &sim.Entries[i]
		if entry.ID == "" {
			entry.ID = uuid.New().String()
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO entries (id, simulation_id, position, age, kind, label, amount) VALUES (?, ?, ?, ?, ?, ?, ?)",
			entry.ID, sim.ID, i, entry.Age, string(entry.Kind), entry.Label, entry.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListSimulationsByOwner returns the owner's simulations, most recently
// updated first, each with its entries attached in insertion order.
func (s *SQLiteStore) ListSimulationsByOwner(ctx context.Context, ownerID string) ([]models.Simulation, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, base_age, user_id, created_at, updated_at FROM simulations WHERE user_id = ? ORDER BY updated_at DESC, id",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list simulations: %w", err)
	}
	defer rows.Close()

	var sims []models.Simulation
	for rows.Next() {
		var sim models.Simulation
		if err := rows.Scan(&sim.ID, &sim.Title, &sim.BaseAge, &sim.UserID, &sim.CreatedAt, &sim.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan simulation: %w", err)
		}
		sims = append(sims, sim)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate simulations: %w", err)
	}

	for i := range sims {
		entries, err := s.getEntries(ctx, sims[i].ID)
		if err != nil {
			return nil, err
		}
		sims[i].Entries = entries
	}

	return sims, nil
}

// GetSimulation retrieves one simulation with entries, scoped to the owner.
func (s *SQLiteStore) GetSimulation(ctx context.Context, ownerID, simID string) (*models.Simulation, error) {
	sim := &models.Simulation{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, base_age, user_id, created_at, updated_at FROM simulations WHERE id = ? AND user_id = ?",
		simID, ownerID,
	).Scan(&sim.ID, &sim.Title, &sim.BaseAge, &sim.UserID, &sim.CreatedAt, &sim.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get simulation: %w", err)
	}

	entries, err := s.getEntries(ctx, sim.ID)
	if err != nil {
		return nil, err
	}
	sim.Entries = entries

	return sim, nil
}

// DeleteSimulation removes an owner's simulation; entries cascade.
func (s *SQLiteStore) DeleteSimulation(ctx context.Context, ownerID, simID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM simulations WHERE id = ? AND user_id = ?",
		simID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete simulation: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// getEntries loads a simulation's entries in insertion order.
func (s *SQLiteStore) getEntries(ctx context.Context, simID string) ([]models.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, age, kind, label, amount FROM entries WHERE simulation_id = ? ORDER BY position",
		simID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get entries: %w", err)
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		var entry models.Entry
		var kind string
		if err := rows.Scan(&entry.ID, &entry.Age, &kind, &entry.Label, &entry.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entry.Kind = models.EntryKind(kind)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	return entries, nil
}
