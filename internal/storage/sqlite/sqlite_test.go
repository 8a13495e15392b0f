package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Kohei100802/28-LifePlanner/internal/models"
	"github.com/Kohei100802/28-LifePlanner/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "lifeplanner-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSQLiteStoreUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser and GetUserByEmail roundtrip", func(t *testing.T) {
		user := models.NewUser("taro@example.com", "Taro", "hashed-password")
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		got, err := store.GetUserByEmail(ctx, "taro@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("ID mismatch: got %s, want %s", got.ID, user.ID)
		}
		if got.Name != "Taro" {
			t.Errorf("Name mismatch: got %s, want Taro", got.Name)
		}
		if got.PasswordHash != "hashed-password" {
			t.Errorf("PasswordHash mismatch: got %s", got.PasswordHash)
		}
	})

	t.Run("CreateUser with duplicate email returns ErrEmailTaken", func(t *testing.T) {
		first := models.NewUser("dup@example.com", "First", "hash1")
		if err := store.CreateUser(ctx, first); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		second := models.NewUser("dup@example.com", "Second", "hash2")
		err := store.CreateUser(ctx, second)
		if !errors.Is(err, storage.ErrEmailTaken) {
			t.Fatalf("Expected ErrEmailTaken, got %v", err)
		}

		// The first row must be intact
		got, err := store.GetUserByEmail(ctx, "dup@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got.Name != "First" {
			t.Errorf("Expected original user to survive, got %s", got.Name)
		}
	})

	t.Run("GetUserByEmail for unknown email returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetUserByEmail(ctx, "nobody@example.com")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("GetUserByID retrieves created user", func(t *testing.T) {
		user := models.NewUser("byid@example.com", "ById", "hash")
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		got, err := store.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if got.Email != user.Email {
			t.Errorf("Email mismatch: got %s, want %s", got.Email, user.Email)
		}
	})
}

func TestSQLiteStoreSimulations(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	owner := models.NewUser("owner@example.com", "Owner", "hash")
	if err := store.CreateUser(ctx, owner); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	other := models.NewUser("other@example.com", "Other", "hash")
	if err := store.CreateUser(ctx, other); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	t.Run("CreateSimulation generates IDs and persists entries in order", func(t *testing.T) {
		sim := &models.Simulation{
			Title:   "My Plan",
			BaseAge: 20,
			UserID:  owner.ID,
			Entries: []models.Entry{
				{Age: 25, Kind: models.KindIncome, Label: "salary", Amount: 400},
				{Age: 25, Kind: models.KindExpense, Label: "rent", Amount: 120},
				{Age: 30, Kind: models.KindIncome, Label: "salary", Amount: 450},
			},
		}

		if err := store.CreateSimulation(ctx, sim); err != nil {
			t.Fatalf("CreateSimulation failed: %v", err)
		}
		if sim.ID == "" {
			t.Error("Expected simulation ID to be generated")
		}
		if sim.UpdatedAt == 0 {
			t.Error("Expected UpdatedAt to be set")
		}

		got, err := store.GetSimulation(ctx, owner.ID, sim.ID)
		if err != nil {
			t.Fatalf("GetSimulation failed: %v", err)
		}
		if got.Title != "My Plan" || got.BaseAge != 20 {
			t.Errorf("Header mismatch: got %+v", got)
		}
		if len(got.Entries) != 3 {
			t.Fatalf("Entries count mismatch: got %d, want 3", len(got.Entries))
		}
		wantLabels := []string{"salary", "rent", "salary"}
		for i, e := range got.Entries {
			if e.Label != wantLabels[i] {
				t.Errorf("Entry %d label = %s, want %s (insertion order lost)", i, e.Label, wantLabels[i])
			}
		}
	})

	t.Run("CreateSimulation rejects invalid kind atomically", func(t *testing.T) {
		sim := &models.Simulation{
			Title:   "Broken Plan",
			BaseAge: 20,
			UserID:  owner.ID,
			Entries: []models.Entry{
				{Age: 25, Kind: models.KindIncome, Label: "salary", Amount: 400},
				{Age: 26, Kind: models.EntryKind("loan"), Label: "bad", Amount: 10},
			},
		}

		if err := store.CreateSimulation(ctx, sim); err == nil {
			t.Fatal("Expected error for invalid kind, got nil")
		}

		// No header row must survive the rolled-back transaction
		if _, err := store.GetSimulation(ctx, owner.ID, sim.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("Expected ErrNotFound after rollback, got %v", err)
		}
	})

	t.Run("ListSimulationsByOwner orders by recency and scopes to owner", func(t *testing.T) {
		older := &models.Simulation{Title: "Older", BaseAge: 20, UserID: owner.ID, UpdatedAt: 1000}
		newer := &models.Simulation{Title: "Newer", BaseAge: 20, UserID: owner.ID, UpdatedAt: 2000}
		foreign := &models.Simulation{Title: "Foreign", BaseAge: 20, UserID: other.ID, UpdatedAt: 3000}
		for _, sim := range []*models.Simulation{older, newer, foreign} {
			if err := store.CreateSimulation(ctx, sim); err != nil {
				t.Fatalf("CreateSimulation failed: %v", err)
			}
		}

		sims, err := store.ListSimulationsByOwner(ctx, owner.ID)
		if err != nil {
			t.Fatalf("ListSimulationsByOwner failed: %v", err)
		}

		var titles []string
		for _, s := range sims {
			if s.UserID != owner.ID {
				t.Errorf("Simulation %s belongs to %s, not the owner", s.ID, s.UserID)
			}
			titles = append(titles, s.Title)
		}
		idxNewer, idxOlder := -1, -1
		for i, title := range titles {
			switch title {
			case "Newer":
				idxNewer = i
			case "Older":
				idxOlder = i
			case "Foreign":
				t.Error("Foreign simulation leaked into owner listing")
			}
		}
		if idxNewer == -1 || idxOlder == -1 || idxNewer > idxOlder {
			t.Errorf("Expected Newer before Older, got order %v", titles)
		}
	})

	t.Run("GetSimulation does not cross owners", func(t *testing.T) {
		sim := &models.Simulation{Title: "Private", BaseAge: 30, UserID: owner.ID}
		if err := store.CreateSimulation(ctx, sim); err != nil {
			t.Fatalf("CreateSimulation failed: %v", err)
		}

		if _, err := store.GetSimulation(ctx, other.ID, sim.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("Expected ErrNotFound for foreign owner, got %v", err)
		}
	})

	t.Run("DeleteSimulation removes owned simulation only", func(t *testing.T) {
		sim := &models.Simulation{
			Title:   "Doomed",
			BaseAge: 22,
			UserID:  owner.ID,
			Entries: []models.Entry{{Age: 23, Kind: models.KindExpense, Label: "rent", Amount: 80}},
		}
		if err := store.CreateSimulation(ctx, sim); err != nil {
			t.Fatalf("CreateSimulation failed: %v", err)
		}

		if err := store.DeleteSimulation(ctx, other.ID, sim.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("Expected ErrNotFound for foreign delete, got %v", err)
		}

		if err := store.DeleteSimulation(ctx, owner.ID, sim.ID); err != nil {
			t.Fatalf("DeleteSimulation failed: %v", err)
		}
		if _, err := store.GetSimulation(ctx, owner.ID, sim.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("Expected ErrNotFound after delete, got %v", err)
		}
	})
}
