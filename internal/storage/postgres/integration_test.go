package postgres

import (
	"errors"
	"os"
	"testing"

	"github.com/julianstephens/quitnow/internal/constants"
	"github.com/julianstephens/quitnow/internal/storage"
)

// TestStore_Integration runs against a real database.
// Set POSTGRES_TEST_URL to run it, e.g.
// POSTGRES_TEST_URL="postgres://quitnow_user@localhost:5432/quitnow_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	store := New(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	t.Cleanup(func() {
		for _, key := range []string{constants.KeyProfile, constants.KeyMissions} {
			_ = store.Remove(key)
		}
	})

	t.Run("SetAndGet", func(t *testing.T) {
		value := []byte(`{"cigarettesPerDay":20,"yearsSmoking":5,"packPrice":10}`)
		if err := store.Set(constants.KeyProfile, value); err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		var profile struct {
			CigarettesPerDay int `json:"cigarettesPerDay"`
		}
		if err := storage.GetJSON(store, constants.KeyProfile, &profile); err != nil {
			t.Fatalf("GetJSON failed: %v", err)
		}
		if profile.CigarettesPerDay != 20 {
			t.Errorf("expected 20 cigarettes per day, got %d", profile.CigarettesPerDay)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		if err := store.Set(constants.KeyMissions, []byte(`{"missions":[]}`)); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := store.Set(constants.KeyMissions, []byte(`{"missions":[{"id":1}]}`)); err != nil {
			t.Fatalf("second Set failed: %v", err)
		}
		keys, err := store.Keys()
		if err != nil {
			t.Fatalf("Keys failed: %v", err)
		}
		count := 0
		for _, k := range keys {
			if k == constants.KeyMissions {
				count++
			}
		}
		if count != 1 {
			t.Errorf("expected a single missions record, found %d", count)
		}
	})

	t.Run("Remove", func(t *testing.T) {
		if err := store.Remove(constants.KeyProfile); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		if _, err := store.Get(constants.KeyProfile); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound after remove, got %v", err)
		}
		if err := store.Remove(constants.KeyProfile); err != nil {
			t.Errorf("removing a missing key should succeed, got %v", err)
		}
	})

	t.Run("Reload", func(t *testing.T) {
		reloaded := New(connStr)
		if err := reloaded.Load(); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		defer reloaded.Close()
		if _, err := reloaded.Keys(); err != nil {
			t.Errorf("Keys after reload failed: %v", err)
		}
	})
}
