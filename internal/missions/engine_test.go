package missions

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/quitnow/internal/constants"
	"github.com/julianstephens/quitnow/internal/models"
	"github.com/julianstephens/quitnow/internal/storage"
)

// countingProvider records writes so tests can assert when nothing was persisted
type countingProvider struct {
	storage.Provider
	sets int
}

func (c *countingProvider) Set(key string, value []byte) error {
	c.sets++
	return c.Provider.Set(key, value)
}

func setupEngine(t *testing.T, catalogName string) (*Engine, *countingProvider) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "quitnow.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	catalog, err := Lookup(catalogName)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	provider := &countingProvider{Provider: store}
	return NewEngine(provider, catalog), provider
}

var day1 = models.CalendarDate{Year: 2024, Month: time.March, Day: 1}

func TestLoadOrResetFresh(t *testing.T) {
	engine, provider := setupEngine(t, constants.CatalogDefault)

	lg, err := engine.LoadOrReset(day1)
	if err != nil {
		t.Fatalf("LoadOrReset failed: %v", err)
	}
	if lg.LastResetDate != day1 {
		t.Errorf("LastResetDate = %v, want %v", lg.LastResetDate, day1)
	}
	if len(lg.Missions) != 4 {
		t.Fatalf("expected 4 missions, got %d", len(lg.Missions))
	}
	for i, m := range lg.Missions {
		if m.Completed {
			t.Errorf("mission %d should start incomplete", m.ID)
		}
		if m.ID != i+1 {
			t.Errorf("mission %d has id %d, want catalog order", i, m.ID)
		}
	}
	if provider.sets != 2 {
		t.Errorf("expected missions and date to be written, got %d writes", provider.sets)
	}
}

func TestLoadOrResetSameDayIsStable(t *testing.T) {
	engine, _ := setupEngine(t, constants.CatalogDefault)

	first, err := engine.LoadOrReset(day1)
	if err != nil {
		t.Fatalf("LoadOrReset failed: %v", err)
	}
	first, err = engine.Toggle(first, 2)
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}

	second, err := engine.LoadOrReset(day1)
	if err != nil {
		t.Fatalf("second LoadOrReset failed: %v", err)
	}
	third, err := engine.LoadOrReset(day1)
	if err != nil {
		t.Fatalf("third LoadOrReset failed: %v", err)
	}
	if !second.Equal(first) || !third.Equal(second) {
		t.Errorf("same-day loads differ: %+v / %+v / %+v", first, second, third)
	}
}

func TestLoadOrResetNewDay(t *testing.T) {
	engine, _ := setupEngine(t, constants.CatalogDefault)

	lg, err := engine.LoadOrReset(day1)
	if err != nil {
		t.Fatalf("LoadOrReset failed: %v", err)
	}
	for _, m := range lg.Missions {
		if lg, err = engine.Toggle(lg, m.ID); err != nil {
			t.Fatalf("Toggle %d failed: %v", m.ID, err)
		}
	}
	if done, total := Progress(lg); done != total {
		t.Fatalf("expected all missions done, got %d/%d", done, total)
	}

	day2 := models.DateOf(day1.In(time.UTC).AddDate(0, 0, 1))
	next, err := engine.LoadOrReset(day2)
	if err != nil {
		t.Fatalf("LoadOrReset on new day failed: %v", err)
	}
	if next.LastResetDate != day2 {
		t.Errorf("LastResetDate = %v, want %v", next.LastResetDate, day2)
	}
	if done, _ := Progress(next); done != 0 {
		t.Errorf("expected all missions reset, %d still done", done)
	}
}

func TestToggleTwiceIsIdentity(t *testing.T) {
	engine, _ := setupEngine(t, constants.CatalogClassic)

	lg, err := engine.LoadOrReset(day1)
	if err != nil {
		t.Fatalf("LoadOrReset failed: %v", err)
	}

	for _, m := range engine.Catalog().Missions {
		once, err := engine.Toggle(lg, m.ID)
		if err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
		if once.Equal(lg) {
			t.Errorf("toggling %d changed nothing", m.ID)
		}
		twice, err := engine.Toggle(once, m.ID)
		if err != nil {
			t.Fatalf("second Toggle failed: %v", err)
		}
		if !twice.Equal(lg) {
			t.Errorf("toggle twice for %d = %+v, want %+v", m.ID, twice, lg)
		}
	}
}

func TestToggleDoesNotMutateInput(t *testing.T) {
	engine, _ := setupEngine(t, constants.CatalogDefault)

	lg, err := engine.LoadOrReset(day1)
	if err != nil {
		t.Fatalf("LoadOrReset failed: %v", err)
	}
	if _, err := engine.Toggle(lg, 1); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if lg.Missions[0].Completed {
		t.Error("Toggle modified the caller's log")
	}
}

func TestToggleUnknownID(t *testing.T) {
	engine, provider := setupEngine(t, constants.CatalogDefault)

	lg, err := engine.LoadOrReset(day1)
	if err != nil {
		t.Fatalf("LoadOrReset failed: %v", err)
	}
	writes := provider.sets

	got, err := engine.Toggle(lg, 99)
	if err != nil {
		t.Fatalf("unknown id should not be an error, got %v", err)
	}
	if !got.Equal(lg) {
		t.Errorf("unknown id changed the log: %+v", got)
	}
	if provider.sets != writes {
		t.Errorf("unknown id persisted %d writes", provider.sets-writes)
	}
}

func TestLoadOrResetCatalogChange(t *testing.T) {
	engine, provider := setupEngine(t, constants.CatalogDefault)
	if _, err := engine.LoadOrReset(day1); err != nil {
		t.Fatalf("LoadOrReset failed: %v", err)
	}

	classic, err := Lookup(constants.CatalogClassic)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	switched := NewEngine(provider, classic)
	lg, err := switched.LoadOrReset(day1)
	if err != nil {
		t.Fatalf("LoadOrReset failed: %v", err)
	}
	if !classic.Matches(lg.Missions) {
		t.Errorf("expected checklist rebuilt from classic catalog, got %+v", lg.Missions)
	}
}

func TestLoadOrResetCorruptRecord(t *testing.T) {
	engine, provider := setupEngine(t, constants.CatalogDefault)
	if err := provider.Set(constants.KeyMissionsDate, []byte(`"yesterday-ish"`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := provider.Set(constants.KeyMissions, []byte(`[]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	lg, err := engine.LoadOrReset(day1)
	if err != nil {
		t.Fatalf("corrupt record should reset, got %v", err)
	}
	if lg.LastResetDate != day1 || len(lg.Missions) != 4 {
		t.Errorf("expected fresh checklist, got %+v", lg)
	}
}

func TestClear(t *testing.T) {
	engine, provider := setupEngine(t, constants.CatalogDefault)
	if _, err := engine.LoadOrReset(day1); err != nil {
		t.Fatalf("LoadOrReset failed: %v", err)
	}
	if err := engine.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	keys, err := provider.Keys()
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("expected no records after Clear, got %v", keys)
	}
}

func TestLookup(t *testing.T) {
	if _, err := Lookup("nope"); err == nil {
		t.Error("expected error for unknown catalog")
	}
	names := Names()
	if len(names) != 2 || names[0] != constants.CatalogClassic || names[1] != constants.CatalogDefault {
		t.Errorf("Names() = %v", names)
	}
}
