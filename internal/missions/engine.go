// Package missions manages the day-scoped mission checklist.
package missions

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/julianstephens/quitnow/internal/constants"
	"github.com/julianstephens/quitnow/internal/logger"
	"github.com/julianstephens/quitnow/internal/models"
	"github.com/julianstephens/quitnow/internal/storage"
)

// Engine loads, resets and toggles the daily checklist. The checklist is
// stored as two records: the missions and the date they were last reset.
type Engine struct {
	provider storage.Provider
	catalog  Catalog
	log      *log.Logger
}

func NewEngine(provider storage.Provider, catalog Catalog) *Engine {
	return &Engine{
		provider: provider,
		catalog:  catalog,
		log:      logger.Component("missions"),
	}
}

func (e *Engine) Catalog() Catalog {
	return e.catalog
}

// LoadOrReset returns today's checklist. A stored checklist from another
// day, from another catalog, or that cannot be read is replaced by a fresh
// one dated today, which is persisted before returning.
func (e *Engine) LoadOrReset(today models.CalendarDate) (models.MissionLog, error) {
	stored, ok, err := e.load()
	if err != nil {
		return models.MissionLog{}, err
	}
	if ok && stored.LastResetDate == today && e.catalog.Matches(stored.Missions) {
		return stored, nil
	}

	fresh := models.MissionLog{
		Missions:      e.catalog.Fresh(),
		LastResetDate: today,
	}
	if err := e.save(fresh, true); err != nil {
		return models.MissionLog{}, err
	}
	e.log.Info("Daily missions reset", "date", today, "catalog", e.catalog.Name)
	return fresh, nil
}

// Toggle flips the mission with the given id and persists the result.
// An id that is not in the checklist leaves it unchanged and writes nothing.
func (e *Engine) Toggle(current models.MissionLog, id int) (models.MissionLog, error) {
	idx := current.Find(id)
	if idx < 0 {
		e.log.Debug("Ignoring toggle for unknown mission", "id", id)
		return current, nil
	}

	next := current.Clone()
	next.Missions[idx].Completed = !next.Missions[idx].Completed
	if err := e.save(next, false); err != nil {
		return current, err
	}
	return next, nil
}

// Clear removes the stored checklist and its date.
func (e *Engine) Clear() error {
	for _, key := range []string{constants.KeyMissions, constants.KeyMissionsDate} {
		if err := e.provider.Remove(key); err != nil {
			return fmt.Errorf("failed to clear missions: %w", err)
		}
	}
	return nil
}

func (e *Engine) load() (models.MissionLog, bool, error) {
	var lg models.MissionLog

	if err := storage.GetJSON(e.provider, constants.KeyMissions, &lg.Missions); err != nil {
		return absent(e.log, "missions", err)
	}
	if err := storage.GetJSON(e.provider, constants.KeyMissionsDate, &lg.LastResetDate); err != nil {
		return absent(e.log, "missions date", err)
	}
	return lg, true, nil
}

func absent(l *log.Logger, what string, err error) (models.MissionLog, bool, error) {
	if errors.Is(err, storage.ErrNotFound) {
		return models.MissionLog{}, false, nil
	}
	if storage.IsAbsent(err) {
		l.Warn("Discarding unreadable record", "record", what, "error", err)
		return models.MissionLog{}, false, nil
	}
	return models.MissionLog{}, false, fmt.Errorf("failed to load %s: %w", what, err)
}

func (e *Engine) save(lg models.MissionLog, withDate bool) error {
	if err := storage.SetJSON(e.provider, constants.KeyMissions, lg.Missions); err != nil {
		return fmt.Errorf("failed to save missions: %w", err)
	}
	if !withDate {
		return nil
	}
	if err := storage.SetJSON(e.provider, constants.KeyMissionsDate, lg.LastResetDate); err != nil {
		return fmt.Errorf("failed to save missions date: %w", err)
	}
	return nil
}

// Progress returns how many missions are done out of the total.
func Progress(lg models.MissionLog) (done, total int) {
	return lg.Completed()
}
