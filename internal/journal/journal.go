// Package journal stores mood entries.
package journal

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/julianstephens/quitnow/internal/constants"
	"github.com/julianstephens/quitnow/internal/logger"
	"github.com/julianstephens/quitnow/internal/models"
	"github.com/julianstephens/quitnow/internal/storage"
)

var ErrInvalidMood = errors.New("invalid mood")

type Journal struct {
	provider storage.Provider
	log      *log.Logger
}

func New(provider storage.Provider) *Journal {
	return &Journal{
		provider: provider,
		log:      logger.Component("journal"),
	}
}

// ParseMood accepts any of the known moods, case-insensitively.
func ParseMood(s string) (constants.Mood, error) {
	m := constants.Mood(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(constants.Moods, m) {
		return "", fmt.Errorf("%w %q (expected one of %v)", ErrInvalidMood, s, constants.Moods)
	}
	return m, nil
}

// Add appends an entry and returns it.
func (j *Journal) Add(mood constants.Mood, note string, now time.Time) (models.JournalEntry, error) {
	if !slices.Contains(constants.Moods, mood) {
		return models.JournalEntry{}, fmt.Errorf("%w %q", ErrInvalidMood, mood)
	}

	entries, err := j.load()
	if err != nil {
		return models.JournalEntry{}, err
	}

	entry := models.JournalEntry{
		ID:        uuid.New().String(),
		Mood:      mood,
		Note:      strings.TrimSpace(note),
		CreatedAt: now,
	}
	entries = append(entries, entry)
	if err := storage.SetJSON(j.provider, constants.KeyJournal, entries); err != nil {
		return models.JournalEntry{}, fmt.Errorf("failed to save journal: %w", err)
	}
	j.log.Debug("Journal entry added", "id", entry.ID, "mood", mood)
	return entry, nil
}

// List returns all entries, newest first.
func (j *Journal) List() ([]models.JournalEntry, error) {
	entries, err := j.load()
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(entries, func(a, b models.JournalEntry) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return entries, nil
}

func (j *Journal) load() ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	err := storage.GetJSON(j.provider, constants.KeyJournal, &entries)
	switch {
	case err == nil:
		return entries, nil
	case errors.Is(err, storage.ErrNotFound):
		return nil, nil
	case storage.IsAbsent(err):
		j.log.Warn("Discarding unreadable journal", "error", err)
		return nil, nil
	default:
		return nil, fmt.Errorf("failed to load journal: %w", err)
	}
}
