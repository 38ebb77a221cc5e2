// Package profile persists the single user profile.
package profile

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/julianstephens/quitnow/internal/constants"
	"github.com/julianstephens/quitnow/internal/logger"
	"github.com/julianstephens/quitnow/internal/models"
	"github.com/julianstephens/quitnow/internal/storage"
)

type Store struct {
	provider storage.Provider
	log      *log.Logger
}

func NewStore(provider storage.Provider) *Store {
	return &Store{
		provider: provider,
		log:      logger.Component("profile"),
	}
}

// Load returns the saved profile, or nil when none is saved.
// An unreadable record is logged and treated as missing.
func (s *Store) Load() (*models.Profile, error) {
	var p models.Profile
	err := storage.GetJSON(s.provider, constants.KeyProfile, &p)
	switch {
	case err == nil:
		return &p, nil
	case errors.Is(err, storage.ErrNotFound):
		return nil, nil
	case storage.IsAbsent(err):
		s.log.Warn("Discarding unreadable profile", "error", err)
		return nil, nil
	default:
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
}

func (s *Store) Save(p models.Profile) error {
	if err := storage.SetJSON(s.provider, constants.KeyProfile, p); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	s.log.Debug("Profile saved", "started", p.HasQuit())
	return nil
}

func (s *Store) Reset() error {
	if err := s.provider.Remove(constants.KeyProfile); err != nil {
		return fmt.Errorf("failed to reset profile: %w", err)
	}
	return nil
}
