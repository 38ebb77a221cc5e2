package models

import (
	"time"

	"github.com/julianstephens/quitnow/internal/constants"
)

type JournalEntry struct {
	ID        string         `json:"id"`
	Mood      constants.Mood `json:"mood"`
	Note      string         `json:"note,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
