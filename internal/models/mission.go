package models

// Mission is one item of the daily checklist
type Mission struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// MissionLog is the checklist for a single calendar day
type MissionLog struct {
	Missions      []Mission    `json:"missions"`
	LastResetDate CalendarDate `json:"lastResetDate"`
}

// Clone returns a deep copy so callers can hand out logs without sharing the slice.
func (l MissionLog) Clone() MissionLog {
	missions := make([]Mission, len(l.Missions))
	copy(missions, l.Missions)
	return MissionLog{Missions: missions, LastResetDate: l.LastResetDate}
}

// Equal reports whether both logs have the same date and the same missions in the same order.
func (l MissionLog) Equal(other MissionLog) bool {
	if l.LastResetDate != other.LastResetDate || len(l.Missions) != len(other.Missions) {
		return false
	}
	for i := range l.Missions {
		if l.Missions[i] != other.Missions[i] {
			return false
		}
	}
	return true
}

// Find returns the index of the mission with the given id, or -1.
func (l MissionLog) Find(id int) int {
	for i, m := range l.Missions {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// Completed returns how many missions are done and how many there are.
func (l MissionLog) Completed() (done, total int) {
	for _, m := range l.Missions {
		if m.Completed {
			done++
		}
	}
	return done, len(l.Missions)
}
