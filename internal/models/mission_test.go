package models

import (
	"testing"
	"time"
)

func sampleLog() MissionLog {
	return MissionLog{
		Missions: []Mission{
			{ID: 1, Title: "one", Completed: true},
			{ID: 2, Title: "two"},
		},
		LastResetDate: CalendarDate{2026, time.October, 19},
	}
}

func TestMissionLog_Clone(t *testing.T) {
	log := sampleLog()
	clone := log.Clone()
	clone.Missions[0].Completed = false

	if !log.Missions[0].Completed {
		t.Error("mutating the clone changed the original")
	}
	if log.Equal(clone) {
		t.Error("expected logs to differ after mutation")
	}
}

func TestMissionLog_Find(t *testing.T) {
	log := sampleLog()
	if got := log.Find(2); got != 1 {
		t.Errorf("Find(2) = %d, want 1", got)
	}
	if got := log.Find(99); got != -1 {
		t.Errorf("Find(99) = %d, want -1", got)
	}
}

func TestMissionLog_Completed(t *testing.T) {
	done, total := sampleLog().Completed()
	if done != 1 || total != 2 {
		t.Errorf("Completed() = (%d, %d), want (1, 2)", done, total)
	}
}

func TestMissionLog_EqualChecksDate(t *testing.T) {
	a := sampleLog()
	b := sampleLog()
	if !a.Equal(b) {
		t.Fatal("expected identical logs to be equal")
	}
	b.LastResetDate = DateOf(b.LastResetDate.In(time.UTC).AddDate(0, 0, 1))
	if a.Equal(b) {
		t.Error("expected logs with different dates to differ")
	}
}
