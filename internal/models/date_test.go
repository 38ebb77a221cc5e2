package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	// 01:30 UTC is still the previous day three hours west
	instant := time.Date(2026, 3, 10, 1, 30, 0, 0, time.UTC)

	if got := DateOf(instant); got != (CalendarDate{2026, time.March, 10}) {
		t.Errorf("DateOf(UTC) = %v, want 2026-03-10", got)
	}
	if got := DateOf(instant.In(loc)); got != (CalendarDate{2026, time.March, 9}) {
		t.Errorf("DateOf(UTC-3) = %v, want 2026-03-09", got)
	}
}

func TestCalendarDate_EqualityIgnoresTimeOfDay(t *testing.T) {
	morning := DateOf(time.Date(2026, 1, 5, 6, 0, 0, 0, time.Local))
	night := DateOf(time.Date(2026, 1, 5, 23, 59, 59, 0, time.Local))
	if morning != night {
		t.Errorf("expected %v == %v", morning, night)
	}
	if morning == DateOf(time.Date(2026, 1, 6, 6, 0, 0, 0, time.Local)) {
		t.Error("expected different days to compare unequal")
	}
}

func TestParseCalendarDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    CalendarDate
		wantErr bool
	}{
		{name: "valid", input: "2026-10-19", want: CalendarDate{2026, time.October, 19}},
		{name: "leap day", input: "2028-02-29", want: CalendarDate{2028, time.February, 29}},
		{name: "toString format rejected", input: "Mon Oct 19 2026", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCalendarDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCalendarDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseCalendarDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCalendarDate_JSON(t *testing.T) {
	d := CalendarDate{2026, time.December, 31}
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2026-12-31"` {
		t.Errorf("marshal = %s, want \"2026-12-31\"", data)
	}

	var back CalendarDate
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != d {
		t.Errorf("unmarshal = %v, want %v", back, d)
	}

	if err := json.Unmarshal([]byte(`"garbage"`), &back); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestCalendarDate_In(t *testing.T) {
	d := CalendarDate{2026, time.December, 31}
	if got := DateOf(d.In(time.UTC).AddDate(0, 0, 1)); got != (CalendarDate{2027, time.January, 1}) {
		t.Errorf("day after %v = %v, want 2027-01-01", d, got)
	}
}
