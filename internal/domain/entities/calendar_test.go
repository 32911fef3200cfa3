package entities

import (
	"encoding/json"
	"testing"
	"time"
)

func TestCalendarToday(t *testing.T) {
	ist := time.FixedZone("UTC+05:30", 5*3600+30*60)
	cal := NewCalendar(ist, 4)

	tests := []struct {
		name string
		now  time.Time
		want Date
	}{
		{name: "23:59 local", now: time.Date(2024, 3, 10, 18, 29, 0, 0, time.UTC), want: NewDate(2024, 3, 10)},
		{name: "00:01 local", now: time.Date(2024, 3, 10, 18, 31, 0, 0, time.UTC), want: NewDate(2024, 3, 10)},
		{name: "03:59 local", now: time.Date(2024, 3, 10, 22, 29, 0, 0, time.UTC), want: NewDate(2024, 3, 10)},
		{name: "04:00 local", now: time.Date(2024, 3, 10, 22, 30, 0, 0, time.UTC), want: NewDate(2024, 3, 11)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cal.Today(tt.now); !got.Equal(tt.want) {
				t.Errorf("Today(%s) = %s, want %s", tt.now, got, tt.want)
			}
		})
	}
}

func TestCalendarNextReset(t *testing.T) {
	ist := time.FixedZone("UTC+05:30", 5*3600+30*60)
	cal := NewCalendar(ist, 4)

	now := time.Date(2024, 3, 10, 18, 31, 0, 0, time.UTC)
	want := time.Date(2024, 3, 10, 22, 30, 0, 0, time.UTC)
	if got := cal.NextReset(now); !got.Equal(want) {
		t.Errorf("NextReset() = %s, want %s", got, want)
	}
}

func TestDateArithmetic(t *testing.T) {
	d := NewDate(2024, 2, 28)
	if got := d.AddDays(2); !got.Equal(NewDate(2024, 3, 1)) {
		t.Errorf("AddDays(2) = %s, want 2024-03-01", got)
	}
	if got := NewDate(2024, 3, 1).DaysSince(d); got != 2 {
		t.Errorf("DaysSince() = %d, want 2", got)
	}
}

func TestDateJSON(t *testing.T) {
	type wrapper struct {
		Day  Date `json:"day"`
		Zero Date `json:"zero"`
	}

	b, err := json.Marshal(wrapper{Day: NewDate(2024, 5, 6)})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(b) != `{"day":"2024-05-06","zero":""}` {
		t.Errorf("Marshal() = %s", b)
	}

	var got wrapper
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !got.Day.Equal(NewDate(2024, 5, 6)) || !got.Zero.IsZero() {
		t.Errorf("Unmarshal() = %+v", got)
	}

	if err := json.Unmarshal([]byte(`{"day":"06.05.2024"}`), &got); err == nil {
		t.Error("Unmarshal() accepted a malformed date")
	}
}
