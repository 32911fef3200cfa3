package storage

import (
	"testing"
	"time"
)

func TestReminderStorage(t *testing.T) {
	s := NewReminderStorage()

	if _, had := s.UpsertAndGetPrev(1, 100, time.Time{}); had {
		t.Fatal("first UpsertAndGetPrev() reported a previous reminder")
	}
	prev, had := s.UpsertAndGetPrev(1, 101, time.Time{})
	if !had || prev.MessageID != 100 {
		t.Errorf("UpsertAndGetPrev() = %+v, %v, want message 100", prev, had)
	}

	s.Forget(1)
	if _, had := s.UpsertAndGetPrev(1, 102, time.Time{}); had {
		t.Error("Forget() did not drop the reminder")
	}
}
