package entities

import "testing"

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{xp: 0, want: 1},
		{xp: 999, want: 1},
		{xp: 1000, want: 2},
		{xp: 3499, want: 2},
		{xp: 3500, want: 3},
		{xp: 51999, want: 9},
		{xp: 52000, want: 10},
		{xp: 1_000_000, want: 10},
	}

	for _, tt := range tests {
		if got := LevelForXP(tt.xp); got != tt.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestLevelForXP_MonotonicAndBounded(t *testing.T) {
	prev := LevelForXP(0)
	for xp := 0; xp <= 60000; xp += 7 {
		got := LevelForXP(xp)
		if got < prev {
			t.Fatalf("LevelForXP(%d) = %d, decreased from %d", xp, got, prev)
		}
		if got < 1 || got > MaxLevel {
			t.Fatalf("LevelForXP(%d) = %d, out of [1,%d]", xp, got, MaxLevel)
		}
		prev = got
	}
}

func TestXPToNextLevel(t *testing.T) {
	missing, ok := XPToNextLevel(900)
	if !ok || missing != 100 {
		t.Errorf("XPToNextLevel(900) = %d, %v, want 100, true", missing, ok)
	}

	if _, ok := XPToNextLevel(52000); ok {
		t.Error("XPToNextLevel(52000) reported a next level past the maximum")
	}
}

func TestLevelRanges(t *testing.T) {
	ranges := LevelRanges()
	if len(ranges) != MaxLevel {
		t.Fatalf("LevelRanges() returned %d ranges, want %d", len(ranges), MaxLevel)
	}

	first := ranges[0]
	if first.Level != 1 || first.MinXP != 0 || first.MaxXP != 999 {
		t.Errorf("first range = %+v, want {1 0 999}", first)
	}

	last := ranges[len(ranges)-1]
	if last.Level != 10 || last.MinXP != 52000 || last.MaxXP != -1 {
		t.Errorf("last range = %+v, want {10 52000 -1}", last)
	}
}
