package telegram

import (
	"strings"
	"testing"

	"github.com/aliskhannn/shadowfit-bot/internal/domain/entities"
	"github.com/aliskhannn/shadowfit-bot/internal/service"
)

func TestBuildProgressBar(t *testing.T) {
	tests := []struct {
		current, total int
		want           string
	}{
		{current: 0, total: 10, want: "[░░░░░]"},
		{current: 5, total: 10, want: "[██░░░]"},
		{current: 10, total: 10, want: "[█████]"},
		{current: 15, total: 10, want: "[█████]"},
		{current: 1, total: 0, want: "[░░░░░]"},
	}

	for _, tt := range tests {
		if got := buildProgressBar(tt.current, tt.total, 5); got != tt.want {
			t.Errorf("buildProgressBar(%d, %d) = %q, want %q", tt.current, tt.total, got, tt.want)
		}
	}
}

func TestRenderStats(t *testing.T) {
	got := renderStats(&service.Stats{Level: 2, XP: 2250, Streak: 3, XPToNext: 1250, QuestsDone: 1, QuestsTotal: 9})

	for _, want := range []string{"Level: 2", "XP: 2250", "1250 XP to level 3", "[██████████░░░░░░░░░░]"} {
		if !strings.Contains(got, want) {
			t.Errorf("renderStats() = %q, want to contain %q", got, want)
		}
	}

	got = renderStats(&service.Stats{Level: entities.MaxLevel, XP: 60000, MaxLevel: true})
	if !strings.Contains(got, "Max level reached") {
		t.Errorf("renderStats() at max level = %q", got)
	}
}

func TestRenderQuestBoard(t *testing.T) {
	quests := entities.GenerateQuests(1, 1)
	board := &service.QuestBoard{Level: 1, Streak: 1, Remaining: quests[1:], Completed: quests[:1]}

	got := renderQuestBoard(board)

	if !strings.Contains(got, `✅ Pushups 17 reps \(\+7 XP\)`) {
		t.Errorf("renderQuestBoard() = %q, want completed pushups", got)
	}
	if !strings.Contains(got, `🔘 Running 200 meters \(\+22 XP\)`) {
		t.Errorf("renderQuestBoard() = %q, want remaining running", got)
	}

	board = &service.QuestBoard{Level: 1, Completed: quests}
	if got := renderQuestBoard(board); !strings.Contains(got, "All quests done") {
		t.Errorf("renderQuestBoard() with nothing left = %q", got)
	}
}

func TestRenderLeaderboard_FallbackName(t *testing.T) {
	got := renderLeaderboard([]service.LeaderboardEntry{{Rank: 1, UserID: 42, XP: 10, Level: 1}})
	if !strings.Contains(got, "ID 42: 10 XP") {
		t.Errorf("renderLeaderboard() = %q, want ID fallback", got)
	}
}

func TestRenderBMI(t *testing.T) {
	report, ok := entities.ComputeBMI(80, 1.7, 45)
	if !ok {
		t.Fatal("ComputeBMI() ok = false")
	}

	got := renderBMI(report)
	if !strings.Contains(got, "Overweight") {
		t.Errorf("renderBMI() = %q, want overweight status", got)
	}
	if !strings.Contains(got, "strength training") {
		t.Errorf("renderBMI() = %q, want middle age tip", got)
	}
}
