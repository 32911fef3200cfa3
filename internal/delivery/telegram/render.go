package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aliskhannn/shadowfit-bot/internal/domain/entities"
	"github.com/aliskhannn/shadowfit-bot/internal/service"
)

const progressBarLength = 20

func renderWelcome(name string) string {
	return lines(
		md(fmt.Sprintf("Welcome %s the Shadow Hunter 🛡️", name)),
		md("Use /quests to begin your transformation."),
	)
}

func renderQuestBoard(board *service.QuestBoard) string {
	var sb strings.Builder

	sb.WriteString(bold(fmt.Sprintf("📅 Today's Quests (Level %d)", board.Level)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("🔥 Streak: %d days", board.Streak)))

	if len(board.Remaining) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(md("🕒 Remaining:"))
		for _, q := range board.Remaining {
			sb.WriteString("\n")
			sb.WriteString(md(fmt.Sprintf("🔘 %s (+%d XP)", q.Task, q.XPReward)))
		}
	}

	if len(board.Completed) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(md("🏁 Completed:"))
		for _, q := range board.Completed {
			sb.WriteString("\n")
			sb.WriteString(md(fmt.Sprintf("✅ %s (+%d XP)", q.Task, q.XPReward)))
		}
	}

	if len(board.Remaining) == 0 {
		sb.WriteString("\n\n")
		sb.WriteString(italic("All quests done. Come back tomorrow, hunter."))
	}

	return sb.String()
}

func renderCompletion(res *service.CompletionResult) string {
	text := md(fmt.Sprintf("✅ \"%s\" logged! (+%d XP)", res.Task, res.XPAwarded))
	if res.LeveledUp() {
		text += "\n\n" + bold(fmt.Sprintf("⬆️ Level up! You reached level %d.", res.Level))
	}
	return text
}

func renderStats(stats *service.Stats) string {
	next := md("👑 Max level reached")
	bar := buildProgressBar(1, 1, progressBarLength)
	if !stats.MaxLevel {
		next = md(fmt.Sprintf("⏭️ %d XP to level %d", stats.XPToNext, stats.Level+1))

		r := entities.LevelRanges()[stats.Level-1]
		bar = buildProgressBar(stats.XP-r.MinXP, r.MaxXP+1-r.MinXP, progressBarLength)
	}

	return lines(
		bold("📊 Stats"),
		"",
		md(fmt.Sprintf("Level: %d", stats.Level)),
		md(fmt.Sprintf("XP: %d", stats.XP)),
		md(bar),
		next,
		md(fmt.Sprintf("🔥 Streak: %d days", stats.Streak)),
		md(fmt.Sprintf("🎯 Quests today: %d / %d", stats.QuestsDone, stats.QuestsTotal)),
	)
}

func renderLevels() string {
	var sb strings.Builder
	sb.WriteString(bold("📈 Levels"))
	for _, r := range entities.LevelRanges() {
		sb.WriteString("\n")
		if r.MaxXP < 0 {
			sb.WriteString(md(fmt.Sprintf("Level %d: %d+ XP", r.Level, r.MinXP)))
			continue
		}
		sb.WriteString(md(fmt.Sprintf("Level %d: %d–%d XP", r.Level, r.MinXP, r.MaxXP)))
	}
	return sb.String()
}

func renderRest(streak int) string {
	return md(fmt.Sprintf("🛌 Rest day used. Streak preserved: %d days.", streak))
}

func renderWeights(entries []entities.WeightEntry) string {
	parts := []string{bold(fmt.Sprintf("📆 Last %d entries", len(entries)))}
	for _, w := range entries {
		parts = append(parts, md(fmt.Sprintf("%s: %s kg", w.Date, formatKg(w.Weight))))
	}
	return lines(parts...)
}

func renderProgress(p *service.WeightProgress) string {
	return lines(
		bold("📉 Progress"),
		md(fmt.Sprintf("Start: %s kg", formatKg(p.Start))),
		md(fmt.Sprintf("Now: %s kg", formatKg(p.Current))),
		md(fmt.Sprintf("Goal: %s kg", formatKg(p.Goal))),
		md(fmt.Sprintf("Lost: %.1f kg", p.Lost)),
		md(fmt.Sprintf("To Goal: %.1f kg", p.ToGoal)),
	)
}

var bmiStatus = map[entities.BMICategory]string{
	entities.BMIUnderweight: "Underweight: You should consider gaining some weight.",
	entities.BMINormal:      "Normal weight: You're in good shape!",
	entities.BMIOverweight:  "Overweight: You should consider losing some weight.",
	entities.BMIObese:       "Obese: You should consider losing weight for better health.",
}

var ageTips = map[entities.AgeGroup]string{
	entities.AgeYouth:  "As a younger individual, your BMI might change as you grow, so it's good to monitor your health regularly.",
	entities.AgeAdult:  "You're in the prime of your life! Focus on staying active and maintaining a healthy lifestyle.",
	entities.AgeMiddle: "As you age, muscle mass naturally decreases, so it's important to stay active and focus on strength training.",
	entities.AgeSenior: "At your age, maintaining a healthy BMI is key to reducing health risks. Keep moving and watch your diet.",
}

func renderBMI(r entities.BMIReport) string {
	parts := []string{
		bold(fmt.Sprintf("📊 Your BMI: %.2f", r.Value)),
		md("Health Status: " + bmiStatus[r.Category]),
	}
	if tip, ok := ageTips[r.AgeGroup]; ok {
		parts = append(parts, "", italic(tip))
	}
	return lines(parts...)
}

func renderSummary(title string, s *service.Summary) string {
	parts := []string{
		bold(title),
		md(fmt.Sprintf("%s → %s", s.From, s.To)),
		"",
		md(fmt.Sprintf("⭐ XP earned: %d", s.XPEarned)),
		md(fmt.Sprintf("📊 Level %d, %d XP total", s.Level, s.TotalXP)),
		md(fmt.Sprintf("🔥 Streak: %d days", s.Streak)),
		md(fmt.Sprintf("📸 Check-ins: %d", s.CheckinCount)),
	}
	if s.WeightStart != nil && s.WeightEnd != nil {
		parts = append(parts, md(fmt.Sprintf("⚖️ Weight change: %s kg → %s kg", formatKg(*s.WeightStart), formatKg(*s.WeightEnd))))
	}
	return lines(parts...)
}

func renderLeaderboard(entries []service.LeaderboardEntry) string {
	parts := []string{bold("🏆 Leaderboard")}
	for _, e := range entries {
		name := e.Username
		if name == "" {
			name = fmt.Sprintf("ID %d", e.UserID)
		}
		parts = append(parts, md(fmt.Sprintf("%d. %s: %d XP (level %d)", e.Rank, name, e.XP, e.Level)))
	}
	return lines(parts...)
}

func renderTimerStarted(t *service.Timer) string {
	return md(fmt.Sprintf("⏱️ Timer started for %s: %d seconds", t.Task, t.Seconds))
}

func renderReminder(r entities.Reminder) string {
	switch r.Kind {
	case entities.ReminderStreakAtRisk:
		return lines(
			bold("🔥 Your streak is at risk!"),
			md(fmt.Sprintf("You have a %d day streak. Open /quests today to keep it alive.", r.Streak)),
		)
	default:
		return lines(
			bold("⚔️ Quests are waiting"),
			md(fmt.Sprintf("%d quests left today. Streak: %d days.", r.Remaining, r.Streak)),
		)
	}
}

func renderNotRecognized(e *service.TaskNotRecognizedError) string {
	text := fmt.Sprintf("❌ Not recognized task: %q", e.Input)
	if len(e.Suggestions) > 0 {
		text += "\n\nDid you mean:\n" + strings.Join(e.Suggestions, "\n")
	}
	return text
}

// buildProgressBar creates a text progress bar.
func buildProgressBar(current, total, length int) string {
	if total <= 0 {
		return "[" + strings.Repeat("░", length) + "]"
	}

	filled := int(float64(current) / float64(total) * float64(length))
	filled = max(0, min(filled, length))

	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", length-filled) + "]"
}

func formatKg(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
