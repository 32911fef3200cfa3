// messages.go contains message templates and formatting helpers for Telegram.

package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Error and usage messages. They are sent as plain text.
const (
	msgInternalError     = "Something went wrong. Please try again later."
	msgNotRecognized     = "❌ Not recognized task."
	msgAlreadyCompleted  = "❌ Already completed."
	msgRestAlreadyUsed   = "❌ You already used your rest day."
	msgInvalidNumber     = "❌ Please provide a valid positive number."
	msgMissingWeightData = "ℹ️ Missing weight logs or goal. Use /weight and /targetweight first."
	msgTimerLimit        = "⏱️ Too many timers are running. Wait for one to finish or use /timer stop."
	msgUnknownCommand    = "Unknown command. Use /help to see what I can do."
	msgUnknownInput      = "Use /log <quest> to log a quest, or /quests to see today's list."
	msgNothingToReset    = "⚠️ You don't have any progress to reset."
	msgResetDone         = "🧹 Your progress has been completely reset. Use /start to begin again."
	msgResetCancelled    = "👌 Reset cancelled. Your progress is safe."
	msgResetConfirm      = "⚠️ This deletes your XP, streak, quests and weight log. Are you sure?"
	msgNoWeightLogs      = "📉 No weight logs yet."
	msgCheckinSaved      = "📸 Check-in saved!"
	msgLeaderboardEmpty  = "🏆 Nobody is on the leaderboard yet."
	msgNoTimers          = "⏱️ No timers are running."

	msgUsageLog          = "Usage: /log <quest>, for example /log Pushups 17 reps"
	msgUsageWeight       = "Usage: /weight <kg>, for example /weight 72.5"
	msgUsageTargetWeight = "Usage: /targetweight <kg>, for example /targetweight 68"
	msgUsageBMI          = "❌ Please provide valid weight (kg) and height (meters). Example: /bmi 70 1.75 25"
	msgUsageTimer        = "Usage: /timer <task> <seconds>, for example /timer plank 60. Use /timer stop to cancel."
)

const msgHelp = `🛡️ ShadowFit commands

/quests - today's quests
/log <quest> - log a completed quest
/stats - level, XP and streak
/levels - XP needed for every level
/rest - use today's rest day
/weight <kg> - log your weight
/weightlog - last 7 weight entries
/targetweight <kg> - set your goal weight
/progress - weight progress towards the goal
/bmi <kg> <m> [age] - body mass index
/weekly, /monthly - activity summary
/leaderboard - top hunters by XP
/timer <task> <seconds> - workout timer
/reset - delete all progress

Send a photo to save a workout check-in.`

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// lines joins already escaped lines.
func lines(parts ...string) string {
	return strings.Join(parts, "\n")
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}
