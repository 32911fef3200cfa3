package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/shadowfit-bot/internal/service"
)

// buildQuestKeyboard builds one button per remaining quest plus a refresh row.
func buildQuestKeyboard(board *service.QuestBoard) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(board.Remaining)+1)
	for _, q := range board.Remaining {
		data, ok := buildLogCallback(q.Task)
		if !ok {
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ "+q.Task, data),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔄 Refresh", buildQuestsCallback()),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildResetKeyboard builds the confirmation keyboard for /reset.
func buildResetKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧹 Yes, reset", buildResetConfirmCallback()),
			tgbotapi.NewInlineKeyboardButtonData("« Cancel", buildResetCancelCallback()),
		),
	)
}

// buildReminderKeyboard builds keyboard for reminder messages.
func buildReminderKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 Open quests", buildQuestsCallback()),
		),
	)
}
