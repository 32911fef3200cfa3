package storage

import (
	"sync"
	"time"
)

// ReminderMessage identifies the last reminder posted to a chat.
type ReminderMessage struct {
	ChatID    int64
	MessageID int
	SentAt    time.Time
}

// ReminderStorage remembers the last reminder per user so a new nudge can
// replace the previous one instead of piling up in the chat.
type ReminderStorage struct {
	mu       sync.Mutex
	messages map[int64]ReminderMessage
}

func NewReminderStorage() *ReminderStorage {
	return &ReminderStorage{
		messages: make(map[int64]ReminderMessage),
	}
}

// UpsertAndGetPrev stores the new reminder and returns the one it replaced.
func (s *ReminderStorage) UpsertAndGetPrev(chatID int64, messageID int, sentAt time.Time) (prev ReminderMessage, hadPrev bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, hadPrev = s.messages[chatID]
	s.messages[chatID] = ReminderMessage{
		ChatID:    chatID,
		MessageID: messageID,
		SentAt:    sentAt,
	}
	return prev, hadPrev
}

// Forget drops the remembered reminder, e.g. after the user reset their progress.
func (s *ReminderStorage) Forget(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.messages, chatID)
}
