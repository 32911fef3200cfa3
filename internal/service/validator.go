package service

import (
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"

	"github.com/aliskhannn/shadowfit-bot/internal/domain/entities"
)

// QuestMatcher resolves free-text input against today's quests.
// Only exact label matches are accepted; fuzzy matching is used for hints.
type QuestMatcher struct {
	maxSuggestions int
}

// NewQuestMatcher creates a QuestMatcher.
func NewQuestMatcher() *QuestMatcher {
	return &QuestMatcher{
		maxSuggestions: 3,
	}
}

// Match returns the quest whose label equals input, or a *TaskNotRecognizedError.
func (m *QuestMatcher) Match(p *entities.UserProgress, input string) (entities.Quest, error) {
	if q, ok := p.FindQuest(input); ok {
		return q, nil
	}

	return entities.Quest{}, &TaskNotRecognizedError{
		Input:       strings.TrimSpace(input),
		Suggestions: m.Suggest(p.Quests, input),
	}
}

// questLabels implements fuzzy.Source over quest labels.
type questLabels []entities.Quest

func (q questLabels) String(i int) string { return strings.ToLower(q[i].Task) }

func (q questLabels) Len() int { return len(q) }

// Suggest ranks quests by how well their labels fuzzy-match the exercise
// words of input. Quantities are ignored because they usually differ.
func (m *QuestMatcher) Suggest(quests []entities.Quest, input string) []string {
	pattern := exerciseWords(input)
	if pattern == "" {
		return nil
	}

	matches := fuzzy.FindFrom(pattern, questLabels(quests))

	out := make([]string, 0, min(len(matches), m.maxSuggestions))
	for _, match := range matches {
		if len(out) == m.maxSuggestions {
			break
		}
		out = append(out, quests[match.Index].Task)
	}
	return out
}

// exerciseWords keeps the alphabetic words of the normalized input.
func exerciseWords(input string) string {
	var words []string
	for _, w := range strings.Fields(entities.NormalizeTask(input)) {
		if strings.IndexFunc(w, unicode.IsLetter) >= 0 && strings.IndexFunc(w, unicode.IsDigit) < 0 {
			words = append(words, w)
		}
	}
	return strings.Join(words, " ")
}
