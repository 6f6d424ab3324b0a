package quiz

import "strings"

// IsDuplicate reports whether any existing item has the same question text
// once surrounding whitespace is trimmed. The comparison is case-sensitive
// and exact.
func IsDuplicate(text string, existing []QuizItem) bool {
	key := strings.TrimSpace(text)
	for _, it := range existing {
		if strings.TrimSpace(it.Question) == key {
			return true
		}
	}
	return false
}

// QuestionKey is the normalized form used for duplicate detection.
func QuestionKey(text string) string {
	return strings.TrimSpace(text)
}
