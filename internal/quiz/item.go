package quiz

import (
	"errors"
	"fmt"
	"strings"
)

// NumOptions is the number of answer choices every item carries.
const NumOptions = 4

// QuizItem is one multiple-choice trivia question.
type QuizItem struct {
	// ID is an opaque identifier assigned when the item is created.
	ID string `json:"id"`

	Level    Level  `json:"level"`
	Question string `json:"question"`

	Option1 string `json:"option1"`
	Option2 string `json:"option2"`
	Option3 string `json:"option3"`
	Option4 string `json:"option4"`

	// CorrectIdx indexes the four options, 0-based.
	CorrectIdx int `json:"correct_idx"`

	Explanation string `json:"explanation"`

	// AdvancedExplanation is optional deeper background.
	AdvancedExplanation string `json:"advanced_explanation"`

	WikiLink string `json:"wiki_link"`
	IsJapan  bool   `json:"is_japan"`
}

// Options returns the answer choices in display order.
func (q QuizItem) Options() [NumOptions]string {
	return [NumOptions]string{q.Option1, q.Option2, q.Option3, q.Option4}
}

// CorrectOption returns the text of the correct choice.
func (q QuizItem) CorrectOption() string {
	if q.CorrectIdx < 0 || q.CorrectIdx >= NumOptions {
		return ""
	}
	return q.Options()[q.CorrectIdx]
}

// ErrInvalidItem is wrapped by every Validate failure.
var ErrInvalidItem = errors.New("invalid quiz item")

// Validate checks the structural invariants of an item.
func (q QuizItem) Validate() error {
	if !q.Level.Valid() {
		return fmt.Errorf("%w: unknown level %q", ErrInvalidItem, q.Level)
	}
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("%w: empty question", ErrInvalidItem)
	}
	if q.CorrectIdx < 0 || q.CorrectIdx >= NumOptions {
		return fmt.Errorf("%w: correct_idx %d out of range", ErrInvalidItem, q.CorrectIdx)
	}
	return nil
}
