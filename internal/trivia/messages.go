package trivia

import (
	"errors"
	"strings"

	"github.com/abhisek/quizbank/internal/llm"
	"github.com/abhisek/quizbank/internal/session"
)

// UserMessage turns err into a sentence fit for the UI.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrBusy):
		return "A generation is already running. Wait for it to finish or stop it first."
	case errors.Is(err, session.ErrNothingToReview):
		return "There are no saved questions at this level yet. Generate some first."
	case errors.Is(err, session.ErrEmptySession):
		return "The model returned no usable questions. Please try again."
	}

	switch llm.KindOf(err) {
	case llm.KindMissingCredential:
		return "No API key is set. Enter your key before generating questions."
	case llm.KindRateLimited:
		return "The API quota has been exceeded. Wait a minute and try again."
	case llm.KindOverloaded:
		return "The model is overloaded right now. Try again in a few seconds."
	case llm.KindInvalidResponseFormat:
		return "The model answered in an unexpected format. Please try again."
	case llm.KindEmptyResponse:
		return "The model returned an empty answer. Please try again."
	case llm.KindStorageWriteFailure:
		return "The questions could not be saved. They are available until you quit."
	}
	return "Generation failed: " + err.Error()
}

// MaskKey hides all but the first and last four characters of an API key.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
