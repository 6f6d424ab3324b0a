package generator

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizbank/internal/quiz"
)

const systemPrompt = `You are a trivia author writing multiple-choice quiz questions.

Rules:
- Write exactly the requested number of questions, all at the requested difficulty level and about the requested topic.
- Every question has exactly four options and exactly one correct option. correct_idx is the 0-based index of the correct option.
- Vary the position of the correct option across the batch.
- Distractors must be plausible, never jokes or obviously wrong.
- Questions must be factual and verifiable. Do not invent facts.
- explanation is one or two sentences. advanced_explanation may add deeper background or be empty.
- wiki_link points to the most relevant Wikipedia article.
- Set is_japan to true only when the question is about Japan.
- Do not repeat questions within the batch.
- Respond with a JSON array only, no prose.`

// levelGuidance describes each tier to the model.
var levelGuidance = map[quiz.Level]string{
	quiz.LevelBeginner:     "common knowledge most adults know; avoid obscure names and dates",
	quiz.LevelIntermediate: "requires some general education or interest in the topic",
	quiz.LevelAdvanced:     "enthusiast knowledge; specific names, dates and details",
	quiz.LevelExpert:       "specialist knowledge that challenges experts in the field",
}

func buildUserMessage(level quiz.Level, count int, topic string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Level: %s (%s)\n", level, levelGuidance[level])
	fmt.Fprintf(&b, "Number of questions: %d\n", count)
	fmt.Fprintf(&b, "Topic: %s\n", topic)
	return b.String()
}
