package generator

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/abhisek/quizbank/internal/llm"
)

var (
	countPattern = regexp.MustCompile(`Number of questions: (\d+)`)
	levelPattern = regexp.MustCompile(`Level: (\w+)`)
	topicPattern = regexp.MustCompile(`Topic: (.+)`)
)

// Synthetic returns a mock responder that answers batch prompts with
// placeholder questions, each unique for the life of the process. It backs
// the "mock" provider for offline runs and demos.
func Synthetic() func(llm.Request) llm.MockResponse {
	var seq atomic.Int64
	return func(req llm.Request) llm.MockResponse {
		var prompt string
		if len(req.Messages) > 0 {
			prompt = req.Messages[len(req.Messages)-1].Content
		}

		count := DefaultCount
		if m := countPattern.FindStringSubmatch(prompt); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				count = n
			}
		}
		level := "beginner"
		if m := levelPattern.FindStringSubmatch(prompt); m != nil {
			level = m[1]
		}
		topic := "General knowledge"
		if m := topicPattern.FindStringSubmatch(prompt); m != nil {
			topic = strings.TrimSpace(m[1])
		}

		items := make([]rawItem, count)
		for i := range items {
			n := seq.Add(1)
			items[i] = rawItem{
				Level:       level,
				Question:    fmt.Sprintf("[%s] Sample question #%d: which option is marked correct?", topic, n),
				Option1:     "Option A",
				Option2:     "Option B",
				Option3:     "Option C",
				Option4:     "Option D",
				CorrectIdx:  int(n % 4),
				Explanation: fmt.Sprintf("Option %c was chosen as the answer for sample %d.", 'A'+rune(n%4), n),
				WikiLink:    "https://en.wikipedia.org/wiki/Trivia",
				IsJapan:     strings.Contains(topic, "Japan"),
			}
		}

		content, err := json.Marshal(items)
		if err != nil {
			return llm.MockResponse{Err: err}
		}
		return llm.MockResponse{Content: content}
	}
}
