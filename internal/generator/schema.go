package generator

import "github.com/abhisek/quizbank/internal/llm"

// BatchSchema is the structured output requested from the model: a JSON
// array of quiz records without ids.
var BatchSchema = &llm.Schema{
	Name:        "quiz-batch",
	Description: "A batch of multiple-choice trivia questions",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"level": map[string]any{
					"type":        "string",
					"description": "Difficulty tier: beginner, intermediate, advanced or expert",
				},
				"question": map[string]any{
					"type":        "string",
					"description": "The question text, self-contained",
				},
				"option1": map[string]any{"type": "string"},
				"option2": map[string]any{"type": "string"},
				"option3": map[string]any{"type": "string"},
				"option4": map[string]any{"type": "string"},
				"correct_idx": map[string]any{
					"type":        "integer",
					"description": "0-based index of the correct option (0-3)",
				},
				"explanation": map[string]any{
					"type":        "string",
					"description": "Why the correct option is right, one or two sentences",
				},
				"advanced_explanation": map[string]any{
					"type":        "string",
					"description": "Optional deeper background for curious players",
				},
				"wiki_link": map[string]any{
					"type":        "string",
					"description": "URL of a relevant Wikipedia article",
				},
				"is_japan": map[string]any{
					"type":        "boolean",
					"description": "True when the question is about Japan",
				},
			},
			"required": []any{
				"level", "question", "option1", "option2", "option3", "option4",
				"correct_idx", "explanation", "advanced_explanation", "wiki_link", "is_japan",
			},
		},
	},
}
