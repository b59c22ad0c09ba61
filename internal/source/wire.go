package source

import (
	"github.com/abhisek/levelquiz/internal/quiz"
	"github.com/abhisek/levelquiz/internal/schema"
)

// wireQuestion is one item as the quiz service and the generator emit it.
type wireQuestion struct {
	Question   string   `json:"question"`
	Answers    []string `json:"answers"`
	TestAnswer int      `json:"test_answer"`
}

func (w wireQuestion) toQuestion() quiz.Question {
	return quiz.Question{
		Prompt:       w.Question,
		Answers:      w.Answers,
		CorrectIndex: w.TestAnswer,
	}
}

var questionItem = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"question": map[string]any{"type": "string", "description": "The question text"},
		"answers": map[string]any{
			"type":        "array",
			"description": "Answer options in display order",
			"items":       map[string]any{"type": "string"},
			"minItems":    2,
		},
		"test_answer": map[string]any{
			"type":        "integer",
			"description": "Zero-based index of the correct answer",
			"minimum":     0,
		},
	},
	"required": []any{"question", "answers", "test_answer"},
}

// quizPayloadSchema describes the remote service response:
// {"test":{"question":[...]}}.
var quizPayloadSchema = &schema.Schema{
	Name: "quiz-payload",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"test": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"question": map[string]any{
						"type":  "array",
						"items": questionItem,
					},
				},
				"required": []any{"question"},
			},
		},
		"required": []any{"test"},
	},
}

type quizPayload struct {
	Test struct {
		Question []wireQuestion `json:"question"`
	} `json:"test"`
}
