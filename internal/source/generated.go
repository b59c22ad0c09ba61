package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/levelquiz/internal/llm"
	"github.com/abhisek/levelquiz/internal/quiz"
	"github.com/abhisek/levelquiz/internal/schema"
)

const generatorSystem = `You write multiple-choice quiz questions for a levelled trivia game.
Level 1 is easy general knowledge; each level above it is noticeably harder.
Every question has between 3 and 5 answer options and exactly one correct answer.
Vary the position of the correct answer across questions.`

var generatedSchema = &schema.Schema{
	Name:        "generated-quiz",
	Description: "A sequence of multiple-choice questions for one quiz level",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":  "array",
				"items": questionItem,
			},
		},
		"required": []any{"question"},
	},
}

// GeneratedSource asks an LLM provider to write a level's questions.
type GeneratedSource struct {
	provider llm.Provider
	count    int
}

// NewGeneratedSource creates a source that requests count questions per level.
func NewGeneratedSource(p llm.Provider, count int) *GeneratedSource {
	if count < 1 {
		count = 1
	}
	return &GeneratedSource{provider: p, count: count}
}

func (s *GeneratedSource) FetchQuestions(ctx context.Context, level int) ([]quiz.Question, error) {
	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      generatorSystem,
		Prompt:      fmt.Sprintf("Write %d questions for level %d.", s.count, level),
		Schema:      generatedSchema,
		MaxTokens:   256 * s.count,
		Temperature: 0.7,
	})
	if err != nil {
		var invalid *llm.ErrInvalidResponse
		if errors.As(err, &invalid) {
			return nil, &quiz.MalformedDataError{Level: level, Reason: "generated questions", Err: err}
		}
		return nil, &quiz.NetworkError{Level: level, Err: err}
	}

	var out struct {
		Question []wireQuestion `json:"question"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, &quiz.MalformedDataError{Level: level, Reason: "decode generated questions", Err: err}
	}
	return mapQuestions(level, out.Question)
}
