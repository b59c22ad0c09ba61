package llm

import "github.com/abhisek/levelquiz/internal/schema"

var pairSchema = &schema.Schema{
	Name: "pair",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{"type": "string"},
			"answer":   map[string]any{"type": "string"},
		},
		"required":             []any{"question", "answer"},
		"additionalProperties": false,
	},
}

const pairJSON = `{"question":"Capital of France?","answer":"Paris"}`
