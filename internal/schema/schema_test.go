package schema

import (
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-object",
		Description: "A test object",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string"},
				"age":   map[string]any{"type": "integer", "minimum": 0},
				"grade": map[string]any{"type": "string", "enum": []any{"A", "B", "C"}},
			},
			"required": []any{"name", "age"},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"name":"Alice","age":10,"grade":"A"}`, false},
		{"optional omitted", `{"name":"Bob","age":8}`, false},
		{"missing required", `{"name":"Charlie"}`, true},
		{"wrong type", `{"name":"Dave","age":"ten"}`, true},
		{"bad enum", `{"name":"Eve","age":9,"grade":"D"}`, true},
		{"negative", `{"name":"Fay","age":-1}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testSchema().Validate([]byte(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ReturnsDocument(t *testing.T) {
	doc, err := testSchema().Validate([]byte(`{"name":"Gus","age":7}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, ok := doc.(map[string]any)
	if !ok {
		t.Fatalf("expected object, got %T", doc)
	}
	if m["name"] != "Gus" {
		t.Errorf("name = %v, want Gus", m["name"])
	}
}

func TestValidate_NestedArrays(t *testing.T) {
	s := &Schema{
		Name: "test-nested",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"scores": map[string]any{
					"type":     "array",
					"minItems": 2,
					"items":    map[string]any{"type": "integer"},
				},
			},
			"required": []any{"scores"},
		},
	}

	if _, err := s.Validate([]byte(`{"scores":[90,85]}`)); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if _, err := s.Validate([]byte(`{"scores":["a","b"]}`)); err == nil {
		t.Fatal("expected error for wrong item type")
	}
	if _, err := s.Validate([]byte(`{"scores":[1]}`)); err == nil {
		t.Fatal("expected error for too few items")
	}
}
