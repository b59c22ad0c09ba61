// Package schema compiles JSON Schema definitions and validates payloads
// against them. It backs both the remote quiz payload checks and the
// structured LLM output checks.
package schema

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON Schema definition.
type Schema struct {
	// Name identifies the schema. Also used as the tool/schema name when
	// sent to an LLM provider, so keep it kebab-case.
	Name string

	// Description tells an LLM what the object represents.
	Description string

	// Definition is the JSON Schema document as a map.
	Definition map[string]any
}

// compiled caches compiled schemas by name.
var compiled sync.Map // map[string]*jsonschema.Schema

// Validate parses raw as JSON and checks it against the schema. The parsed
// document is returned so callers can avoid decoding twice for inspection.
func (s *Schema) Validate(raw []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	c, err := s.compile()
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", s.Name, err)
	}

	if err := c.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema %q: %w", s.Name, err)
	}
	return doc, nil
}

func (s *Schema) compile() (*jsonschema.Schema, error) {
	if cached, ok := compiled.Load(s.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a decoded JSON value, not Go maps with typed slices.
	defBytes, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	var def any
	if err := json.Unmarshal(defBytes, &def); err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", s.Name)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, err
	}

	compiled.Store(s.Name, sch)
	return sch, nil
}
