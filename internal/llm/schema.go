package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON Schema for structured replies.
type Schema struct {
	// Name identifies the schema to providers. Kebab-case.
	Name        string
	Description string
	Definition  map[string]any

	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

// Check validates raw against the schema.
func (s *Schema) Check(raw []byte) error {
	if s == nil {
		return nil
	}
	compiled, err := s.compile()
	if err != nil {
		return &SchemaError{Schema: s.Name, Raw: raw, Err: err}
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &SchemaError{Schema: s.Name, Raw: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if err := compiled.Validate(doc); err != nil {
		return &SchemaError{Schema: s.Name, Raw: raw, Err: err}
	}
	return nil
}

// definitionJSON returns the definition encoded as JSON.
func (s *Schema) definitionJSON() (json.RawMessage, error) {
	b, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("encode schema %q: %w", s.Name, err)
	}
	return b, nil
}

func (s *Schema) compile() (*jsonschema.Schema, error) {
	s.once.Do(func() {
		// Round-trip through JSON so Go ints become the number type the
		// compiler expects.
		raw, err := s.definitionJSON()
		if err != nil {
			s.err = err
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			s.err = fmt.Errorf("parse schema %q: %w", s.Name, err)
			return
		}
		url := "mem://" + s.Name + ".json"
		c := jsonschema.NewCompiler()
		if err := c.AddResource(url, doc); err != nil {
			s.err = fmt.Errorf("add schema %q: %w", s.Name, err)
			return
		}
		s.compiled, s.err = c.Compile(url)
	})
	return s.compiled, s.err
}
