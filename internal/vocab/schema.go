package vocab

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const packSchemaURL = "schema://vocab-pack.json"

// packSchema is the JSON Schema for .json vocabulary packs.
const packSchema = `{
  "type": "object",
  "required": ["name", "version", "language", "lessons"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "version": {"type": "string", "minLength": 1},
    "language": {
      "type": "object",
      "required": ["code", "name"],
      "properties": {
        "code": {"type": "string", "minLength": 2, "maxLength": 8},
        "name": {"type": "string", "minLength": 1},
        "native_name": {"type": "string"},
        "flag_emoji": {"type": "string"}
      }
    },
    "lessons": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["title", "order_index", "difficulty_level", "vocabulary"],
        "properties": {
          "id": {"type": "string"},
          "title": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "order_index": {"type": "integer", "minimum": 0},
          "difficulty_level": {"type": "integer", "minimum": 1, "maximum": 5},
          "estimated_minutes": {"type": "integer", "minimum": 0},
          "vocabulary": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["source_word", "target_word"],
              "properties": {
                "id": {"type": "string"},
                "source_word": {"type": "string", "minLength": 1},
                "target_word": {"type": "string", "minLength": 1},
                "pronunciation": {"type": "string"},
                "word_type": {"type": "string"},
                "example_source": {"type": "string"},
                "example_target": {"type": "string"},
                "audio_url": {"type": "string"}
              }
            }
          }
        }
      }
    }
  }
}`

var (
	compiledOnce sync.Once
	compiled     *jsonschema.Schema
	compileErr   error
)

func compiledPackSchema() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(packSchema))
		if err != nil {
			compileErr = fmt.Errorf("parse pack schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(packSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add pack schema: %w", err)
			return
		}
		compiled, compileErr = c.Compile(packSchemaURL)
	})
	return compiled, compileErr
}

// validateDocument checks a decoded JSON document against the pack schema.
func validateDocument(doc any) error {
	sch, err := compiledPackSchema()
	if err != nil {
		return err
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("pack does not match schema: %w", err)
	}
	return nil
}
