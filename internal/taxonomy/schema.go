package taxonomy

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://skill-taxonomy.json"

// documentSchema constrains a taxonomy document:
// category → skill name → definition. Every definition field is optional.
var documentSchema = map[string]any{
	"type":          "object",
	"minProperties": 1,
	"additionalProperties": map[string]any{
		"type": "object",
		"additionalProperties": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"level": map[string]any{
					"type": "string",
					"enum": []any{"beginner", "intermediate", "advanced"},
				},
				"description":        map[string]any{"type": "string"},
				"keywords":           stringArray(),
				"patterns":           stringArray(),
				"exercise_templates": stringArray(),
			},
		},
	},
}

func stringArray() map[string]any {
	return map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants values shaped like encoding/json output.
		def, err := normalize(documentSchema)
		if err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// validateDocument checks a generic decoded document against the schema.
// The value is round-tripped through encoding/json so YAML-decoded input
// uses the same value types as JSON input.
func validateDocument(v any) error {
	parsed, err := normalize(v)
	if err != nil {
		return fmt.Errorf("normalize document: %w", err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile taxonomy schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func normalize(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var parsed any
	if err := json.Unmarshal(b, &parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}
