package llm

import (
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.5-flash", "gemini-2.5-flash"},
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"description": map[string]any{"type": "string"},
			"minutes":     map[string]any{"type": "integer"},
			"type":        map[string]any{"type": "string", "enum": []any{"practice", "quiz", "project"}},
			"resources": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"description"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["description"].Type != "STRING" {
		t.Errorf("description type = %s, want STRING", schema.Properties["description"].Type)
	}
	if schema.Properties["minutes"].Type != "INTEGER" {
		t.Errorf("minutes type = %s, want INTEGER", schema.Properties["minutes"].Type)
	}
	if len(schema.Properties["type"].Enum) != 3 {
		t.Errorf("enum values = %d, want 3", len(schema.Properties["type"].Enum))
	}
	if schema.Properties["resources"].Items.Type != "STRING" {
		t.Errorf("resources items = %s, want STRING", schema.Properties["resources"].Items.Type)
	}
	if len(schema.Required) != 1 {
		t.Errorf("required = %v, want one field", schema.Required)
	}
}
