package taxonomy

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/learner"
)

// document is the on-disk form of a skill definition.
type document struct {
	Level             string   `json:"level,omitempty" yaml:"level,omitempty"`
	Description       string   `json:"description,omitempty" yaml:"description,omitempty"`
	Keywords          []string `json:"keywords" yaml:"keywords"`
	Patterns          []string `json:"patterns" yaml:"patterns"`
	ExerciseTemplates []string `json:"exercise_templates,omitempty" yaml:"exercise_templates,omitempty"`
}

func (d document) definition() SkillDefinition {
	return SkillDefinition{
		Level:             learner.Tier(d.Level),
		Description:       d.Description,
		Keywords:          orEmpty(d.Keywords),
		Patterns:          orEmpty(d.Patterns),
		ExerciseTemplates: d.ExerciseTemplates,
	}
}

func orEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func documentFrom(def SkillDefinition) document {
	return document{
		Level:             string(def.Level),
		Description:       def.Description,
		Keywords:          def.Keywords,
		Patterns:          def.Patterns,
		ExerciseTemplates: def.ExerciseTemplates,
	}
}

// decodeJSON walks the document token by token so that category and skill
// order survive decoding.
func decodeJSON(data []byte) (*Subject, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	subject := &Subject{}
	for dec.More() {
		catName, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		if err := expectDelim(dec, '{'); err != nil {
			return nil, fmt.Errorf("category %q: %w", catName, err)
		}

		cat := Category{Name: catName}
		for dec.More() {
			skillName, err := readKey(dec)
			if err != nil {
				return nil, fmt.Errorf("category %q: %w", catName, err)
			}
			var doc document
			if err := dec.Decode(&doc); err != nil {
				return nil, fmt.Errorf("skill %q: %w", skillName, err)
			}
			cat.Skills = append(cat.Skills, Entry{
				Name:            skillName,
				Category:        catName,
				SkillDefinition: doc.definition(),
			})
		}
		if err := expectDelim(dec, '}'); err != nil {
			return nil, fmt.Errorf("category %q: %w", catName, err)
		}
		subject.Categories = append(subject.Categories, cat)
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return subject, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("read key: %w", err)
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}

// decodeYAML reads the node tree so that mapping order is preserved.
func decodeYAML(data []byte) (*Subject, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("empty yaml document")
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top level must be a mapping")
	}

	subject := &Subject{}
	for i := 0; i+1 < len(top.Content); i += 2 {
		catName := top.Content[i].Value
		skills := top.Content[i+1]
		if skills.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("category %q must be a mapping", catName)
		}

		cat := Category{Name: catName}
		for j := 0; j+1 < len(skills.Content); j += 2 {
			skillName := skills.Content[j].Value
			var doc document
			if err := skills.Content[j+1].Decode(&doc); err != nil {
				return nil, fmt.Errorf("skill %q: %w", skillName, err)
			}
			cat.Skills = append(cat.Skills, Entry{
				Name:            skillName,
				Category:        catName,
				SkillDefinition: doc.definition(),
			})
		}
		subject.Categories = append(subject.Categories, cat)
	}
	return subject, nil
}

// MarshalJSON writes the subject as an ordered category → skill object.
func (s *Subject) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for ci, c := range s.Categories {
		if ci > 0 {
			b.WriteByte(',')
		}
		if err := writeKey(&b, c.Name); err != nil {
			return nil, err
		}
		b.WriteByte('{')
		for si, e := range c.Skills {
			if si > 0 {
				b.WriteByte(',')
			}
			if err := writeKey(&b, e.Name); err != nil {
				return nil, err
			}
			def, err := json.Marshal(documentFrom(e.SkillDefinition))
			if err != nil {
				return nil, fmt.Errorf("marshal skill %q: %w", e.Name, err)
			}
			b.Write(def)
		}
		b.WriteByte('}')
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func writeKey(b *bytes.Buffer, key string) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	b.Write(k)
	b.WriteByte(':')
	return nil
}

// encodeJSON renders an indented, order-preserving document.
func encodeJSON(s *Subject) ([]byte, error) {
	raw, err := s.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("indent taxonomy: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}
