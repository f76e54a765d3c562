package taxonomy

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/learner"
)

// SkillDefinition describes one taxonomy skill and how to spot it in text.
type SkillDefinition struct {
	Level             learner.Tier // Empty when the document omits it
	Description       string
	Keywords          []string
	Patterns          []string
	ExerciseTemplates []string // Placeholders: {skill_name}, {subject}

	compiled []*regexp.Regexp
}

// Entry is a skill definition together with its name and category.
type Entry struct {
	Name     string
	Category string
	SkillDefinition
}

// Category groups skills in document order.
type Category struct {
	Name   string
	Skills []Entry
}

// Subject is the taxonomy for one subject. Categories and skills keep the
// order in which they appear in the source document.
type Subject struct {
	Name       string
	Categories []Category
}

// compile prepares the case-insensitive pattern matchers.
func (d *SkillDefinition) compile() error {
	d.compiled = make([]*regexp.Regexp, 0, len(d.Patterns))
	for _, p := range d.Patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return fmt.Errorf("compile pattern %q: %w", p, err)
		}
		d.compiled = append(d.compiled, re)
	}
	return nil
}

// Matches reports whether any keyword (case-insensitive substring) or any
// pattern (case-insensitive regex) occurs in content.
func (d *SkillDefinition) Matches(content string) bool {
	if content == "" {
		return false
	}
	lower := strings.ToLower(content)
	for _, kw := range d.Keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	for _, re := range d.compiled {
		if re.MatchString(content) {
			return true
		}
	}
	return false
}

// MatchedKeywords returns the keywords found in content.
func (d *SkillDefinition) MatchedKeywords(content string) []string {
	lower := strings.ToLower(content)
	var out []string
	for _, kw := range d.Keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			out = append(out, kw)
		}
	}
	return out
}

// MatchedPatterns returns the source patterns that match content.
func (d *SkillDefinition) MatchedPatterns(content string) []string {
	var out []string
	for i, re := range d.compiled {
		if re.MatchString(content) {
			out = append(out, d.Patterns[i])
		}
	}
	return out
}

// Entries returns every skill in category order, then skill order.
func (s *Subject) Entries() []Entry {
	if s == nil {
		return nil
	}
	var out []Entry
	for _, c := range s.Categories {
		out = append(out, c.Skills...)
	}
	return out
}

// Lookup returns the definition for a skill in a specific category.
func (s *Subject) Lookup(category, name string) (*Entry, bool) {
	if s == nil {
		return nil, false
	}
	for ci := range s.Categories {
		c := &s.Categories[ci]
		if c.Name != category {
			continue
		}
		for i := range c.Skills {
			if c.Skills[i].Name == name {
				return &c.Skills[i], true
			}
		}
	}
	return nil, false
}

// Find returns the first skill named name across all categories.
func (s *Subject) Find(name string) (*Entry, bool) {
	if s == nil {
		return nil, false
	}
	for ci := range s.Categories {
		c := &s.Categories[ci]
		for i := range c.Skills {
			if c.Skills[i].Name == name {
				return &c.Skills[i], true
			}
		}
	}
	return nil, false
}

// SkillCount returns the number of skills across all categories.
func (s *Subject) SkillCount() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, c := range s.Categories {
		n += len(c.Skills)
	}
	return n
}

// IsEmpty reports whether the subject has no skills.
func (s *Subject) IsEmpty() bool {
	return s.SkillCount() == 0
}

func (s *Subject) compile() error {
	for ci := range s.Categories {
		c := &s.Categories[ci]
		for i := range c.Skills {
			c.Skills[i].Category = c.Name
			if err := c.Skills[i].compile(); err != nil {
				return fmt.Errorf("skill %q in category %q: %w", c.Skills[i].Name, c.Name, err)
			}
		}
	}
	return nil
}
