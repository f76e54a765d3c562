package taxonomy

import "github.com/abdulwahidchohan/ai-edu-coach-project/internal/learner"

const (
	beginner     = learner.TierBeginner
	intermediate = learner.TierIntermediate
	advanced     = learner.TierAdvanced
)

func entry(name string, level learner.Tier, desc string, keywords, patterns []string, templates ...string) Entry {
	return Entry{
		Name: name,
		SkillDefinition: SkillDefinition{
			Level:             level,
			Description:       desc,
			Keywords:          keywords,
			Patterns:          patterns,
			ExerciseTemplates: templates,
		},
	}
}

// DefaultSubjects returns freshly built default taxonomies for math,
// language and science. They are written to disk on first run.
func DefaultSubjects() []*Subject {
	return []*Subject{defaultMath(), defaultLanguage(), defaultScience()}
}

func defaultMath() *Subject {
	return &Subject{
		Name: "math",
		Categories: []Category{
			{Name: "arithmetic", Skills: []Entry{
				entry("addition", beginner, "Ability to add numbers",
					[]string{"add", "sum", "plus", "addition"},
					[]string{`\d+\s*\+\s*\d+`},
					"Work through a set of {skill_name} problems drawn from everyday {subject} situations.",
					"Build number sentences that practice {skill_name}, then check each answer."),
				entry("subtraction", beginner, "Ability to subtract numbers",
					[]string{"subtract", "minus", "difference", "subtraction"},
					[]string{`\d+\s*-\s*\d+`}),
				entry("multiplication", intermediate, "Ability to multiply numbers",
					[]string{"multiply", "product", "times", "multiplication"},
					[]string{`\d+\s*\*\s*\d+`, `\d+\s*×\s*\d+`},
					"Use arrays and groups to practice {skill_name} in {subject}."),
				entry("division", intermediate, "Ability to divide numbers",
					[]string{"divide", "quotient", "division"},
					[]string{`\d+\s*/\s*\d+`, `\d+\s*÷\s*\d+`}),
			}},
			{Name: "algebra", Skills: []Entry{
				entry("equations", intermediate, "Ability to solve equations",
					[]string{"equation", "solve", "unknown", "variable"},
					[]string{`[a-z]\s*=\s*\d+`, `solve for [a-z]`}),
				entry("expressions", intermediate, "Ability to work with algebraic expressions",
					[]string{"expression", "simplify", "expand", "factor"},
					[]string{`simplify`, `expand`, `factor`}),
			}},
			{Name: "geometry", Skills: []Entry{
				entry("area", intermediate, "Ability to calculate area of shapes",
					[]string{"area", "square units", "square feet", "square meters"},
					[]string{`area of`, `find the area`}),
				entry("perimeter", intermediate, "Ability to calculate perimeter of shapes",
					[]string{"perimeter", "circumference", "distance around"},
					[]string{`perimeter of`, `find the perimeter`}),
			}},
		},
	}
}

func defaultLanguage() *Subject {
	return &Subject{
		Name: "language",
		Categories: []Category{
			{Name: "reading", Skills: []Entry{
				entry("comprehension", intermediate, "Ability to understand and interpret text",
					[]string{"comprehend", "understand", "interpret", "meaning"},
					[]string{`what does .+ mean`, `main idea`},
					"Read a short passage and answer questions that test your {skill_name}."),
				entry("vocabulary", intermediate, "Knowledge and use of words",
					[]string{"vocabulary", "word meaning", "definition", "synonym"},
					[]string{`define the word`, `meaning of`}),
			}},
			{Name: "writing", Skills: []Entry{
				entry("grammar", intermediate, "Correct use of grammar rules",
					[]string{"grammar", "sentence structure", "syntax", "punctuation"},
					[]string{`correct grammar`, `proper sentence`}),
				entry("composition", advanced, "Ability to compose coherent text",
					[]string{"compose", "write", "essay", "paragraph", "composition"},
					[]string{`write an essay`, `compose a paragraph`},
					"Plan, draft and revise a short piece that shows your {skill_name} skills in {subject}."),
			}},
		},
	}
}

func defaultScience() *Subject {
	return &Subject{
		Name: "science",
		Categories: []Category{
			{Name: "scientific_method", Skills: []Entry{
				entry("hypothesis", intermediate, "Ability to formulate testable hypotheses",
					[]string{"hypothesis", "predict", "if-then", "testable"},
					[]string{`form a hypothesis`, `if .+ then`}),
				entry("experimentation", intermediate, "Ability to design and conduct experiments",
					[]string{"experiment", "test", "variable", "control"},
					[]string{`design an experiment`, `control group`},
					"Design a simple {subject} experiment and identify its variables."),
			}},
			{Name: "biology", Skills: []Entry{
				entry("cells", intermediate, "Understanding of cell structure and function",
					[]string{"cell", "organelle", "membrane", "nucleus"},
					[]string{`cell structure`, `function of .+ in a cell`}),
				entry("ecosystems", intermediate, "Understanding of ecosystem dynamics",
					[]string{"ecosystem", "food web", "habitat", "species"},
					[]string{`food chain`, `ecosystem balance`}),
			}},
		},
	}
}
