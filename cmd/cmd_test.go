package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/skilldev"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/store"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/taxonomy"
)

// isolate points every data location at a temp dir and returns it.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("EDUCOACH_DB", "")
	t.Setenv("EDUCOACH_LLM_PROVIDER", "none")
	t.Setenv("EDUCOACH_METRICS_FILE", filepath.Join(dir, "metrics", "educoach.prom"))
	t.Chdir(dir)
	return dir
}

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--data-dir", dir, "--log-level", "error"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCLI_EndToEnd(t *testing.T) {
	dir := isolate(t)

	out, err := run(t, dir, "student", "set", "ada", "--name", "Ada", "--progress", "Math=0.2")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada")
	assert.FileExists(t, filepath.Join(dir, "educoach.db"))

	// Subjects are matched case-insensitively against profile and taxonomy.
	out, err = run(t, dir, "skills", "identify", "-s", "ada", "--subject", "Math",
		"--content", "Let's practice addition: 2 + 3 = 5")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada · math")
	assert.Contains(t, out, "Beginner")
	assert.Contains(t, out, "math_fractions")
	assert.Contains(t, out, "math_addition")
	assert.NotContains(t, out, "Math_addition")

	out, err = run(t, dir, "exercises", "recommend", "-s", "ada", "--subject", "math")
	require.NoError(t, err)
	assert.Contains(t, out, "exercise_math_fractions_0")

	out, err = run(t, dir, "exercises", "complete", "exercise_math_fractions_0", "-s", "ada", "--completion", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Completed Fractions (math)")
	assert.Contains(t, out, "0.20 → 0.25")

	out, err = run(t, dir, "history", "show", "-s", "ada", "--subject", "math")
	require.NoError(t, err)
	assert.Contains(t, out, "math_fractions")
	assert.Contains(t, out, "exercise_math_fractions_0")

	out, err = run(t, dir, "plan", "-s", "ada", "--subject", "MATH")
	require.NoError(t, err)
	assert.Contains(t, out, "Development plan")

	metrics, err := os.ReadFile(filepath.Join(dir, "metrics", "educoach.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `educoach_operations_total{operation="generate_plan",outcome="ok"} 1`)

	out, err = run(t, dir, "stats", "-s", "ada")
	require.NoError(t, err)
	assert.Contains(t, out, "math")

	out, err = run(t, dir, "taxonomy", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "language")
	assert.FileExists(t, filepath.Join(dir, "taxonomies", "math_taxonomy.json"))

	_, err = run(t, dir, "reset", "ada")
	assert.Error(t, err)
	_, err = run(t, dir, "reset", "ada", "--yes")
	require.NoError(t, err)
	_, err = run(t, dir, "student", "show", "ada")
	assert.ErrorIs(t, err, skilldev.ErrNotFound)

	out, err = run(t, dir, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "educoach")
}

func TestParseResults(t *testing.T) {
	got, err := parseResults([]string{"ex1:80", "ex2:92.5"})
	require.NoError(t, err)
	assert.Equal(t, []skilldev.ExerciseResult{{ID: "ex1", Score: 80}, {ID: "ex2", Score: 92.5}}, got)

	for _, bad := range []string{"ex1", ":80", "ex1:high"} {
		_, err := parseResults([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestSummarize(t *testing.T) {
	stats := summarize(
		[]store.AssessmentRecord{{Subject: "math"}, {Subject: "math"}, {Subject: "science"}},
		[]store.ProgressRecord{{Subject: "math", Completion: 0.5}, {Subject: "math", Completion: 1}},
	)
	require.Len(t, stats, 2)
	assert.Equal(t, "math", stats[0].subject)
	assert.Equal(t, 2, stats[0].assessments)
	assert.InDelta(t, 0.75, stats[0].avgCompletion(), 1e-9)
	assert.Equal(t, 0, stats[1].exercises)
	assert.Zero(t, stats[1].avgCompletion())
}

func TestResolveSkill(t *testing.T) {
	tax, err := taxonomy.NewStoreFromSubjects(taxonomy.DefaultSubjects()...)
	require.NoError(t, err)
	math := tax.Get("math")

	e, err := resolveSkill(math, "addition")
	require.NoError(t, err)
	assert.Equal(t, "addition", e.Name)

	_, err = resolveSkill(math, "math_addition")
	require.NoError(t, err)

	_, err = resolveSkill(math, "astrophysics")
	assert.Error(t, err)
}
