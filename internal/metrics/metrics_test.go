package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveOperation(t *testing.T) {
	m := New()
	start := time.Now()

	m.ObserveOperation("recommend_exercises", OutcomeOK, start)
	m.ObserveOperation("recommend_exercises", OutcomeOK, start)
	m.ObserveOperation("track_progress", OutcomeNotFound, start)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Operations.WithLabelValues("recommend_exercises", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("track_progress", OutcomeNotFound)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.OperationDuration))
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.GapAdjustments.WithLabelValues("math").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.GapAdjustments.WithLabelValues("math")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.GapAdjustments.WithLabelValues("math")))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.ExercisesRecommended.WithLabelValues("science").Add(3)

	path := filepath.Join(t.TempDir(), "educoach.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `educoach_exercises_recommended_total{subject="science"} 3`))
}
