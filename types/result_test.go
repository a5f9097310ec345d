package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSummary_AllPass(t *testing.T) {
	s := NewRunSummary("run-1", "staging", time.Now())
	s.Append(CategoryResult{Name: "smoke", Success: true, Critical: true})
	s.Append(CategoryResult{Name: "e2e", Success: true})
	s.Finalize(time.Now())

	assert.Equal(t, ClassAllPass, s.Classification)
	assert.Equal(t, Stats{Total: 2, Passed: 2}, s.Stats)
}

func TestRunSummary_NonCriticalFailure(t *testing.T) {
	s := NewRunSummary("run-1", "staging", time.Now())
	s.Append(CategoryResult{Name: "smoke", Success: true, Critical: true})
	s.Append(CategoryResult{Name: "performance", Success: false})
	s.Finalize(time.Now())

	assert.Equal(t, ClassNonCriticalFailure, s.Classification)
	assert.Equal(t, Stats{Total: 2, Passed: 1, Failed: 1}, s.Stats)
}

func TestRunSummary_CriticalFailure(t *testing.T) {
	// Example from the runbook: smoke passes, api (critical) fails, e2e passes.
	s := NewRunSummary("run-1", "staging", time.Now())
	s.Append(CategoryResult{Name: "smoke", Success: true, Critical: true})
	s.Append(CategoryResult{Name: "api", Success: false, Critical: true})
	s.Append(CategoryResult{Name: "e2e", Success: true})
	s.Finalize(time.Now())

	assert.Equal(t, ClassCriticalFailure, s.Classification)
	assert.Equal(t, Stats{Total: 3, Passed: 2, Failed: 1, CriticalFailed: 1}, s.Stats)
}

func TestRunSummary_CountInvariants(t *testing.T) {
	s := NewRunSummary("run-1", "production", time.Now())
	results := []CategoryResult{
		{Name: "smoke", Success: true, Critical: true},
		{Name: "api", Success: false, Critical: true},
		{Name: "e2e", Success: false},
		{Name: "security", Success: false, Critical: true},
	}
	for _, r := range results {
		s.Append(r)
	}
	s.Finalize(time.Now())

	assert.Equal(t, len(results), s.Stats.Total)
	assert.Equal(t, s.Stats.Total, s.Stats.Passed+s.Stats.Failed)
	assert.LessOrEqual(t, s.Stats.CriticalFailed, s.Stats.Failed)
	assert.LessOrEqual(t, s.Stats.Failed, s.Stats.Total)
}

func TestRunSummary_PreservesInvocationOrder(t *testing.T) {
	s := NewRunSummary("run-1", "staging", time.Now())
	order := []string{"smoke", "api", "e2e", "performance", "accessibility", "security"}
	for _, name := range order {
		s.Append(CategoryResult{Name: name, Success: true})
	}
	s.Finalize(time.Now())

	require.Len(t, s.Results, len(order))
	for i, name := range order {
		assert.Equal(t, name, s.Results[i].Name)
	}
}

func TestRunSummary_FinalizeOnce(t *testing.T) {
	start := time.Now()
	s := NewRunSummary("run-1", "staging", start)
	s.Append(CategoryResult{Name: "smoke", Success: true})
	s.Finalize(start.Add(5 * time.Second))

	require.True(t, s.Finalized())
	firstDuration := s.Duration
	firstStats := s.Stats

	// Re-finalizing must not change anything, even after more appends.
	s.Append(CategoryResult{Name: "api", Success: false})
	s.Finalize(start.Add(60 * time.Second))
	assert.Equal(t, firstDuration, s.Duration)
	assert.Equal(t, firstStats, s.Stats)
}

func TestRunSummary_EmptyRun(t *testing.T) {
	s := NewRunSummary("run-1", "staging", time.Now())
	s.Finalize(time.Now())

	assert.Equal(t, ClassAllPass, s.Classification)
	assert.Equal(t, Stats{}, s.Stats)
}

func TestCategory_Args(t *testing.T) {
	c := Category{Name: "smoke", Tag: "@smoke"}
	assert.Equal(t, []string{"playwright", "test", "--grep", "@smoke", "--reporter=line"}, c.Args())
}
