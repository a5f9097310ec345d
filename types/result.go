package types

import "time"

// Classification is the run-level verdict derived from category results.
type Classification string

const (
	ClassAllPass            Classification = "all-pass"
	ClassNonCriticalFailure Classification = "non-critical-failure"
	ClassCriticalFailure    Classification = "critical-failure"
)

// CategoryResult records the outcome of one category invocation. It is
// created once by the runner and never mutated afterwards.
type CategoryResult struct {
	Name     string        `json:"name"`
	Success  bool          `json:"success"`
	Critical bool          `json:"critical"`
	Duration time.Duration `json:"duration_ns"`
	Output   string        `json:"output,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// Stats holds the derived counts of a run.
type Stats struct {
	Total          int `json:"total"`
	Passed         int `json:"passed"`
	Failed         int `json:"failed"`
	CriticalFailed int `json:"critical_failed"`
}

// RunSummary is the aggregate record of one full invocation of the suite.
// Results are appended in invocation order; counts and classification are
// computed once by Finalize.
type RunSummary struct {
	RunID          string           `json:"run_id"`
	Environment    string           `json:"environment"`
	StartTime      time.Time        `json:"start_time"`
	Duration       time.Duration    `json:"duration_ns"`
	Results        []CategoryResult `json:"results"`
	Stats          Stats            `json:"stats"`
	Classification Classification   `json:"classification"`

	finalized bool
}

// NewRunSummary creates an accumulating summary for a run.
func NewRunSummary(runID, environment string, start time.Time) *RunSummary {
	return &RunSummary{
		RunID:       runID,
		Environment: environment,
		StartTime:   start,
	}
}

// Append records a category result. Results arrive in invocation order and
// the summary preserves that order.
func (s *RunSummary) Append(r CategoryResult) {
	s.Results = append(s.Results, r)
}

// Finalize computes the derived counts and the run classification.
// Finalizing twice is not supported; subsequent calls are no-ops.
func (s *RunSummary) Finalize(end time.Time) {
	if s.finalized {
		return
	}
	s.finalized = true
	s.Duration = end.Sub(s.StartTime)

	s.Stats = Stats{Total: len(s.Results)}
	for _, r := range s.Results {
		if r.Success {
			s.Stats.Passed++
			continue
		}
		s.Stats.Failed++
		if r.Critical {
			s.Stats.CriticalFailed++
		}
	}
	s.Classification = classify(s.Stats)
}

// Finalized reports whether Finalize has run.
func (s *RunSummary) Finalized() bool {
	return s.finalized
}

func classify(st Stats) Classification {
	switch {
	case st.CriticalFailed > 0:
		return ClassCriticalFailure
	case st.Failed > 0:
		return ClassNonCriticalFailure
	default:
		return ClassAllPass
	}
}
