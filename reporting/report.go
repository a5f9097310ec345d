// Package reporting persists the run summary as a JSON artifact and renders
// the console report.
package reporting

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/helioswap/qa-acceptor/types"
)

// DefaultArtifactPath is the fixed relative location of the JSON artifact.
// It is overwritten on every full run; no history is retained.
const DefaultArtifactPath = "results/summary.json"

// summaryArtifact is the serialized form of a RunSummary. Durations are
// written both raw and human-readable so CI dashboards don't need to convert.
type summaryArtifact struct {
	RunID          string               `json:"run_id"`
	Environment    string               `json:"environment"`
	StartTime      string               `json:"start_time"`
	Duration       string               `json:"duration"`
	DurationNS     int64                `json:"duration_ns"`
	Classification types.Classification `json:"classification"`
	Stats          types.Stats          `json:"stats"`
	Results        []categoryArtifact   `json:"results"`
}

type categoryArtifact struct {
	Name     string `json:"name"`
	Success  bool   `json:"success"`
	Critical bool   `json:"critical"`
	Duration string `json:"duration"`
	Output   string `json:"output,omitempty"`
	Error    string `json:"error,omitempty"`
}

// WriteJSONSummary writes the finalized summary to path, creating parent
// directories and replacing any previous artifact.
func WriteJSONSummary(path string, summary *types.RunSummary) error {
	if !summary.Finalized() {
		return errors.New("summary must be finalized before writing")
	}

	artifact := summaryArtifact{
		RunID:          summary.RunID,
		Environment:    summary.Environment,
		StartTime:      summary.StartTime.UTC().Format(time.RFC3339),
		Duration:       summary.Duration.String(),
		DurationNS:     summary.Duration.Nanoseconds(),
		Classification: summary.Classification,
		Stats:          summary.Stats,
		Results:        make([]categoryArtifact, 0, len(summary.Results)),
	}
	for _, r := range summary.Results {
		artifact.Results = append(artifact.Results, categoryArtifact{
			Name:     r.Name,
			Success:  r.Success,
			Critical: r.Critical,
			Duration: r.Duration.String(),
			Output:   r.Output,
			Error:    r.Error,
		})
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling summary")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "creating artifact directory %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing artifact %s", path)
	}
	return nil
}
