package printer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/harness/nexus-migrate/module/migrate/types"
)

// ReportSummary is the machine readable form of a run report.
type ReportSummary struct {
	Skipped       int              `json:"skipped"`
	Uploaded      int              `json:"uploaded"`
	Hacked        int              `json:"hacked"`
	Failed        int              `json:"failed"`
	Total         int              `json:"total"`
	BytesUploaded int64            `json:"bytesUploaded"`
	Failures      []string         `json:"failures"`
	Artifacts     []ArtifactResult `json:"artifacts"`
	Error         string           `json:"error,omitempty"`
}

// ArtifactResult is the outcome of one artifact.
type ArtifactResult struct {
	Path   string `json:"path"`
	Status string `json:"status"`
	Size   int64  `json:"size,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Summarize converts report into a ReportSummary. runErr is the fatal error
// of the run, if any.
func Summarize(report *types.RunReport, runErr error) ReportSummary {
	s := ReportSummary{
		Skipped:       report.Skipped(),
		Uploaded:      report.Uploaded(),
		Hacked:        report.Hacked(),
		Failed:        report.Failed(),
		Total:         report.Total(),
		BytesUploaded: report.BytesUploaded(),
		Failures:      report.Failures(),
		Artifacts:     []ArtifactResult{},
	}
	if s.Failures == nil {
		s.Failures = []string{}
	}
	for _, stat := range report.Stats() {
		s.Artifacts = append(s.Artifacts, ArtifactResult{
			Path:   stat.Path,
			Status: string(stat.Status),
			Size:   stat.Size,
			Error:  stat.Error,
		})
	}
	if runErr != nil {
		s.Error = runErr.Error()
	}
	return s
}

// PrintJSON writes v as indented JSON.
func PrintJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	return nil
}
