package types

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/harness/nexus-migrate/util/common/errors"
)

// RepositoryFormat selects the package ecosystem being migrated.
type RepositoryFormat string

var (
	MAVEN2 RepositoryFormat = "maven2"
	NUGET  RepositoryFormat = "nuget"
)

// ParseRepositoryFormat maps a configuration value onto a known format.
func ParseRepositoryFormat(s string) (RepositoryFormat, error) {
	switch RepositoryFormat(strings.ToLower(strings.TrimSpace(s))) {
	case MAVEN2:
		return MAVEN2, nil
	case NUGET:
		return NUGET, nil
	default:
		return "", fmt.Errorf("%w: %q, only maven2 and nuget are supported", errors.ErrUnsupportedFormat, s)
	}
}

// FailureMode decides what happens when an artifact can not be downloaded or
// its existence can not be checked.
type FailureMode string

var (
	// FailureModeStop aborts the run on the first such error.
	FailureModeStop FailureMode = "stop"
	// FailureModeContinue records the artifact as failed and moves on.
	FailureModeContinue FailureMode = "continue"
)

type Status string

const (
	StatusSkip   Status = "Skipped"
	StatusUpload Status = "Uploaded"
	StatusHacked Status = "Hacked"
	StatusFail   Status = "Failed"
)

type FileStat struct {
	Path   string
	Status Status
	Size   int64
	Error  string
}

type TreeNode struct {
	Name     string
	Key      string
	Children []TreeNode
	IsLeaf   bool
}

// RunReport aggregates the outcome of every artifact handled in a run. It is
// safe for concurrent use.
type RunReport struct {
	mu     sync.Mutex
	stats  []FileStat
	counts map[Status]int
	seen   map[string]struct{}
}

func NewRunReport() *RunReport {
	return &RunReport{
		counts: make(map[Status]int),
		seen:   make(map[string]struct{}),
	}
}

// Record stores the outcome for stat.Path. A path is recorded at most once;
// later records for the same path are ignored.
func (r *RunReport) Record(stat FileStat) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.seen[stat.Path]; ok {
		return
	}
	r.seen[stat.Path] = struct{}{}
	r.stats = append(r.stats, stat)
	r.counts[stat.Status]++
}

// Merge adds every outcome of other to r.
func (r *RunReport) Merge(other *RunReport) {
	if other == nil || other == r {
		return
	}
	for _, stat := range other.Stats() {
		r.Record(stat)
	}
}

func (r *RunReport) Count(s Status) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[s]
}

func (r *RunReport) Skipped() int  { return r.Count(StatusSkip) }
func (r *RunReport) Uploaded() int { return r.Count(StatusUpload) }
func (r *RunReport) Hacked() int   { return r.Count(StatusHacked) }
func (r *RunReport) Failed() int   { return r.Count(StatusFail) }

func (r *RunReport) Total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stats)
}

// Status returns the outcome recorded for path.
func (r *RunReport) Status(path string) (Status, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stat := range r.stats {
		if stat.Path == path {
			return stat.Status, true
		}
	}
	return "", false
}

// Failures returns the failed paths in sorted order.
func (r *RunReport) Failures() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var failed []string
	for _, stat := range r.stats {
		if stat.Status == StatusFail {
			failed = append(failed, stat.Path)
		}
	}
	sort.Strings(failed)
	return failed
}

// BytesUploaded sums the size of every uploaded artifact.
func (r *RunReport) BytesUploaded() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, stat := range r.stats {
		if stat.Status == StatusUpload {
			total += stat.Size
		}
	}
	return total
}

// Stats returns a copy of the recorded outcomes sorted by path.
func (r *RunReport) Stats() []FileStat {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]FileStat, len(r.stats))
	copy(out, r.stats)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}
