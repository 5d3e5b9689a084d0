package resolver

import (
	"fmt"
	"time"

	"github.com/agentstation/tallysheet/pkg/provenance"
	"github.com/agentstation/tallysheet/pkg/records"
)

// Result represents the outcome of a resolution run.
type Result struct {
	// Core data
	Matches          []records.MatchRecord
	EstimatedRatings []records.EstimatedRatingRecord
	Participants     *Participants

	// Metadata
	Metadata ResultMetadata

	// Provenance tracking
	Provenance provenance.Map

	// Issues
	Warnings []string
}

// ResultMetadata contains metadata about the run.
type ResultMetadata struct {
	// StartTime when resolution started
	StartTime time.Time

	// EndTime when resolution completed
	EndTime time.Time

	// Duration of the run
	Duration time.Duration

	// RunID correlates log lines for the run, when one was set on the context
	RunID string

	// Statistics about the run
	Stats ResultStatistics
}

// ResultStatistics contains counts gathered while resolving.
type ResultStatistics struct {
	RegistryRecords      int `json:"registry_records" yaml:"registry_records"`
	RosterEntries        int `json:"roster_entries" yaml:"roster_entries"`
	RatingEntries        int `json:"rating_entries" yaml:"rating_entries"`
	MatchesRead          int `json:"matches_read" yaml:"matches_read"`
	MatchesWritten       int `json:"matches_written" yaml:"matches_written"`
	BlankRowsDropped     int `json:"blank_rows_dropped" yaml:"blank_rows_dropped"`
	UnresolvedSides      int `json:"unresolved_sides" yaml:"unresolved_sides"`
	ResolvedParticipants int `json:"resolved_participants" yaml:"resolved_participants"`
	FallbackParticipants int `json:"fallback_participants" yaml:"fallback_participants"`
	RosterIncluded       int `json:"roster_included" yaml:"roster_included"`
	RosterExcluded       int `json:"roster_excluded" yaml:"roster_excluded"`
	RegistryOverwrites   int `json:"registry_overwrites" yaml:"registry_overwrites"`
	RosterOverwrites     int `json:"roster_overwrites" yaml:"roster_overwrites"`
}

// HasWarnings returns true if the run produced warnings.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Rows returns the number of data rows the report will contain.
func (r *Result) Rows() int {
	return len(r.Matches) + len(r.EstimatedRatings)
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	s := r.Metadata.Stats
	summary := fmt.Sprintf("Resolved %d of %d matches (%d blank dropped) and %d estimated ratings",
		s.MatchesWritten, s.MatchesRead, s.BlankRowsDropped, len(r.EstimatedRatings))
	if s.UnresolvedSides > 0 {
		summary += fmt.Sprintf("; %d unresolved sides", s.UnresolvedSides)
	}
	if r.HasWarnings() {
		summary += fmt.Sprintf("; %d warnings", len(r.Warnings))
	}
	return summary
}

// NewResult creates a new result with defaults.
func NewResult() *Result {
	return &Result{
		Matches:          []records.MatchRecord{},
		EstimatedRatings: []records.EstimatedRatingRecord{},
		Warnings:         []string{},
		Metadata: ResultMetadata{
			StartTime: time.Now(),
		},
	}
}
