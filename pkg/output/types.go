// Package output provides formatting and output generation for tally reports.
package output

import (
	"time"

	"github.com/ccollicutt/chattally/pkg/scanner"
)

// Report is the complete output of a run over one or more chat files.
type Report struct {
	// Terms are the search terms in the order they were configured.
	Terms []string `json:"terms"`

	// Files holds one entry per scanned chat file.
	Files []FileReport `json:"files"`

	Summary  Summary  `json:"summary"`
	Metadata Metadata `json:"metadata"`
}

// FileReport holds the tallies for a single chat file. A nil table (null in
// JSON) means that tally was not requested; an empty one means nothing
// matched.
type FileReport struct {
	Source           string             `json:"source"`
	Counts           scanner.CountTable `json:"counts"`
	FirstOccurrences scanner.FirstTable `json:"first_occurrences"`

	// Order is the order in which senders and their terms first matched.
	// It is zero for reports assembled without a scan.
	Order scanner.Order `json:"order"`

	Stats scanner.Stats `json:"stats"`

	// Error describes why the scan ended early. Tables hold whatever was
	// gathered before the failure.
	Error string `json:"error,omitempty"`
}

// Summary provides aggregate statistics.
type Summary struct {
	// FilesScanned is the number of chat files processed.
	FilesScanned int `json:"files_scanned"`

	// FilesFailed is the number of files whose scan ended early.
	FilesFailed int `json:"files_failed"`

	// Senders is the number of distinct senders with at least one match.
	Senders int `json:"senders"`

	// TotalMatches is the sum of all counts, or the number of first
	// occurrences when counts were not requested.
	TotalMatches int `json:"total_matches"`

	// LinesProcessed is the total number of lines read.
	LinesProcessed int `json:"lines_processed"`
}

// Metadata provides context about the run.
type Metadata struct {
	// ConfigFile is the configuration used, empty for built-in defaults.
	ConfigFile string `json:"config_file,omitempty"`

	GeneratedAt time.Time     `json:"generated_at"`
	Duration    time.Duration `json:"duration"`
}

// NewReport builds a Report and its Summary from per-file results.
func NewReport(terms []string, files []FileReport, configFile string, start, end time.Time) *Report {
	r := &Report{
		Terms: terms,
		Files: files,
		Metadata: Metadata{
			ConfigFile:  configFile,
			GeneratedAt: end,
			Duration:    end.Sub(start),
		},
	}

	senders := make(map[string]struct{})
	for _, f := range files {
		r.Summary.FilesScanned++
		if f.Error != "" {
			r.Summary.FilesFailed++
		}
		r.Summary.LinesProcessed += f.Stats.LinesRead

		for sender, counts := range f.Counts {
			senders[sender] = struct{}{}
			for _, n := range counts {
				r.Summary.TotalMatches += n
			}
		}
		for sender, firsts := range f.FirstOccurrences {
			senders[sender] = struct{}{}
			if f.Counts == nil {
				r.Summary.TotalMatches += len(firsts)
			}
		}
	}
	r.Summary.Senders = len(senders)

	return r
}

// HasMatches returns true if any search term was found.
func (r *Report) HasMatches() bool {
	return r.Summary.TotalMatches > 0
}

// HasFailures returns true if any file could not be scanned completely.
func (r *Report) HasFailures() bool {
	return r.Summary.FilesFailed > 0
}

// uniqueTerms drops repeated terms, keeping first positions.
func uniqueTerms(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
