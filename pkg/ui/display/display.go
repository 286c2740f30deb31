// Package display holds the output models shared by the renderers.
package display

import (
	"time"

	"github.com/arthur-debert/templating/pkg/delimiters"
	"github.com/arthur-debert/templating/pkg/materialize"
)

// Report describes one materialization run
type Report struct {
	Command         string    `json:"command"`
	Scope           string    `json:"scope"`
	Skipped         bool      `json:"skipped"`
	Reason          string    `json:"reason,omitempty"`
	SourceDirectory string    `json:"source_directory"`
	OutputDirectory string    `json:"output_directory"`
	Delimiters      []string  `json:"delimiters,omitempty"`
	Copied          int       `json:"copied"`
	UpToDate        int       `json:"up_to_date"`
	CopiedFiles     []string  `json:"copied_files,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// NewReport converts a materialization result
func NewReport(command string, r *materialize.Result) *Report {
	report := &Report{
		Command:         command,
		Scope:           string(r.Scope),
		Skipped:         r.Skipped,
		Reason:          r.Reason,
		SourceDirectory: r.SourceDirectory,
		OutputDirectory: r.OutputDirectory,
		Timestamp:       time.Now(),
	}
	if r.Delimiters != nil {
		report.Delimiters = r.Delimiters.Strings()
	}
	if r.Sync != nil {
		report.Copied = r.Copied()
		report.UpToDate = r.Sync.Skipped
		report.CopiedFiles = r.Sync.CopiedFiles
	}
	return report
}

// DelimiterRow is one entry of the effective delimiter set
type DelimiterRow struct {
	Begin  string `json:"begin"`
	End    string `json:"end"`
	Origin string `json:"origin"`
}

// DelimiterTable lists the effective delimiters in matching order
type DelimiterTable struct {
	Rows []DelimiterRow `json:"delimiters"`
}

// NewDelimiterTable marks each pair of set as "default" when defaults holds it
// and "custom" otherwise
func NewDelimiterTable(set, defaults *delimiters.Set) *DelimiterTable {
	table := &DelimiterTable{Rows: []DelimiterRow{}}
	for _, p := range set.Pairs() {
		origin := "custom"
		if defaults.Contains(p) {
			origin = "default"
		}
		table.Rows = append(table.Rows, DelimiterRow{Begin: p.Begin, End: p.End, Origin: origin})
	}
	return table
}
