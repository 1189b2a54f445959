// Package convert turns MyBible modules and the RST JSON source into app
// data bundles.
package convert

import "time"

// ValidationError is a problem found in a produced bundle.
type ValidationError struct {
	Book     int
	Chapter  int
	Type     string // "translation", "book", "chapter", "verse", "count"
	Message  string
	Expected interface{}
	Actual   interface{}
	Warning  bool
}

// Stats counts what a builder saw and dropped.
type Stats struct {
	Books          int
	Chapters       int
	Verses         int
	SkippedBooks   []int // unknown MyBible book numbers
	SkippedVerses  int
	RenamedBooks   int
	UntrustedBooks []int // BookIds without a trusted name
	PsalmMarkers   int
	PsalmMoves     int
	PsalmErrors    int
}

// ProcessResult holds the result of one conversion job.
type ProcessResult struct {
	Job         string
	Translation string
	Source      string
	Output      string
	Compressed  string
	Bytes       int
	Stats       Stats
	Errors      []ValidationError
	StartTime   time.Time
	EndTime     time.Time
}

// Failed reports whether validation found errors (warnings excluded).
func (r *ProcessResult) Failed() bool {
	for _, e := range r.Errors {
		if !e.Warning {
			return true
		}
	}
	return false
}
