package timeline

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Verdict classifies one (movie, build) pair.
type Verdict string

const (
	FirstSeen      Verdict = "first-seen"
	Missing        Verdict = "missing"
	ReAdded        Verdict = "re-added"
	Unchanged      Verdict = "unchanged"
	Changed        Verdict = "changed"
	PartialChanged Verdict = "partial-changed"
	Unknown        Verdict = "unknown"
)

// Verdicts lists every verdict in display order.
var Verdicts = []Verdict{FirstSeen, Changed, PartialChanged, Unchanged, ReAdded, Missing, Unknown}

// IsDifference reports whether the verdict flags a visible change.
func (v Verdict) IsDifference() bool {
	return v == Changed || v == PartialChanged
}

// Label returns the verdict title-cased for display, such as "Partial-Changed".
func (v Verdict) Label() string {
	return cases.Title(language.English).String(string(v))
}

// Cell is the reconciled state of one movie in one build.
type Cell struct {
	Build   string  `json:"build"`
	Verdict Verdict `json:"verdict"`
	Present bool    `json:"present"`
	// Previous is the immediately older build, empty for the oldest build.
	Previous string `json:"previous,omitempty"`
	// Reference is the nearest older build containing the movie, set for
	// missing and re-added cells.
	Reference   string `json:"reference,omitempty"`
	NoReference bool   `json:"no_reference,omitempty"`
	// ReferenceChanged records, for re-added cells, whether the movie differs
	// from its Reference.
	ReferenceChanged bool `json:"reference_changed,omitempty"`
	// Degraded is set when an unreadable frame forced a fail-closed verdict.
	Degraded   bool `json:"degraded,omitempty"`
	FrameCount int  `json:"frame_count"`
}

// Baseline returns the build this cell was compared against: the reference
// for missing and re-added cells, otherwise the previous build.
func (c Cell) Baseline() string {
	if c.Verdict == Missing || c.Verdict == ReAdded {
		return c.Reference
	}
	if c.Verdict == FirstSeen || c.Verdict == Unknown {
		return ""
	}
	return c.Previous
}

// Row holds the cells of one movie, newest build first.
type Row struct {
	Target string `json:"target"`
	Movie  string `json:"movie"`
	Cells  []Cell `json:"cells"`
}

// Cell returns the cell for build.
func (r Row) Cell(build string) (Cell, bool) {
	for _, cell := range r.Cells {
		if cell.Build == build {
			return cell, true
		}
	}
	return Cell{}, false
}

// Counts tallies the verdicts in the row.
func (r Row) Counts() map[Verdict]int {
	counts := make(map[Verdict]int, len(Verdicts))
	for _, cell := range r.Cells {
		counts[cell.Verdict]++
	}
	return counts
}
