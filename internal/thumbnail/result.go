package thumbnail

import (
	"fmt"
	"maps"

	"github.com/deusflow/thumbfill/internal/report"
)

// Kind classifies a per-item decision.
type Kind int

const (
	EmptyToNull Kind = iota
	Backfilled
	NoMatch
)

func (k Kind) String() string {
	switch k {
	case EmptyToNull:
		return "empty→null"
	case Backfilled:
		return "backfilled"
	case NoMatch:
		return "no match"
	}
	return "unknown"
}

// Decision is one log entry of a resolver pass. Index is zero-based.
type Decision struct {
	Section   report.Section
	Index     int
	Kind      Kind
	Title     string
	Thumbnail string
	Source    report.Source
	Score     int
}

func (d Decision) String() string {
	prefix := fmt.Sprintf("[%s #%d]", d.Section, d.Index+1)
	switch d.Kind {
	case EmptyToNull:
		return fmt.Sprintf("%s empty string -> null: %s", prefix, Truncate(d.Title, 30))
	case Backfilled:
		return fmt.Sprintf("%s thumbnail added: %s -> %s (%s, score %d)",
			prefix, Truncate(d.Title, 30), Truncate(d.Thumbnail, 50), d.Source, d.Score)
	default:
		return fmt.Sprintf("%s no thumbnail (no match): %s", prefix, Truncate(d.Title, 30))
	}
}

// Truncate shortens s to max runes, marking the cut with "...".
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

// Tally counts items inspected and thumbnails filled in one section.
type Tally struct {
	Checked int `json:"checked"`
	Fixed   int `json:"fixed"`
}

// Result is the outcome of one Resolve call.
type Result struct {
	Tallies     map[report.Section]Tally
	EmptyToNull int
	Decisions   []Decision
}

func newResult() Result {
	t := make(map[report.Section]Tally, len(report.Sections))
	for _, s := range report.Sections {
		t[s] = Tally{}
	}
	return Result{Tallies: t}
}

// Checked is the number of items inspected across sections.
func (r Result) Checked() int {
	n := 0
	for _, t := range r.Tallies {
		n += t.Checked
	}
	return n
}

// Fixed is the number of thumbnails filled across sections.
func (r Result) Fixed() int {
	n := 0
	for _, t := range r.Tallies {
		n += t.Fixed
	}
	return n
}

// Modified reports whether the pass changed any item.
func (r Result) Modified() bool {
	return r.EmptyToNull > 0 || r.Fixed() > 0
}

// Summary aggregates results of several documents.
type Summary struct {
	Documents   int                      `json:"documents"`
	Tallies     map[report.Section]Tally `json:"sections"`
	EmptyToNull int                      `json:"empty_to_null"`
}

// Add returns a new summary that also counts r. s is left untouched.
func (s Summary) Add(r Result) Summary {
	out := Summary{
		Documents:   s.Documents + 1,
		Tallies:     make(map[report.Section]Tally, len(report.Sections)),
		EmptyToNull: s.EmptyToNull + r.EmptyToNull,
	}
	maps.Copy(out.Tallies, s.Tallies)
	for sec, t := range r.Tallies {
		cur := out.Tallies[sec]
		cur.Checked += t.Checked
		cur.Fixed += t.Fixed
		out.Tallies[sec] = cur
	}
	return out
}

// Fixed is the total number of thumbnails filled.
func (s Summary) Fixed() int {
	n := 0
	for _, t := range s.Tallies {
		n += t.Fixed
	}
	return n
}
