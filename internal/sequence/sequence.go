// Package sequence correlates flight sequence error rows. Four physical
// rows describe one logical continuity failure (departure and arrival of
// two legs), so the engine partitions a group by diagnostic text, marks
// the middle rows of complete partitions for highlighting and collapses
// repeated diagnostics into one summary entry per flight.
package sequence

import (
	"regexp"
	"sort"
	"sync"

	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/report"
)

// diagnosticPattern matches "<code> : <origin> <arrow> <destination>".
// The arrow is the ASCII digraph "->" or a single glyph from the Unicode
// Arrows block, since upstream tooling emits both.
var diagnosticPattern = regexp.MustCompile(`^\s*([A-Za-z0-9]+)\s*:\s*([A-Za-z0-9]+)\s*(?:->|[\x{2190}-\x{21FF}])\s*([A-Za-z0-9]+)\s*$`)

// Parse extracts the (code, origin, destination) triple from a diagnostic
// text. The second result is false when the text does not match.
func Parse(text string) (report.SequenceDiagnostic, bool) {
	m := diagnosticPattern.FindStringSubmatch(text)
	if m == nil {
		return report.SequenceDiagnostic{}, false
	}
	return report.SequenceDiagnostic{Code: m[1], Origin: m[2], Destination: m[3]}, true
}

// Result holds the outputs of a correlation pass: the locations to
// highlight and the deduplicated summary keyed by code|origin|destination.
type Result struct {
	Highlights map[report.RowLocation]struct{}
	Summary    map[string]report.SequenceDiagnostic
}

// SortedHighlights returns the highlight set as a slice in row order,
// for deterministic responses.
func (r Result) SortedHighlights() []report.RowLocation {
	out := make([]report.RowLocation, 0, len(r.Highlights))
	for loc := range r.Highlights {
		out = append(out, loc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Compare(out[j]) < 0 })
	return out
}

// Correlate runs the engine over one error group. Rows are partitioned by
// exact diagnostic text; a partition of exactly four rows highlights its
// second and third rows in original order. Every parseable partition
// registers one summary entry. Rows whose text does not match the pattern
// are silently left out of both outputs.
func Correlate(g report.ErrorGroup) Result {
	res := Result{
		Highlights: make(map[report.RowLocation]struct{}),
		Summary:    make(map[string]report.SequenceDiagnostic),
	}
	type partition struct {
		diag      report.SequenceDiagnostic
		locations []report.RowLocation
	}
	partitions := make(map[string]*partition)
	for _, row := range g.Rows {
		diag, ok := Parse(row.Diagnostic)
		if !ok {
			continue
		}
		p := partitions[row.Diagnostic]
		if p == nil {
			p = &partition{diag: diag}
			partitions[row.Diagnostic] = p
		}
		p.locations = append(p.locations, row.Location)
	}
	for _, p := range partitions {
		res.Summary[p.diag.Key()] = p.diag
		if len(p.locations) == report.SequenceRunLength {
			res.Highlights[p.locations[1]] = struct{}{}
			res.Highlights[p.locations[2]] = struct{}{}
		}
	}
	return res
}

// Accumulator merges per-page correlation results into whole-report
// outputs. Re-running overlapping pages is harmless: highlights form a
// set and summary entries collapse on their key, last value winning.
type Accumulator struct {
	mu         sync.Mutex
	highlights map[report.RowLocation]struct{}
	summary    map[string]report.SequenceDiagnostic
}

func NewAccumulator() *Accumulator {
	return &Accumulator{
		highlights: make(map[report.RowLocation]struct{}),
		summary:    make(map[string]report.SequenceDiagnostic),
	}
}

// Add merges one correlation result into the accumulated state.
func (a *Accumulator) Add(r Result) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for loc := range r.Highlights {
		a.highlights[loc] = struct{}{}
	}
	for key, diag := range r.Summary {
		a.summary[key] = diag
	}
}

// Snapshot returns an independent copy of the accumulated outputs.
func (a *Accumulator) Snapshot() Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	res := Result{
		Highlights: make(map[report.RowLocation]struct{}, len(a.highlights)),
		Summary:    make(map[string]report.SequenceDiagnostic, len(a.summary)),
	}
	for loc := range a.highlights {
		res.Highlights[loc] = struct{}{}
	}
	for key, diag := range a.summary {
		res.Summary[key] = diag
	}
	return res
}
