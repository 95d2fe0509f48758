// Package ledger tracks pending cell corrections for one report
// generation. The ledger holds at most one correction per (location,
// column) key and moves between exactly two states: Clean when it is
// empty and Dirty while edits are pending. A successful flush hands every
// entry to the persistence collaborator in one shot and returns the
// ledger to Clean; a failed flush leaves it Dirty and untouched.
package ledger

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"sync"

	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/report"
)

// ErrFlushInProgress is returned when a flush is requested while another
// flush for the same ledger has not finished. Overlapping flushes would
// make the generation handover ambiguous, so the caller must retry.
var ErrFlushInProgress = errors.New("correction flush already in progress")

// State is the ledger's position in its two-state machine.
type State int

const (
	Clean State = iota
	Dirty
)

func (s State) String() string {
	if s == Clean {
		return "clean"
	}
	return "dirty"
}

// Key identifies the cell a correction applies to.
type Key struct {
	Location report.RowLocation
	Column   string
}

// Persister is the external collaborator that stores flushed corrections
// and re-triggers validation of the source file.
type Persister interface {
	SaveCorrections(ctx context.Context, reportID, generation string, corrections []report.Correction) error
}

// Ledger is safe for concurrent use.
type Ledger struct {
	mu         sync.Mutex
	reportID   string
	generation string
	entries    map[Key]report.Correction
	flushing   bool
}

// New returns an empty ledger bound to one report generation.
func New(reportID, generation string) *Ledger {
	return &Ledger{
		reportID:   reportID,
		generation: generation,
		entries:    make(map[Key]report.Correction),
	}
}

// Add records a correction. Setting a cell back to its old value removes
// any pending entry for that cell, since a reverted edit is not a
// correction; otherwise the entry is upserted. Adding the same correction
// twice is a no-op after the first.
func (l *Ledger) Add(c report.Correction) {
	key := Key{Location: c.Location, Column: c.Column}
	l.mu.Lock()
	defer l.mu.Unlock()
	if reflect.DeepEqual(c.NewValue, c.OldValue) {
		delete(l.entries, key)
		return
	}
	l.entries[key] = c
}

// Len returns the number of pending corrections.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// State reports Clean when no corrections are pending, Dirty otherwise.
func (l *Ledger) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == 0 {
		return Clean
	}
	return Dirty
}

// Entries returns the pending corrections ordered by location, then
// column, so flush payloads and listings are deterministic.
func (l *Ledger) Entries() []report.Correction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sortedLocked()
}

func (l *Ledger) sortedLocked() []report.Correction {
	out := make([]report.Correction, 0, len(l.entries))
	for _, c := range l.entries {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if cmp := out[i].Location.Compare(out[j].Location); cmp != 0 {
			return cmp < 0
		}
		return out[i].Column < out[j].Column
	})
	return out
}

// Flush hands the pending corrections to the persister as one batch.
// On success the flushed entries are cleared and their count returned; a
// count of zero means there was nothing to flush and the generation need
// not be invalidated. On failure the ledger is left exactly as it was.
// Entries added while the persister call is in flight survive the flush.
func (l *Ledger) Flush(ctx context.Context, p Persister) (int, error) {
	l.mu.Lock()
	if l.flushing {
		l.mu.Unlock()
		return 0, ErrFlushInProgress
	}
	if len(l.entries) == 0 {
		l.mu.Unlock()
		return 0, nil
	}
	l.flushing = true
	batch := l.sortedLocked()
	l.mu.Unlock()

	err := p.SaveCorrections(ctx, l.reportID, l.generation, batch)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.flushing = false
	if err != nil {
		return 0, err
	}
	for _, c := range batch {
		key := Key{Location: c.Location, Column: c.Column}
		if cur, ok := l.entries[key]; ok && reflect.DeepEqual(cur, c) {
			delete(l.entries, key)
		}
	}
	return len(batch), nil
}
