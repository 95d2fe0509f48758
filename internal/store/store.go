// Package store holds decoded report snapshots in memory, one immutable
// generation per report ID, and writes the encoded payloads through to
// Badger so reports survive a restart. Invalidation leaves a tombstone
// behind so reads of a retired generation fail with StaleReportError
// instead of NotFoundError.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/compact"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/ledger"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/page"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/report"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/sequence"
)

// DefaultPageSize is used when no page size is configured.
const DefaultPageSize = 100

const keyPrefix = "report/"

// Snapshot is one report generation together with the state derived from
// it at ingestion. The report and rows are immutable; the ledger and
// sequence accumulator are the generation's mutable companions.
type Snapshot struct {
	ReportID   string
	Generation string
	CreatedAt  time.Time
	Report     *report.ErrorReport
	Rows       report.RowDataMap
	Metadata   *page.Metadata
	Encoded    compact.Payload
	Ledger     *ledger.Ledger
	Sequence   *sequence.Accumulator
}

// Options configures the snapshot store.
type Options struct {
	Dir      string // Badger directory, ignored when InMemory is set
	InMemory bool   // keep everything in RAM; used by tests and the CLI
	PageSize int
}

// Store is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	pageSize int
	snaps    map[string]*Snapshot
	stale    map[string]string // report ID -> generation retired by a flush
	db       *badger.DB
}

// Open initializes the store and its backing Badger database. The caller
// owns Close.
func Open(opts Options) (*Store, error) {
	bopts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	bopts = bopts.WithLogger(nil)

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot store: %w", err)
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	return &Store{
		pageSize: opts.PageSize,
		snaps:    make(map[string]*Snapshot),
		stale:    make(map[string]string),
		db:       db,
	}, nil
}

// Close releases the backing database.
func (s *Store) Close() error {
	return s.db.Close()
}

// PageSize returns the configured logical errors per page.
func (s *Store) PageSize() int {
	return s.pageSize
}

// persistedReport is the Badger value format: the encoded payload plus
// enough metadata to rebuild a snapshot without re-encoding.
type persistedReport struct {
	Generation string    `json:"generation"`
	CreatedAt  time.Time `json:"created_at"`
	Compressed bool      `json:"compressed"`
	Payload    string    `json:"payload"`
}

// Put installs a fresh generation for reportID, replacing any previous
// snapshot and clearing a stale tombstone left by a flush.
func (s *Store) Put(reportID string, r *report.ErrorReport, rows report.RowDataMap, encoded compact.Payload) (*Snapshot, error) {
	snap := &Snapshot{
		ReportID:   reportID,
		Generation: uuid.New().String(),
		CreatedAt:  time.Now().UTC(),
		Report:     r,
		Rows:       rows,
		Metadata:   page.ComputeMetadata(r, s.pageSize),
		Encoded:    encoded,
		Sequence:   sequence.NewAccumulator(),
	}
	snap.Ledger = ledger.New(reportID, snap.Generation)

	value, err := json.Marshal(persistedReport{
		Generation: snap.Generation,
		CreatedAt:  snap.CreatedAt,
		Compressed: encoded.Compressed,
		Payload:    encoded.Body,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal persisted report: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+reportID), value)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist report %s: %w", reportID, err)
	}

	s.mu.Lock()
	s.snaps[reportID] = snap
	delete(s.stale, reportID)
	s.mu.Unlock()
	return snap, nil
}

// Snapshot returns the current generation for reportID. A report retired
// by a flush yields StaleReportError until its regenerated form is
// ingested; an unknown ID yields NotFoundError.
func (s *Store) Snapshot(reportID string) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if snap, ok := s.snaps[reportID]; ok {
		return snap, nil
	}
	if generation, ok := s.stale[reportID]; ok {
		return nil, &report.StaleReportError{ReportID: reportID, Generation: generation}
	}
	return nil, &report.NotFoundError{Resource: "report", Key: reportID}
}

// Invalidate retires the given generation of reportID after a successful
// correction flush. Subsequent reads fail with StaleReportError until the
// revalidated report arrives under the same ID. A generation that is no
// longer the live one is left untouched. The persisted payload is removed
// first; if that fails the snapshot stays live.
func (s *Store) Invalidate(reportID, generation string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.snaps[reportID]
	if !ok || snap.Generation != generation {
		return nil
	}

	key := []byte(keyPrefix + reportID)
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		var p persistedReport
		if err := item.Value(func(val []byte) error { return json.Unmarshal(val, &p) }); err != nil {
			return err
		}
		if p.Generation != generation {
			// a fresher ingest already overwrote the payload
			return nil
		}
		return txn.Delete(key)
	})
	if err != nil {
		return fmt.Errorf("failed to drop persisted report %s: %w", reportID, err)
	}

	delete(s.snaps, reportID)
	s.stale[reportID] = generation
	return nil
}

// LoadPersisted rebuilds snapshots from the payloads on disk, returning
// how many reports were restored. Ledgers and sequence state start fresh;
// only flushed corrections survive a restart. A payload that no longer
// decodes is skipped and logged rather than blocking startup.
func (s *Store) LoadPersisted(dec *compact.Decoder) (int, error) {
	type stored struct {
		id string
		p  persistedReport
	}
	var items []stored
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			id := strings.TrimPrefix(string(item.Key()), keyPrefix)
			var p persistedReport
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &p)
			}); err != nil {
				log.Printf("skipping persisted report %s: %v", id, err)
				continue
			}
			items = append(items, stored{id: id, p: p})
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to scan persisted reports: %w", err)
	}

	restored := 0
	for _, item := range items {
		encoded := compact.Payload{Body: item.p.Payload, Compressed: item.p.Compressed}
		decoded, err := dec.Decode(encoded)
		if err != nil {
			log.Printf("skipping persisted report %s: %v", item.id, err)
			continue
		}
		snap := &Snapshot{
			ReportID:   item.id,
			Generation: item.p.Generation,
			CreatedAt:  item.p.CreatedAt,
			Report:     decoded.Report,
			Rows:       decoded.Rows,
			Metadata:   page.ComputeMetadata(decoded.Report, s.pageSize),
			Encoded:    encoded,
			Ledger:     ledger.New(item.id, item.p.Generation),
			Sequence:   sequence.NewAccumulator(),
		}
		s.mu.Lock()
		s.snaps[item.id] = snap
		s.mu.Unlock()
		restored++
	}
	return restored, nil
}
