package store

import (
	"testing"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/compact"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/ledger"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Options{InMemory: true, PageSize: 3})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })
	return s
}

func ingestTestReport(t *testing.T, s *Store, reportID string) *Snapshot {
	t.Helper()
	categories := []report.ErrorCategory{
		{Name: "DATE_ERRORS", Groups: []report.ErrorGroup{{
			Reason: "invalid format",
			Rows: []report.ErrorRow{
				{Location: report.NumericLocation(5), Diagnostic: "bad date", EditableColumns: []string{"Date"}},
				{Location: report.NumericLocation(9), Diagnostic: "bad date", EditableColumns: []string{"Date"}},
			},
		}}},
	}
	r := &report.ErrorReport{Summary: report.Summarize(categories), Categories: categories}
	rows := report.RowDataMap{
		5: {"Date": "2026-13-01"},
		9: {"Date": "01/01/1899"},
	}
	encoded, err := (&compact.Encoder{Codec: compact.GzipCodec{}}).Encode(r, rows)
	require.NoError(t, err)

	snap, err := s.Put(reportID, r, rows, encoded)
	require.NoError(t, err)
	return snap
}

func TestPutAndSnapshot(t *testing.T) {
	s := openInMemory(t)
	put := ingestTestReport(t, s, "r-100")

	assert.NotEmpty(t, put.Generation)
	assert.Equal(t, 2, put.Metadata.TotalErrors)
	assert.Equal(t, ledger.Clean, put.Ledger.State())

	got, err := s.Snapshot("r-100")
	require.NoError(t, err)
	assert.Same(t, put, got)
}

func TestSnapshotUnknownReport(t *testing.T) {
	s := openInMemory(t)
	_, err := s.Snapshot("missing")

	var nf *report.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "report", nf.Resource)
}

func TestInvalidateLeavesStaleTombstone(t *testing.T) {
	s := openInMemory(t)
	old := ingestTestReport(t, s, "r-100")

	require.NoError(t, s.Invalidate("r-100", old.Generation))

	_, err := s.Snapshot("r-100")
	var stale *report.StaleReportError
	require.ErrorAs(t, err, &stale)
	assert.Equal(t, "r-100", stale.ReportID)
	assert.Equal(t, old.Generation, stale.Generation)

	// Re-ingesting under the same ID starts a fresh generation and clears
	// the tombstone.
	fresh := ingestTestReport(t, s, "r-100")
	assert.NotEqual(t, old.Generation, fresh.Generation)

	got, err := s.Snapshot("r-100")
	require.NoError(t, err)
	assert.Same(t, fresh, got)
}

func TestInvalidateSkipsReplacedGeneration(t *testing.T) {
	s := openInMemory(t)
	old := ingestTestReport(t, s, "r-100")
	fresh := ingestTestReport(t, s, "r-100")

	// Retiring the superseded generation must not touch the live one.
	require.NoError(t, s.Invalidate("r-100", old.Generation))

	got, err := s.Snapshot("r-100")
	require.NoError(t, err)
	assert.Same(t, fresh, got)

	err = s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keyPrefix + "r-100"))
		return err
	})
	assert.NoError(t, err, "the live generation's payload stays persisted")
}

func TestInvalidateUnknownReport(t *testing.T) {
	s := openInMemory(t)
	assert.NoError(t, s.Invalidate("missing", "some-generation"))

	_, err := s.Snapshot("missing")
	var nf *report.NotFoundError
	require.ErrorAs(t, err, &nf, "no tombstone is left behind")
}

func TestInvalidateKeepsSnapshotWhenDeleteFails(t *testing.T) {
	s, err := Open(Options{InMemory: true, PageSize: 3})
	require.NoError(t, err)
	snap := ingestTestReport(t, s, "r-100")

	// Closing the database makes the durable delete fail.
	require.NoError(t, s.Close())
	require.Error(t, s.Invalidate("r-100", snap.Generation))

	got, err := s.Snapshot("r-100")
	require.NoError(t, err)
	assert.Same(t, snap, got, "a failed retirement leaves the generation live")
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(Options{Dir: dir, PageSize: 3})
	require.NoError(t, err)
	kept := ingestTestReport(t, s, "r-keep")
	dropped := ingestTestReport(t, s, "r-drop")
	require.NoError(t, s.Invalidate("r-drop", dropped.Generation))
	require.NoError(t, s.Close())

	s, err = Open(Options{Dir: dir, PageSize: 3})
	require.NoError(t, err)
	defer func() { require.NoError(t, s.Close()) }()

	n, err := s.LoadPersisted(&compact.Decoder{Codec: compact.GzipCodec{}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := s.Snapshot("r-keep")
	require.NoError(t, err)
	assert.Equal(t, kept.Generation, got.Generation, "generation survives the restart")
	assert.Equal(t, kept.Report, got.Report)
	assert.Equal(t, kept.Rows, got.Rows)
	assert.Equal(t, ledger.Clean, got.Ledger.State(), "pending corrections do not survive a restart")

	// The invalidated report is gone entirely; the tombstone was memory
	// state of the previous process.
	var nf *report.NotFoundError
	_, err = s.Snapshot("r-drop")
	require.ErrorAs(t, err, &nf)
}

func TestLoadPersistedSkipsCorruptEntries(t *testing.T) {
	s := openInMemory(t)
	ingestTestReport(t, s, "r-good")

	require.NoError(t, s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+"r-bad"), []byte("not json at all"))
	}))

	n, err := s.LoadPersisted(&compact.Decoder{Codec: compact.GzipCodec{}})
	require.NoError(t, err)
	assert.Equal(t, 1, n, "only the intact report is restored")

	_, err = s.Snapshot("r-good")
	assert.NoError(t, err)
}
