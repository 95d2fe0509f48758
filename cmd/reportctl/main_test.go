package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/compact"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/report"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePayloadFile encodes a two-error report and drops the payload in a
// temp file, the way `reportctl encode` would.
func writePayloadFile(t *testing.T) string {
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
	payload, err := (&compact.Encoder{Codec: compact.GzipCodec{}}).Encode(r, rows)
	require.NoError(t, err)

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "payload.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) error {
	t.Helper()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestPageCommandRejectsBadPageSize(t *testing.T) {
	in := writePayloadFile(t)

	for _, size := range []string{"0", "-3"} {
		err := runCommand(t, newPageCmd(), "--in", in, "--category", "DATE_ERRORS", "--page-size", size)
		require.Error(t, err, "page-size %s", size)
		assert.Contains(t, err.Error(), "page-size")
	}
}

func TestInspectCommandRejectsBadPageSize(t *testing.T) {
	err := runCommand(t, newInspectCmd(), "--in", writePayloadFile(t), "--page-size", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page-size")
}

func TestPageCommandOutOfRangePage(t *testing.T) {
	err := runCommand(t, newPageCmd(),
		"--in", writePayloadFile(t), "--category", "DATE_ERRORS", "--page-size", "1", "--page", "99")

	var nf *report.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "page", nf.Resource)
}
