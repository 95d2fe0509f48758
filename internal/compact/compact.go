// Package compact implements the lossless wire codec for error reports:
// a structural envelope that abbreviates row-data columns through a field
// map, followed by an optional reversible compression pass. Decoding treats its
// input as untrusted and fails with the typed errors from the report
// package without partially populating anything.
package compact

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/report"
)

// ErrorField is the synthetic per-row field injected by the validator to
// flag a row, abbreviated with a reserved key so it can never collide with
// a generated column key.
const (
	ErrorField    = "error"
	ErrorFieldKey = "err"
)

// envelope is the whole-report wire form. Only the envelope's own keys are
// spelled out; everything structural below them uses fixed short keys, and
// row records use the generated field map.
type envelope struct {
	FieldMap   map[string]string              `json:"field_map"`
	Summary    *compactSummary                `json:"summary"`
	Rows       map[int]map[string]interface{} `json:"rows"`
	Categories []compactCategory              `json:"categories"`
}

type compactSummary struct {
	TotalErrors    int            `json:"te"`
	ErrorRows      int            `json:"er"`
	CategoryCounts map[string]int `json:"cc"`
}

type compactCategory struct {
	Name   string         `json:"n"`
	Groups []compactGroup `json:"g"`
}

type compactGroup struct {
	Reason string       `json:"r"`
	Rows   []compactRow `json:"w"`
}

// compactRow omits the index entirely for file-level locations; decoding
// re-derives the location from the index's presence. Editable carries the
// column names verbatim; only row records go through the field map.
type compactRow struct {
	Index      *int     `json:"i,omitempty"`
	Diagnostic string   `json:"d"`
	Editable   []string `json:"e"`
}

// Encoder turns a report and its row data into a transport Payload.
// A nil Codec disables the compression pass; MinSize skips it for bodies
// whose fixed compression overhead would outweigh the saving.
type Encoder struct {
	Codec   Codec
	MinSize int
}

// Encode builds the field map from the columns observed across rows,
// rewrites the report into the compact envelope and seals the result.
func (e *Encoder) Encode(r *report.ErrorReport, rows report.RowDataMap) (Payload, error) {
	fieldMap, rev := buildFieldMap(rows)
	env := envelope{
		FieldMap: fieldMap,
		Summary: &compactSummary{
			TotalErrors:    r.Summary.TotalErrors,
			ErrorRows:      r.Summary.ErrorRows,
			CategoryCounts: r.Summary.CategoryCounts,
		},
		Rows:       compactRows(rows, rev),
		Categories: compactCategoriesOf(r.Categories),
	}
	text, err := json.Marshal(env)
	if err != nil {
		return Payload{}, fmt.Errorf("failed to marshal report envelope: %w", err)
	}
	return e.Seal(string(text))
}

// Seal applies the compression pass to an already-serialized body and
// wraps it in a Payload carrying the compression indicator.
func (e *Encoder) Seal(text string) (Payload, error) {
	if e.Codec == nil || len(text) < e.MinSize {
		return Payload{Body: text}, nil
	}
	body, err := e.Codec.Compress(text)
	if err != nil {
		return Payload{}, fmt.Errorf("failed to compress payload: %w", err)
	}
	return Payload{Body: body, Compressed: true}, nil
}

// Decoded is the result of decoding a Payload. Warnings records lenient
// recoveries, one entry per distinct unmapped short key.
type Decoded struct {
	Report   *report.ErrorReport
	Rows     report.RowDataMap
	Warnings []string
}

// Decoder restores a transport Payload into a report and its row data.
// By default an unmapped short key is kept as the restored field name,
// matching what existing consumers already rely on; StrictFieldMap turns
// that fallback into a FormatError.
type Decoder struct {
	Codec          Codec
	StrictFieldMap bool
}

// Open reverses the compression pass according to the payload's
// indicator, returning the structural text.
func (d *Decoder) Open(p Payload) (string, error) {
	if !p.Compressed {
		return p.Body, nil
	}
	if d.Codec == nil {
		return "", &report.DecompressionError{Err: errors.New("payload is compressed but no codec is configured")}
	}
	text, err := d.Codec.Decompress(p.Body)
	if err != nil {
		return "", &report.DecompressionError{Err: err}
	}
	return text, nil
}

// Decode expands, parses and restores a payload. Failures are typed:
// DecompressionError when the body will not expand, FormatError when the
// envelope is malformed or the field map is absent, ValidationError when
// the restored summary carries negative counts.
func (d *Decoder) Decode(p Payload) (*Decoded, error) {
	text, err := d.Open(p)
	if err != nil {
		return nil, err
	}
	var env envelope
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		return nil, &report.FormatError{Reason: err.Error()}
	}
	if env.FieldMap == nil {
		return nil, &report.FormatError{Reason: "field_map is missing"}
	}

	fr := &fieldRestorer{fieldMap: env.FieldMap, strict: d.StrictFieldMap}
	res := &Decoded{Report: &report.ErrorReport{}}

	if env.Summary != nil {
		s := report.Summary{
			TotalErrors:    env.Summary.TotalErrors,
			ErrorRows:      env.Summary.ErrorRows,
			CategoryCounts: env.Summary.CategoryCounts,
		}
		if err := validateCounts(s); err != nil {
			return nil, err
		}
		res.Report.Summary = s
	}

	rows, err := restoreRows(env.Rows, fr)
	if err != nil {
		return nil, err
	}
	res.Rows = rows

	categories, err := restoreCategories(env.Categories)
	if err != nil {
		return nil, err
	}
	res.Report.Categories = categories
	res.Warnings = fr.warnings
	return res, nil
}

// buildFieldMap assigns one short key per distinct column observed across
// the row data, sorted for a deterministic envelope, plus the reserved
// key for the synthetic error field. rev is the inverse mapping used
// while encoding.
func buildFieldMap(rows report.RowDataMap) (fieldMap, rev map[string]string) {
	columns := make(map[string]struct{})
	for _, record := range rows {
		for name := range record {
			if name != ErrorField {
				columns[name] = struct{}{}
			}
		}
	}
	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	sort.Strings(names)

	fieldMap = make(map[string]string, len(names)+1)
	rev = make(map[string]string, len(names)+1)
	fieldMap[ErrorFieldKey] = ErrorField
	rev[ErrorField] = ErrorFieldKey
	for i, name := range names {
		short := "f" + strconv.Itoa(i)
		fieldMap[short] = name
		rev[name] = short
	}
	return fieldMap, rev
}

func compactRows(rows report.RowDataMap, rev map[string]string) map[int]map[string]interface{} {
	if rows == nil {
		return nil
	}
	out := make(map[int]map[string]interface{}, len(rows))
	for index, record := range rows {
		cr := make(map[string]interface{}, len(record))
		for name, value := range record {
			cr[rev[name]] = value
		}
		out[index] = cr
	}
	return out
}

func compactCategoriesOf(categories []report.ErrorCategory) []compactCategory {
	if categories == nil {
		return nil
	}
	out := make([]compactCategory, 0, len(categories))
	for _, c := range categories {
		cc := compactCategory{Name: c.Name, Groups: make([]compactGroup, 0, len(c.Groups))}
		for _, g := range c.Groups {
			cg := compactGroup{Reason: g.Reason, Rows: make([]compactRow, 0, len(g.Rows))}
			for _, row := range g.Rows {
				cr := compactRow{
					Diagnostic: row.Diagnostic,
					Editable:   row.EditableColumns,
				}
				if index, ok := row.Location.Index(); ok {
					i := index
					cr.Index = &i
				}
				cg.Rows = append(cg.Rows, cr)
			}
			cc.Groups = append(cc.Groups, cg)
		}
		out = append(out, cc)
	}
	return out
}

// fieldRestorer resolves short keys against the field map, collecting one
// warning per distinct unmapped key, or rejecting them in strict mode.
type fieldRestorer struct {
	fieldMap map[string]string
	strict   bool
	warned   map[string]struct{}
	warnings []string
}

func (fr *fieldRestorer) restore(short string) (string, error) {
	if long, ok := fr.fieldMap[short]; ok {
		return long, nil
	}
	if fr.strict {
		return "", &report.FormatError{Reason: fmt.Sprintf("short key %q is not in field_map", short)}
	}
	if _, ok := fr.warned[short]; !ok {
		if fr.warned == nil {
			fr.warned = make(map[string]struct{})
		}
		fr.warned[short] = struct{}{}
		fr.warnings = append(fr.warnings, fmt.Sprintf("short key %q is not in field_map; restored as is", short))
	}
	return short, nil
}

func restoreRows(rows map[int]map[string]interface{}, fr *fieldRestorer) (report.RowDataMap, error) {
	if rows == nil {
		return nil, nil
	}
	out := make(report.RowDataMap, len(rows))
	for index, record := range rows {
		if index < 0 {
			return nil, &report.FormatError{Reason: fmt.Sprintf("row index must not be negative: %d", index)}
		}
		restored := make(map[string]interface{}, len(record))
		for short, value := range record {
			name, err := fr.restore(short)
			if err != nil {
				return nil, err
			}
			restored[name] = value
		}
		out[index] = restored
	}
	return out, nil
}

func restoreCategories(categories []compactCategory) ([]report.ErrorCategory, error) {
	if categories == nil {
		return nil, nil
	}
	out := make([]report.ErrorCategory, 0, len(categories))
	for _, cc := range categories {
		c := report.ErrorCategory{Name: cc.Name, Groups: make([]report.ErrorGroup, 0, len(cc.Groups))}
		for _, cg := range cc.Groups {
			g := report.ErrorGroup{Reason: cg.Reason, Rows: make([]report.ErrorRow, 0, len(cg.Rows))}
			for _, cr := range cg.Rows {
				row := report.ErrorRow{Diagnostic: cr.Diagnostic}
				if cr.Index != nil {
					if *cr.Index < 0 {
						return nil, &report.FormatError{Reason: fmt.Sprintf("row index must not be negative: %d", *cr.Index)}
					}
					row.Location = report.NumericLocation(*cr.Index)
				} else {
					row.Location = report.FileLocation()
				}
				row.EditableColumns = cr.Editable
				g.Rows = append(g.Rows, row)
			}
			c.Groups = append(c.Groups, g)
		}
		out = append(out, c)
	}
	return out, nil
}

func validateCounts(s report.Summary) error {
	if s.TotalErrors < 0 {
		return &report.ValidationError{Reason: fmt.Sprintf("total_errors is negative: %d", s.TotalErrors)}
	}
	if s.ErrorRows < 0 {
		return &report.ValidationError{Reason: fmt.Sprintf("error_rows is negative: %d", s.ErrorRows)}
	}
	for name, n := range s.CategoryCounts {
		if n < 0 {
			return &report.ValidationError{Reason: fmt.Sprintf("category %q count is negative: %d", name, n)}
		}
	}
	return nil
}
