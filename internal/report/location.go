package report

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RowLocation identifies where an error row points in the source file:
// either a data row by index, or the file as a whole for errors that are
// not attributable to any single row (a missing column, say).
//
// The zero value is the file-level location. RowLocation is comparable and
// may be used as a map key.
type RowLocation struct {
	index   int
	numeric bool
}

// NumericLocation returns the location of the data row at index.
func NumericLocation(index int) RowLocation {
	return RowLocation{index: index, numeric: true}
}

// FileLocation returns the file-level location.
func FileLocation() RowLocation {
	return RowLocation{}
}

// Index returns the row index and true for numeric locations, or 0 and
// false for the file-level location.
func (l RowLocation) Index() (int, bool) {
	if !l.numeric {
		return 0, false
	}
	return l.index, true
}

// IsFileLevel reports whether the location is the file-level location.
func (l RowLocation) IsFileLevel() bool {
	return !l.numeric
}

// Compare orders locations: numeric rows ascending by index, then the
// file-level location last. It returns -1, 0 or 1.
func (l RowLocation) Compare(o RowLocation) int {
	switch {
	case l.numeric && !o.numeric:
		return -1
	case !l.numeric && o.numeric:
		return 1
	case l.index < o.index:
		return -1
	case l.index > o.index:
		return 1
	}
	return 0
}

func (l RowLocation) String() string {
	if !l.numeric {
		return "file"
	}
	return fmt.Sprintf("row %d", l.index)
}

// MarshalJSON encodes numeric locations as a bare integer and the
// file-level location as the string "file".
func (l RowLocation) MarshalJSON() ([]byte, error) {
	if !l.numeric {
		return []byte(`"file"`), nil
	}
	return json.Marshal(l.index)
}

// UnmarshalJSON accepts an integer index, the string "file", or null,
// which also means file level. Anything else is rejected.
func (l *RowLocation) UnmarshalJSON(data []byte) error {
	switch s := string(bytes.TrimSpace(data)); s {
	case "null", `"file"`:
		*l = FileLocation()
		return nil
	}
	var index int
	if err := json.Unmarshal(data, &index); err != nil {
		return fmt.Errorf("row location must be an integer or \"file\": %s", data)
	}
	if index < 0 {
		return fmt.Errorf("row location index must not be negative: %d", index)
	}
	*l = NumericLocation(index)
	return nil
}
