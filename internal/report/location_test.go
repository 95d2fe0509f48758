package report

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowLocationJSON(t *testing.T) {
	t.Run("numeric marshals to a bare integer", func(t *testing.T) {
		b, err := json.Marshal(NumericLocation(12))
		require.NoError(t, err)
		assert.Equal(t, "12", string(b))
	})

	t.Run("file level marshals to the string file", func(t *testing.T) {
		b, err := json.Marshal(FileLocation())
		require.NoError(t, err)
		assert.Equal(t, `"file"`, string(b))
	})

	t.Run("unmarshal", func(t *testing.T) {
		var l RowLocation

		require.NoError(t, json.Unmarshal([]byte("7"), &l))
		idx, ok := l.Index()
		require.True(t, ok)
		assert.Equal(t, 7, idx)

		require.NoError(t, json.Unmarshal([]byte(`"file"`), &l))
		assert.True(t, l.IsFileLevel())

		require.NoError(t, json.Unmarshal([]byte("null"), &l))
		assert.True(t, l.IsFileLevel())

		assert.Error(t, json.Unmarshal([]byte(`"twelve"`), &l))
		assert.Error(t, json.Unmarshal([]byte("-3"), &l))
		assert.Error(t, json.Unmarshal([]byte("1.5"), &l))
		assert.Error(t, json.Unmarshal([]byte("[3]"), &l))
	})

	t.Run("round trips inside an error row", func(t *testing.T) {
		in := ErrorRow{Location: FileLocation(), Diagnostic: "column Fuel not found"}
		b, err := json.Marshal(in)
		require.NoError(t, err)

		var out ErrorRow
		require.NoError(t, json.Unmarshal(b, &out))
		assert.Equal(t, in, out)
	})
}

func TestRowLocationCompare(t *testing.T) {
	locs := []RowLocation{FileLocation(), NumericLocation(9), NumericLocation(2), NumericLocation(40)}
	sort.Slice(locs, func(i, j int) bool { return locs[i].Compare(locs[j]) < 0 })

	assert.Equal(t, []RowLocation{
		NumericLocation(2),
		NumericLocation(9),
		NumericLocation(40),
		FileLocation(),
	}, locs)

	assert.Zero(t, NumericLocation(5).Compare(NumericLocation(5)))
	assert.Zero(t, FileLocation().Compare(FileLocation()))
}

func TestRowLocationString(t *testing.T) {
	assert.Equal(t, "row 12", NumericLocation(12).String())
	assert.Equal(t, "file", FileLocation().String())
}
