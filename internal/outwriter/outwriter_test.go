package outwriter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/forgepulse/forgepulse/internal/contract"
	"github.com/forgepulse/forgepulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() schema.Table {
	table := schema.NewTable("repo_id", "date", "commit_count", "ratio")
	table.Append(int64(1), time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), int64(42), 0.5)
	table.Append(int64(2), time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC), int64(7), nil)
	return table
}

func TestWriteTableCSV(t *testing.T) {
	var buf bytes.Buffer
	err := writeTableCSV(&buf, sampleTable(), 1)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "repo_id,date,commit_count,ratio", lines[0])
	assert.Equal(t, "1,2023-01-02T00:00:00Z,42,0.5", lines[1])
	assert.Equal(t, "2,2023-01-03T00:00:00Z,7,", lines[2])
}

func TestWriteJSONRecords(t *testing.T) {
	var buf bytes.Buffer
	err := writeJSON(&buf, sampleTable().Records())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"commit_count": 42`)
	assert.Contains(t, buf.String(), `"repo_id": 2`)
}

func TestWriteTableText(t *testing.T) {
	var buf bytes.Buffer
	cfg := &contract.Config{Precision: 1, Width: 120}
	err := writeTableText(&buf, sampleTable(), cfg)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "commit_count")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "2 rows")
}

func TestWriteTableToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	cfg := &contract.Config{Output: schema.CSVOut, OutputFile: path, Precision: 2}

	err := WriteTable(sampleTable(), cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "0.50")
}

func TestFormatCell(t *testing.T) {
	fmtFloat, _ := createFormatters(2)

	assert.Equal(t, "", formatCell(nil, fmtFloat))
	assert.Equal(t, "3.14", formatCell(3.14159, fmtFloat))
	assert.Equal(t, "hello", formatCell("hello", fmtFloat))
	assert.Equal(t, "5", formatCell(int64(5), fmtFloat))
	assert.Equal(t, "2023-06-15T12:00:00Z",
		formatCell(time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC), fmtFloat))
}

func TestTruncateCell(t *testing.T) {
	long := strings.Repeat("x", 200)
	got := truncateCell(long, 80, 4)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Less(t, len(got), len(long))

	assert.Equal(t, "short", truncateCell("short", 80, 4))
}
