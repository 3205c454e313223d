package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableAppend(t *testing.T) {
	tbl := NewTable("repo_id", "commit_count")
	assert.True(t, tbl.IsEmpty())

	tbl.Append(int64(1), int64(42))
	tbl.Append(int64(2), int64(7))

	assert.Equal(t, 2, tbl.Len())
	assert.False(t, tbl.IsEmpty())
}

func TestTableColumnIndex(t *testing.T) {
	tbl := NewTable("date", "commit_count")
	assert.Equal(t, 0, tbl.ColumnIndex("date"))
	assert.Equal(t, 1, tbl.ColumnIndex("commit_count"))
	assert.Equal(t, -1, tbl.ColumnIndex("missing"))
}

func TestTableRecords(t *testing.T) {
	tbl := NewTable("repo_id", "repo_name")
	tbl.Append(int64(3), "augur")

	records := tbl.Records()
	assert.Len(t, records, 1)
	assert.Equal(t, int64(3), records[0]["repo_id"])
	assert.Equal(t, "augur", records[0]["repo_name"])
}

func TestValidMaps(t *testing.T) {
	assert.Contains(t, ValidOutputModes, TextOut)
	assert.Contains(t, ValidPeriods, WeekPeriod)
	assert.NotContains(t, ValidPeriods, Period("hour"))
	assert.Contains(t, ValidTimeframes, AllTimeframe)
	assert.Len(t, ValidMetricCategories, len(AllMetricCategories))
}
