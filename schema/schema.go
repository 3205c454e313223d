// Package schema has models, constants and global variables for all parts of forgepulse.
package schema

// Table is the uniform result shape for every metric: ordered named
// columns over positional rows. An empty table (zero rows) is a valid
// metric outcome, not an error.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// NewTable creates an empty table with the given column set.
func NewTable(columns ...string) Table {
	return Table{Columns: columns, Rows: [][]any{}}
}

// Append adds one row to the table.
func (t *Table) Append(values ...any) {
	t.Rows = append(t.Rows, values)
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// IsEmpty reports whether the table holds no rows.
func (t Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// ColumnIndex returns the position of a named column, or -1 when the
// column is not present.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Records converts the table into one map per row, keyed by column
// name. Used by the JSON writer and the MCP tool results.
func (t Table) Records() []map[string]any {
	records := make([]map[string]any, 0, len(t.Rows))
	for _, row := range t.Rows {
		record := make(map[string]any, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(row) {
				record[col] = row[i]
			}
		}
		records = append(records, record)
	}
	return records
}
