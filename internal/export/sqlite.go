// Package export persists metric tables into local SQLite files for
// offline analysis.
package export

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/forgepulse/forgepulse/internal/contract"
	"github.com/forgepulse/forgepulse/schema"
	_ "modernc.org/sqlite"
)

// WriteSQLite writes a metric table into tableName inside the SQLite
// database at path, replacing any previous export of the same table.
func WriteSQLite(table schema.Table, path, tableName string) error {
	if tableName == "" {
		return fmt.Errorf("%w: export table name is required", contract.ErrInvalidArgument)
	}
	if len(table.Columns) == 0 {
		return fmt.Errorf("%w: table has no columns", contract.ErrInvalidArgument)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %q", tableName)); err != nil {
		return fmt.Errorf("failed to reset export table: %w", err)
	}
	if _, err := db.Exec(createStatement(table, tableName)); err != nil {
		return fmt.Errorf("failed to create export table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin export transaction: %w", err)
	}

	stmt, err := tx.Prepare(insertStatement(table, tableName))
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare export insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, row := range table.Rows {
		values := make([]any, len(row))
		for i, v := range row {
			values[i] = sqliteValue(v)
		}
		if _, err := stmt.Exec(values...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert export row: %w", err)
		}
	}

	return tx.Commit()
}

func createStatement(table schema.Table, tableName string) string {
	defs := make([]string, len(table.Columns))
	for i, name := range table.Columns {
		defs[i] = fmt.Sprintf("%q %s", name, columnType(table, i))
	}
	return fmt.Sprintf("CREATE TABLE %q (%s)", tableName, strings.Join(defs, ", "))
}

func insertStatement(table schema.Table, tableName string) string {
	names := make([]string, len(table.Columns))
	marks := make([]string, len(table.Columns))
	for i, name := range table.Columns {
		names[i] = fmt.Sprintf("%q", name)
		marks[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %q (%s) VALUES (%s)",
		tableName, strings.Join(names, ", "), strings.Join(marks, ", "))
}

func columnType(table schema.Table, col int) string {
	for _, row := range table.Rows {
		switch row[col].(type) {
		case nil:
			continue
		case int64, int32, int16, int, bool:
			return "INTEGER"
		case float64, float32:
			return "REAL"
		default:
			return "TEXT"
		}
	}
	return "TEXT"
}

// sqliteValue maps warehouse values onto sqlite's storage classes.
func sqliteValue(v any) any {
	switch val := v.(type) {
	case time.Time:
		return val.Format(contract.DateTimeFormat)
	case []byte:
		return string(val)
	default:
		return val
	}
}
