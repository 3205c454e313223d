// Package parquet exports metric tables to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/forgepulse/forgepulse/schema"
	"github.com/parquet-go/parquet-go"
)

// SchemaOf infers a Parquet schema from a metric table. Every column is
// optional since any SQL result cell may be NULL; the leaf type comes
// from the first non-nil value in the column, defaulting to string.
func SchemaOf(table schema.Table) *parquet.Schema {
	group := parquet.Group{}
	for i, name := range table.Columns {
		group[name] = parquet.Optional(parquet.Compressed(leafNode(table, i), &parquet.Snappy))
	}
	return parquet.NewSchema("forgepulse", group)
}

func leafNode(table schema.Table, col int) parquet.Node {
	for _, row := range table.Rows {
		switch row[col].(type) {
		case nil:
			continue
		case int64, int32, int16, int:
			return parquet.Int(64)
		case float64, float32:
			return parquet.Leaf(parquet.DoubleType)
		case bool:
			return parquet.Leaf(parquet.BooleanType)
		case time.Time:
			return parquet.Timestamp(parquet.Nanosecond)
		default:
			return parquet.String()
		}
	}
	return parquet.String()
}

// WriteTable writes a metric table to a Parquet file at outputPath.
func WriteTable(table schema.Table, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[map[string]any](file, SchemaOf(table))
	rows := make([]map[string]any, 0, table.Len())
	for _, row := range table.Rows {
		record := make(map[string]any, len(table.Columns))
		for i, name := range table.Columns {
			record[name] = normalize(row[i])
		}
		rows = append(rows, record)
	}

	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// normalize widens values so they match the inferred leaf types.
func normalize(v any) any {
	switch val := v.(type) {
	case int32:
		return int64(val)
	case int16:
		return int64(val)
	case int:
		return int64(val)
	case float32:
		return float64(val)
	case int64, float64, bool, time.Time, string, nil:
		return val
	case []byte:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}
