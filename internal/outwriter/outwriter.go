// Package outwriter has output and writer logic for metric tables.
package outwriter

import (
	"fmt"
	"io"
	"os"

	"github.com/forgepulse/forgepulse/core"
	"github.com/forgepulse/forgepulse/internal/contract"
	"github.com/forgepulse/forgepulse/internal/parquet"
	"github.com/forgepulse/forgepulse/schema"
)

// WriteTable renders one metric table in the configured output mode.
func WriteTable(table schema.Table, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, table.Records())
		}, "Saved JSON results")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTableCSV(w, table, cfg.Precision)
		}, "Saved CSV results")
	case schema.ParquetOut:
		if err := parquet.WriteTable(table, cfg.OutputFile); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", "Saved Parquet results", cfg.OutputFile)
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTableText(w, table, cfg)
		}, "Saved text results")
	}
}

// WriteMetricList renders the metric catalog, with colored category
// labels in text mode.
func WriteMetricList(descriptors []core.Descriptor, cfg *contract.Config) error {
	table := schema.NewTable("name", "category", "summary")
	useColors := cfg.UseColors && cfg.Output == schema.TextOut && cfg.OutputFile == ""
	for _, d := range descriptors {
		table.Append(d.Name, contract.GetCategoryLabel(d.Category, useColors), d.Summary)
	}
	return WriteTable(table, cfg)
}
