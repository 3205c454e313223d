package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/forgepulse/forgepulse/internal/contract"
	"github.com/forgepulse/forgepulse/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// writeWithFile handles file selection and writing with a success message.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	output, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	if output != os.Stdout {
		defer output.Close()
	}

	if err := writer(output); err != nil {
		return err
	}

	if output != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON encodes data as indented JSON.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// writeCSVWithHeader writes a CSV header followed by rows from the callback.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return err
	}
	if err := writeRows(writer); err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}

// createFormatters returns float and integer format helpers for a precision.
func createFormatters(precision int) (func(float64) string, string) {
	floatFmt := fmt.Sprintf("%%.%df", precision)
	fmtFloat := func(f float64) string {
		return fmt.Sprintf(floatFmt, f)
	}
	return fmtFloat, "%d"
}

// formatCell renders a single table value for text or CSV output.
func formatCell(v any, fmtFloat func(float64) string) string {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		return val.Format(contract.DateTimeFormat)
	case float64:
		return fmtFloat(val)
	case float32:
		return fmtFloat(float64(val))
	case string:
		return val
	case []byte:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}

func formatRows(table schema.Table, precision int) [][]string {
	fmtFloat, _ := createFormatters(precision)
	data := make([][]string, 0, table.Len())
	for _, row := range table.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = formatCell(v, fmtFloat)
		}
		data = append(data, cells)
	}
	return data
}

func writeTableCSV(w io.Writer, table schema.Table, precision int) error {
	return writeCSVWithHeader(w, table.Columns, func(writer *csv.Writer) error {
		for _, row := range formatRows(table, precision) {
			if err := writer.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeTableText(w io.Writer, table schema.Table, cfg *contract.Config) error {
	width := GetOutputWidth(cfg)
	data := formatRows(table, cfg.Precision)
	for _, row := range data {
		for i, cell := range row {
			row[i] = truncateCell(cell, width, len(table.Columns))
		}
	}

	writer := tablewriter.NewWriter(w)
	writer.Header(table.Columns)
	writer.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := writer.Bulk(data); err != nil {
		return err
	}
	if err := writer.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%d rows\n", table.Len())
	return err
}
