package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/forgepulse/forgepulse/schema"
)

// Color variables for console output.
var (
	EvolutionColor    = color.New(color.FgGreen)               // evolution metrics track growth over time.
	RiskColor         = color.New(color.FgRed, color.Bold)     // risk metrics flag sustainability concerns.
	ValueColor        = color.New(color.FgYellow)              // value metrics track popularity signals.
	ExperimentalColor = color.New(color.FgMagenta, color.Bold) // experimental metrics are subject to change.
	UtilityColor      = color.New(color.FgCyan)                // utility lookups are informational.
)

// GetCategoryLabel returns the category name, colored for console
// output when colors are enabled.
func GetCategoryLabel(category schema.MetricCategory, useColors bool) string {
	text := string(category)
	if !useColors {
		return text
	}

	switch category {
	case schema.EvolutionCategory:
		return EvolutionColor.Sprint(text)
	case schema.RiskCategory:
		return RiskColor.Sprint(text)
	case schema.ValueCategory:
		return ValueColor.Sprint(text)
	case schema.ExperimentalCategory:
		return ExperimentalColor.Sprint(text)
	default: // utility
		return UtilityColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the
// provided file path. An empty path means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
