package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/forgepulse/forgepulse/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 1
	DefaultThreshold = 0.5
	MaxPrecision     = 6
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// DateOnlyFormat is the short date representation accepted on flags.
var DateOnlyFormat = time.DateOnly

// Config holds the runtime configuration for metric execution.
// This struct remains the "final, validated" config.
type Config struct {
	DBConnect  string // Please use env var as this is plaintext
	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	GroupID   int64
	RepoID    int64
	Period    schema.Period
	BeginDate time.Time // Zero value means "unset", defaulted by the catalog
	EndDate   time.Time // Zero value means "unset", defaulted by the catalog

	Year         int
	Threshold    float64
	Timeframe    schema.Timeframe
	CalendarYear int

	RepoOwner string
	RepoName  string

	TableName string // Destination table for SQLite export
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	DBConnect  string `mapstructure:"db-connect"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Precision  int    `mapstructure:"precision"`
	Width      int    `mapstructure:"width"`
	Color      string `mapstructure:"color"`

	// --- Scope and window flags shared by metric commands ---
	Group  int64  `mapstructure:"group"`
	Repo   int64  `mapstructure:"repo"`
	Period string `mapstructure:"period"`
	Begin  string `mapstructure:"begin"`
	End    string `mapstructure:"end"`

	// --- Fields from topCommittersCmd and ranked metrics ---
	Year         int     `mapstructure:"year"`
	Threshold    float64 `mapstructure:"threshold"`
	Timeframe    string  `mapstructure:"timeframe"`
	CalendarYear int     `mapstructure:"calendar-year"`

	// --- Fields from reposCmd.Flags() ---
	Owner string `mapstructure:"owner"`
	Name  string `mapstructure:"name"`

	// --- Fields from exportCmd.Flags() ---
	Table string `mapstructure:"table"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processScopeInputs(cfg, input); err != nil {
		return err
	}
	if err := processDateRange(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateWarehouseConnectionString validates the format of the PostgreSQL
// connection string before any pool is created.
func ValidateWarehouseConnectionString(connStr string) error {
	if connStr == "" {
		return fmt.Errorf("db-connect is required (set FORGEPULSE_DB_CONNECT or --db-connect)")
	}
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		return nil
	}
	if !strings.Contains(connStr, "host=") {
		return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
	}
	if !strings.Contains(connStr, "dbname=") {
		return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
	}
	return nil
}

// validateSimpleInputs processes and validates all non-scope fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.DBConnect = input.DBConnect
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.RepoOwner = strings.TrimSpace(input.Owner)
	cfg.RepoName = strings.TrimSpace(input.Name)
	cfg.TableName = strings.TrimSpace(input.Table)

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Precision and Output Validation ---
	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	// --- 2. Threshold Validation ---
	// 0 and 1 are both valid; only values outside the closed range fail.
	if input.Threshold < 0 || input.Threshold > 1 {
		return fmt.Errorf("%w: threshold must be between 0 and 1 inclusive (received %v)", ErrInvalidArgument, input.Threshold)
	}
	cfg.Threshold = input.Threshold

	cfg.Year = input.Year
	cfg.CalendarYear = input.CalendarYear

	// --- 3. Timeframe Validation ---
	cfg.Timeframe = schema.Timeframe(strings.ToLower(input.Timeframe))
	if _, ok := schema.ValidTimeframes[cfg.Timeframe]; !ok {
		return fmt.Errorf("invalid timeframe '%s'. must be all, year, month", input.Timeframe)
	}

	return nil
}

// processScopeInputs validates the group/repo scope selectors and the period.
func processScopeInputs(cfg *Config, input *ConfigRawInput) error {
	if input.Group < 0 || input.Repo < 0 {
		return fmt.Errorf("%w: group and repo identifiers must be positive", ErrInvalidArgument)
	}
	cfg.GroupID = input.Group
	cfg.RepoID = input.Repo

	cfg.Period = schema.Period(strings.ToLower(input.Period))
	if _, ok := schema.ValidPeriods[cfg.Period]; !ok {
		return fmt.Errorf("invalid period '%s'. must be day, week, month, year", input.Period)
	}

	return nil
}

// processDateRange parses the inclusive begin/end dates. Unset dates stay
// zero so the catalog can apply its clock-based defaults.
func processDateRange(cfg *Config, input *ConfigRawInput) error {
	parse := func(s string) (time.Time, error) {
		if t, err := time.Parse(DateOnlyFormat, s); err == nil {
			return t, nil
		}
		return time.Parse(DateTimeFormat, s)
	}

	if input.Begin != "" {
		t, err := parse(input.Begin)
		if err != nil {
			return fmt.Errorf("invalid begin date '%s'. Expected %s or %s: %w", input.Begin, DateOnlyFormat, DateTimeFormat, err)
		}
		cfg.BeginDate = t
	}

	if input.End != "" {
		t, err := parse(input.End)
		if err != nil {
			return fmt.Errorf("invalid end date '%s'. Expected %s or %s: %w", input.End, DateOnlyFormat, DateTimeFormat, err)
		}
		cfg.EndDate = t
	}

	if !cfg.BeginDate.IsZero() && !cfg.EndDate.IsZero() && cfg.BeginDate.After(cfg.EndDate) {
		return fmt.Errorf("begin date (%s) cannot be after end date (%s)", cfg.BeginDate.Format(DateOnlyFormat), cfg.EndDate.Format(DateOnlyFormat))
	}

	return nil
}
