package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// Period represents the date_trunc granularity for timeseries metrics.
	Period string

	// MetricCategory groups catalog metrics for listing and docs.
	MetricCategory string

	// Timeframe selects the rollup window for ranked annual metrics.
	Timeframe string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All periods supported by the warehouse date_trunc calls.
const (
	DayPeriod   Period = "day" // default
	WeekPeriod  Period = "week"
	MonthPeriod Period = "month"
	YearPeriod  Period = "year"
)

// All metric categories.
const (
	EvolutionCategory    MetricCategory = "evolution"
	RiskCategory         MetricCategory = "risk"
	ValueCategory        MetricCategory = "value"
	ExperimentalCategory MetricCategory = "experimental"
	UtilityCategory      MetricCategory = "utility"
)

// All timeframes for ranked annual metrics.
const (
	AllTimeframe   Timeframe = "all" // default
	YearTimeframe  Timeframe = "year"
	MonthTimeframe Timeframe = "month"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidPeriods lists all valid timeseries periods.
var ValidPeriods = map[Period]struct{}{
	DayPeriod:   {},
	WeekPeriod:  {},
	MonthPeriod: {},
	YearPeriod:  {},
}

// ValidMetricCategories lists all valid metric categories.
var ValidMetricCategories = map[MetricCategory]struct{}{
	EvolutionCategory:    {},
	RiskCategory:         {},
	ValueCategory:        {},
	ExperimentalCategory: {},
	UtilityCategory:      {},
}

// ValidTimeframes lists all valid ranked-metric timeframes.
var ValidTimeframes = map[Timeframe]struct{}{
	AllTimeframe:   {},
	YearTimeframe:  {},
	MonthTimeframe: {},
}

// AllMetricCategories returns categories in listing order.
var AllMetricCategories = []MetricCategory{
	EvolutionCategory,
	RiskCategory,
	ValueCategory,
	ExperimentalCategory,
	UtilityCategory,
}
