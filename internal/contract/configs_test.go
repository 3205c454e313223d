package contract

import (
	"errors"
	"testing"
	"time"

	"github.com/forgepulse/forgepulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		DBConnect: "host=localhost dbname=augur",
		Output:    "text",
		Precision: 1,
		Color:     "yes",
		Group:     1,
		Period:    "day",
		Timeframe: "all",
		Threshold: 0.5,
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.DayPeriod, cfg.Period)
	assert.Equal(t, schema.AllTimeframe, cfg.Timeframe)
	assert.True(t, cfg.UseColors)
	assert.True(t, cfg.BeginDate.IsZero())
	assert.True(t, cfg.EndDate.IsZero())
}

func TestProcessAndValidateOutputMode(t *testing.T) {
	input := validInput()
	input.Output = "xml"
	assert.Error(t, ProcessAndValidate(&Config{}, input))

	input = validInput()
	input.Output = "parquet"
	assert.Error(t, ProcessAndValidate(&Config{}, input), "parquet without output file")

	input.OutputFile = "out.parquet"
	assert.NoError(t, ProcessAndValidate(&Config{}, input))
}

func TestProcessAndValidateThreshold(t *testing.T) {
	for _, threshold := range []float64{-0.1, 1.1} {
		input := validInput()
		input.Threshold = threshold
		err := ProcessAndValidate(&Config{}, input)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidArgument))
	}

	// Boundary values are valid.
	for _, threshold := range []float64{0, 1} {
		input := validInput()
		input.Threshold = threshold
		assert.NoError(t, ProcessAndValidate(&Config{}, input))
	}
}

func TestProcessAndValidatePeriod(t *testing.T) {
	input := validInput()
	input.Period = "hour"
	assert.Error(t, ProcessAndValidate(&Config{}, input))
}

func TestProcessAndValidateDates(t *testing.T) {
	input := validInput()
	input.Begin = "2023-01-01"
	input.End = "2023-12-31"
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), cfg.BeginDate)

	input.Begin = "2024-01-01"
	assert.Error(t, ProcessAndValidate(&Config{}, input), "begin after end")

	input.Begin = "not-a-date"
	assert.Error(t, ProcessAndValidate(&Config{}, input))
}

func TestValidateWarehouseConnectionString(t *testing.T) {
	assert.Error(t, ValidateWarehouseConnectionString(""))
	assert.Error(t, ValidateWarehouseConnectionString("host=localhost"))
	assert.NoError(t, ValidateWarehouseConnectionString("host=localhost dbname=augur"))
	assert.NoError(t, ValidateWarehouseConnectionString("postgres://augur@localhost:5432/augur"))
}
