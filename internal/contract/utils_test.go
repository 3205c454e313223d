package contract

import (
	"testing"

	"github.com/forgepulse/forgepulse/schema"
	"github.com/stretchr/testify/assert"
)

func TestGetCategoryLabel(t *testing.T) {
	// Plain labels never carry escape codes.
	assert.Equal(t, "evolution", GetCategoryLabel(schema.EvolutionCategory, false))
	assert.Equal(t, "risk", GetCategoryLabel(schema.RiskCategory, false))

	// Colored labels still contain the category text.
	assert.Contains(t, GetCategoryLabel(schema.ValueCategory, true), "value")
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.True(t, got)
	}
	for _, s := range []string{"no", "False", "0"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.False(t, got)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}
