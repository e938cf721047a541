package sensors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckUnit(t *testing.T) {
	for _, unit := range []string{"c", "celsius", "f", "fahrenheit", "k", "kelvin"} {
		assert.NoError(t, CheckUnit(unit), "единица %q должна быть допустимой", unit)
	}

	// Регистр не учитывается
	assert.NoError(t, CheckUnit("F"))
	assert.NoError(t, CheckUnit("Kelvin"))

	assert.Error(t, CheckUnit("rankine"))
	assert.Error(t, CheckUnit(""))
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		celsius  float64
		unit     string
		expected float64
	}{
		{"цельсий без изменений", 45.678, "c", 45.68},
		{"полное имя цельсия", 45.678, "celsius", 45.68},
		{"фаренгейт", 100, "f", 212},
		{"фаренгейт ниже нуля", -40, "fahrenheit", -40},
		{"кельвин", 0, "k", 273.15},
		{"кельвин от рабочей температуры", 26.85, "kelvin", 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.celsius, tt.unit)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 0.001)
		})
	}

	_, err := Convert(50, "bogus")
	assert.Error(t, err)
}

func TestRoundToHundredth(t *testing.T) {
	assert.Equal(t, 45.68, RoundToHundredth(45.6789))
	assert.Equal(t, 45.67, RoundToHundredth(45.674))
	assert.Equal(t, -12.35, RoundToHundredth(-12.345))
}

func TestUnitSymbol(t *testing.T) {
	assert.Equal(t, "°C", UnitSymbol("c"))
	assert.Equal(t, "°F", UnitSymbol("fahrenheit"))
	assert.Equal(t, "K", UnitSymbol("k"))
}
