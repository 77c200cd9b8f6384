package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyUVIndex(t *testing.T) {
	tests := []struct {
		name     string
		uvIndex  float64
		expected RiskTier
	}{
		{"zero", 0, RiskLow},
		{"low interior", 1, RiskLow},
		{"low upper boundary", 2, RiskLow},
		{"moderate lower boundary", 3, RiskModerate},
		{"moderate interior", 4, RiskModerate},
		{"moderate upper boundary", 5, RiskModerate},
		{"high lower boundary", 6, RiskHigh},
		{"high upper boundary", 7, RiskHigh},
		{"very high lower boundary", 8, RiskVeryHigh},
		{"very high interior", 9, RiskVeryHigh},
		{"very high upper boundary", 10, RiskVeryHigh},
		{"extreme lower boundary", 11, RiskExtreme},
		{"extreme interior", 14, RiskExtreme},

		// Readings round to the nearest integer before the table applies.
		{"rounds down to low", 2.4, RiskLow},
		{"rounds up to moderate", 2.5, RiskModerate},
		{"rounds down to high", 6.4, RiskHigh},
		{"rounds up to very high", 7.5, RiskVeryHigh},
		{"rounds down to very high", 10.4, RiskVeryHigh},
		{"rounds up to extreme", 10.5, RiskExtreme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ClassifyUVIndex(tt.uvIndex)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Tier)
			assert.Equal(t, tt.uvIndex, result.UVIndex)
			assert.Equal(t, int(math.Round(tt.uvIndex)), result.RoundedIndex)
			assert.NotEmpty(t, result.Label)
			assert.NotEmpty(t, result.Color)
			assert.NotEmpty(t, result.Advice)
		})
	}
}

func TestClassifyUVIndexInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		uvIndex float64
	}{
		{"NaN", math.NaN()},
		{"positive infinity", math.Inf(1)},
		{"negative infinity", math.Inf(-1)},
		{"negative", -1},
		{"small negative", -0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ClassifyUVIndex(tt.uvIndex)
			assert.ErrorIs(t, err, ErrInvalidUVIndex)
		})
	}
}

func TestClassifyUVIndexMeasures(t *testing.T) {
	t.Run("counts escalate by tier", func(t *testing.T) {
		expected := map[RiskTier]int{
			RiskLow:      4,
			RiskModerate: 5,
			RiskHigh:     6,
			RiskVeryHigh: 7,
			RiskExtreme:  7,
		}
		for tier, count := range expected {
			assert.Len(t, RecommendedMeasures(tier), count, "tier %s", tier)
		}
	})

	t.Run("higher tiers append, never reorder", func(t *testing.T) {
		order := []RiskTier{RiskLow, RiskModerate, RiskHigh, RiskVeryHigh, RiskExtreme}
		prev := RecommendedMeasures(order[0])
		for _, tier := range order[1:] {
			current := RecommendedMeasures(tier)
			require.GreaterOrEqual(t, len(current), len(prev))
			assert.Equal(t, prev, current[:len(prev)], "tier %s must extend the previous tier", tier)
			prev = current
		}
	})

	t.Run("low tier essentials", func(t *testing.T) {
		measures := RecommendedMeasures(RiskLow)
		assert.Equal(t, []Measure{MeasureSunglasses, MeasureSunscreen, MeasureHat, MeasureProtectiveClothing}, measures)
	})

	t.Run("extreme includes avoid sun", func(t *testing.T) {
		measures := RecommendedMeasures(RiskExtreme)
		assert.Equal(t, MeasureAvoidSun, measures[len(measures)-1])
	})

	t.Run("unknown tier", func(t *testing.T) {
		assert.Nil(t, RecommendedMeasures(RiskTier("sideways")))
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		first := RecommendedMeasures(RiskLow)
		first[0] = MeasureAvoidSun

		second := RecommendedMeasures(RiskLow)
		assert.Equal(t, MeasureSunglasses, second[0])
	})
}

func TestClassifyUVIndexAdvisoryText(t *testing.T) {
	t.Run("high tier warns about midday", func(t *testing.T) {
		result, err := ClassifyUVIndex(6.4)

		require.NoError(t, err)
		assert.Equal(t, RiskHigh, result.Tier)
		assert.Equal(t, 6, result.RoundedIndex)
		assert.Len(t, result.Measures, 6)
		assert.Contains(t, result.Advice, "midday")
	})

	t.Run("extreme tier says avoid", func(t *testing.T) {
		result, err := ClassifyUVIndex(12)

		require.NoError(t, err)
		assert.Contains(t, result.Advice, "Avoid")
	})
}

func TestClassifyUVIndexIdempotent(t *testing.T) {
	first, err := ClassifyUVIndex(7.2)
	require.NoError(t, err)

	// Mutating a returned advisory must not leak into later calls.
	first.Measures[0] = MeasureAvoidSun

	second, err := ClassifyUVIndex(7.2)
	require.NoError(t, err)

	assert.Equal(t, MeasureSunglasses, second.Measures[0])
	third, err := ClassifyUVIndex(7.2)
	require.NoError(t, err)
	assert.Equal(t, second, third)
}

func TestRiskTierLabel(t *testing.T) {
	tests := []struct {
		name     string
		tier     RiskTier
		expected string
	}{
		{"low", RiskLow, "Low"},
		{"very high", RiskVeryHigh, "Very High"},
		{"extreme", RiskExtreme, "Extreme"},
		{"unknown falls through to raw value", RiskTier("sideways"), "sideways"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.tier.Label())
		})
	}
}
