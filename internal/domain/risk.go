package domain

import (
	"errors"
	"fmt"
	"math"
)

// RiskTier buckets a UV index reading into one of five advisory bands.
type RiskTier string

// Risk tiers in ascending severity order.
const (
	RiskLow      RiskTier = "low"
	RiskModerate RiskTier = "moderate"
	RiskHigh     RiskTier = "high"
	RiskVeryHigh RiskTier = "very_high"
	RiskExtreme  RiskTier = "extreme"
)

// Measure is one protective action from the fixed advisory vocabulary.
type Measure string

// Protective measures in escalation order. Higher tiers append to the list
// of lower tiers; the order itself never changes.
const (
	MeasureSunglasses          Measure = "sunglasses"
	MeasureSunscreen           Measure = "sunscreen"
	MeasureHat                 Measure = "hat"
	MeasureProtectiveClothing  Measure = "protective_clothing"
	MeasureShade               Measure = "shade"
	MeasureReducedExposureTime Measure = "reduced_exposure_time"
	MeasureAvoidSun            Measure = "avoid_sun"
)

// ErrInvalidUVIndex reports a UV index that is NaN, infinite, or negative.
var ErrInvalidUVIndex = errors.New("invalid uv index")

// UVAdvisory is the full classification result for one UV index reading.
type UVAdvisory struct {
	UVIndex      float64   `json:"uv_index"`
	RoundedIndex int       `json:"rounded_index"`
	Tier         RiskTier  `json:"tier"`
	Label        string    `json:"label"`
	Color        string    `json:"color"`
	Advice       string    `json:"advice"`
	Measures     []Measure `json:"measures"`
}

// escalation is the complete measure progression. Each tier recommends a
// prefix of this list.
var escalation = [...]Measure{
	MeasureSunglasses,
	MeasureSunscreen,
	MeasureHat,
	MeasureProtectiveClothing,
	MeasureShade,
	MeasureReducedExposureTime,
	MeasureAvoidSun,
}

// tierProfile holds the fixed display attributes of one risk tier.
type tierProfile struct {
	label    string
	color    string
	advice   string
	measures int // prefix length of the escalation list
}

var tierProfiles = map[RiskTier]tierProfile{
	RiskLow: {
		label:    "Low",
		color:    "#4caf50",
		advice:   "Minimal protection needed; unprotected exposure is low risk for most people.",
		measures: 4,
	},
	RiskModerate: {
		label:    "Moderate",
		color:    "#ffeb3b",
		advice:   "Cover up and use sunscreen when spending time outside.",
		measures: 5,
	},
	RiskHigh: {
		label:    "High",
		color:    "#ff9800",
		advice:   "Reduce midday exposure; seek shade and keep skin covered.",
		measures: 6,
	},
	RiskVeryHigh: {
		label:    "Very High",
		color:    "#f44336",
		advice:   "Minimize sun exposure between 10am and 4pm; reapply sunscreen frequently.",
		measures: 7,
	},
	RiskExtreme: {
		label:    "Extreme",
		color:    "#9c27b0",
		advice:   "Avoid sun exposure entirely where possible; unprotected skin burns in minutes.",
		measures: 7,
	},
}

// ClassifyUVIndex maps a raw UV index reading to its advisory. The reading
// is rounded to the nearest integer before the threshold table applies, so
// 6.4 classifies as high and 7.5 as very_high. A NaN, infinite, or negative
// reading fails with ErrInvalidUVIndex; there is no fallback tier.
func ClassifyUVIndex(uvIndex float64) (UVAdvisory, error) {
	if math.IsNaN(uvIndex) || math.IsInf(uvIndex, 0) {
		return UVAdvisory{}, fmt.Errorf("%w: reading is not a finite number", ErrInvalidUVIndex)
	}
	if uvIndex < 0 {
		return UVAdvisory{}, fmt.Errorf("%w: negative reading %g", ErrInvalidUVIndex, uvIndex)
	}

	rounded := int(math.Round(uvIndex))
	tier := tierForIndex(rounded)
	profile := tierProfiles[tier]

	return UVAdvisory{
		UVIndex:      uvIndex,
		RoundedIndex: rounded,
		Tier:         tier,
		Label:        profile.label,
		Color:        profile.color,
		Advice:       profile.advice,
		Measures:     RecommendedMeasures(tier),
	}, nil
}

// tierForIndex applies the threshold table to a rounded UV index.
// Intervals are closed and evaluated top-down; the first match wins.
func tierForIndex(rounded int) RiskTier {
	switch {
	case rounded <= 2:
		return RiskLow
	case rounded <= 5:
		return RiskModerate
	case rounded <= 7:
		return RiskHigh
	case rounded <= 10:
		return RiskVeryHigh
	default:
		return RiskExtreme
	}
}

// RecommendedMeasures returns the ordered protective measures for a tier.
// The slice is a fresh copy; callers may modify it freely.
func RecommendedMeasures(tier RiskTier) []Measure {
	profile, ok := tierProfiles[tier]
	if !ok {
		return nil
	}
	return append([]Measure(nil), escalation[:profile.measures]...)
}

// Label returns the display label for the tier, or the raw value if the
// tier is unknown.
func (t RiskTier) Label() string {
	if profile, ok := tierProfiles[t]; ok {
		return profile.label
	}
	return string(t)
}
