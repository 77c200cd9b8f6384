// Package domain models UV risk classification and skin-sensitivity scoring.
//
// # UV Index
//
// The UV index is the WHO standard scalar for ultraviolet radiation
// intensity. Weather providers report it as a real number, observed 0 to
// ~14+ with no enforced upper bound. Readings are rounded to the nearest
// integer before classification; the rounded value selects a risk tier:
//
//	<= 2   low        minimal protection needed
//	3-5    moderate   cover up, use sunscreen
//	6-7    high       reduce midday exposure
//	8-10   very_high  minimize exposure, reapply frequently
//	> 10   extreme    avoid sun exposure entirely
//
// Each tier carries a display label, a color token, a single advisory
// sentence, and an ordered list of protective measures. Measure lists grow
// by appending as tiers escalate, in this fixed order:
//
//	sunglasses, sunscreen, hat, protective_clothing, shade,
//	reduced_exposure_time, avoid_sun
//
// low shows the first 4 measures, moderate 5, high 6, very_high and extreme
// all 7. See [ClassifyUVIndex].
//
// # Skin Sensitivity
//
// The questionnaire is a ten-question Fitzpatrick-style self assessment:
// eye color, hair color, unexposed skin color, freckling, burn history,
// tanning degree, tanning frequency, facial sensitivity, recency of sun
// exposure, and facial exposure frequency. Every answer scores 0-4 and the
// sum (0-40) selects one of six skin types:
//
//	0-6    type_1    7-13   type_2    14-20  type_3
//	21-27  type_4    28-34  type_5    35-40  type_6
//
// Types 1-2 burn easily and should reapply sunscreen every 1-2 hours; types
// 3-6 every 2-3 hours, with 5-6 framed as better protected but still
// needing reapplication. Scoring is defined only over complete answer
// vectors; a partial vector fails with [ErrIncompleteAnswers] rather than
// yielding a provisional type. See [ScoreQuestionnaire].
//
// # Validation
//
// Classification never falls back to a default: a NaN, infinite, or
// negative UV index fails with [ErrInvalidUVIndex], and an answer outside
// 0-4 fails with [ErrInvalidAnswer]. Both entry points are pure and
// deterministic; identical input always yields identical output.
package domain
