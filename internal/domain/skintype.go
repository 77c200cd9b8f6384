package domain

import (
	"errors"
	"fmt"
	"time"
)

// SkinType is a Fitzpatrick-style sensitivity class derived from the
// questionnaire score.
type SkinType string

// Skin types in ascending resistance order.
const (
	SkinType1 SkinType = "type_1"
	SkinType2 SkinType = "type_2"
	SkinType3 SkinType = "type_3"
	SkinType4 SkinType = "type_4"
	SkinType5 SkinType = "type_5"
	SkinType6 SkinType = "type_6"
)

// Questionnaire validation errors.
var (
	// ErrIncompleteAnswers reports a scoring attempt with unanswered questions.
	ErrIncompleteAnswers = errors.New("incomplete answers")
	// ErrInvalidAnswer reports an answer outside the 0-4 choice range.
	ErrInvalidAnswer = errors.New("invalid answer")
)

// SkinAssessment is the resolved result of a completed questionnaire.
type SkinAssessment struct {
	Score         int      `json:"score"`
	SkinType      SkinType `json:"skin_type"`
	Label         string   `json:"label"`
	Swatch        string   `json:"swatch"`
	ReapplyAdvice string   `json:"reapply_advice"`
}

// skinProfile holds the fixed display attributes of one skin type.
type skinProfile struct {
	label   string
	swatch  string
	reapply string
}

// Reapplication advice comes in three bands: types 1-2 burn easily, types
// 3-4 are moderate, types 5-6 are better protected but still need cover.
const (
	reapplyBurnsEasily = "Reapply sunscreen every 1 to 2 hours; this skin type burns easily."
	reapplyModerate    = "Reapply sunscreen every 2 to 3 hours."
	reapplyResistant   = "Reapply sunscreen every 2 to 3 hours; better protected, but regular reapplication still matters."
)

var skinProfiles = map[SkinType]skinProfile{
	SkinType1: {
		label:   "Very fair skin that always burns and never tans",
		swatch:  "#f5d6c6",
		reapply: reapplyBurnsEasily,
	},
	SkinType2: {
		label:   "Fair skin that burns easily and tans minimally",
		swatch:  "#eec3a8",
		reapply: reapplyBurnsEasily,
	},
	SkinType3: {
		label:   "Medium skin that burns moderately and tans gradually",
		swatch:  "#d9a678",
		reapply: reapplyModerate,
	},
	SkinType4: {
		label:   "Olive skin that burns minimally and tans easily",
		swatch:  "#b97f50",
		reapply: reapplyModerate,
	},
	SkinType5: {
		label:   "Brown skin that rarely burns and tans darkly",
		swatch:  "#8c5a33",
		reapply: reapplyResistant,
	},
	SkinType6: {
		label:   "Deeply pigmented skin that never burns",
		swatch:  "#5a3b22",
		reapply: reapplyResistant,
	},
}

// ScoreQuestionnaire sums a complete ten-answer vector and classifies it.
// A nil slot or a vector shorter than ten answers fails with
// ErrIncompleteAnswers; an answer outside 0-4 or a vector longer than ten
// fails with ErrInvalidAnswer. Slots are validated in question order and
// the first failure wins, so callers get a stable error for a given vector.
func ScoreQuestionnaire(answers []*int) (SkinAssessment, error) {
	if len(answers) < NumQuestions {
		return SkinAssessment{}, fmt.Errorf("%w: got %d of %d answers", ErrIncompleteAnswers, len(answers), NumQuestions)
	}
	if len(answers) > NumQuestions {
		return SkinAssessment{}, fmt.Errorf("%w: got %d answers, want %d", ErrInvalidAnswer, len(answers), NumQuestions)
	}

	score := 0
	for i, answer := range answers {
		if answer == nil {
			return SkinAssessment{}, fmt.Errorf("%w: question %d unanswered", ErrIncompleteAnswers, i+1)
		}
		if *answer < 0 || *answer > MaxAnswerValue {
			return SkinAssessment{}, fmt.Errorf("%w: question %d scored %d, want 0-%d", ErrInvalidAnswer, i+1, *answer, MaxAnswerValue)
		}
		score += *answer
	}

	skinType := skinTypeForScore(score)
	profile := skinProfiles[skinType]

	return SkinAssessment{
		Score:         score,
		SkinType:      skinType,
		Label:         profile.label,
		Swatch:        profile.swatch,
		ReapplyAdvice: profile.reapply,
	}, nil
}

// skinTypeForScore applies the score boundaries. Intervals are closed and
// evaluated top-down; the first match wins.
func skinTypeForScore(score int) SkinType {
	switch {
	case score <= 6:
		return SkinType1
	case score <= 13:
		return SkinType2
	case score <= 20:
		return SkinType3
	case score <= 27:
		return SkinType4
	case score <= 34:
		return SkinType5
	default:
		return SkinType6
	}
}

// ReapplyInterval returns the shortest recommended gap between sunscreen
// applications for the type. Used as the default reminder period.
func (s SkinType) ReapplyInterval() time.Duration {
	switch s {
	case SkinType1, SkinType2:
		return time.Hour
	default:
		return 2 * time.Hour
	}
}
