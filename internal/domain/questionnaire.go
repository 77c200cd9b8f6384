package domain

// Questionnaire dimensions.
const (
	NumQuestions   = 10
	NumChoices     = 5
	MaxAnswerValue = NumChoices - 1
)

// Question is one entry of the fixed self-assessment questionnaire.
// Choices are ordered so that choosing index i scores i points.
type Question struct {
	Text    string             `json:"text"`
	Choices [NumChoices]string `json:"choices"`
}

// questions is the fixed Fitzpatrick self-assessment catalog. The first
// four questions cover genetic disposition, the next four reaction to sun
// exposure, the last two tanning habits.
var questions = [NumQuestions]Question{
	{
		Text: "What color are your eyes?",
		Choices: [NumChoices]string{
			"Light blue, gray, or green",
			"Blue, gray, or green",
			"Hazel or light brown",
			"Dark brown",
			"Brownish black",
		},
	},
	{
		Text: "What is your natural hair color?",
		Choices: [NumChoices]string{
			"Sandy red",
			"Blond",
			"Chestnut or dark blond",
			"Dark brown",
			"Black",
		},
	},
	{
		Text: "What color is your skin in areas never exposed to the sun?",
		Choices: [NumChoices]string{
			"Reddish",
			"Very pale",
			"Pale with a beige tint",
			"Light brown",
			"Dark brown",
		},
	},
	{
		Text: "Do you have freckles on unexposed areas?",
		Choices: [NumChoices]string{
			"Many",
			"Several",
			"A few",
			"Very few",
			"None",
		},
	},
	{
		Text: "What happens when you stay in the sun too long?",
		Choices: [NumChoices]string{
			"Painful redness, blistering, and peeling",
			"Blistering followed by peeling",
			"Burns sometimes followed by peeling",
			"Rarely burns",
			"Never had burns",
		},
	},
	{
		Text: "To what degree do you turn brown?",
		Choices: [NumChoices]string{
			"Hardly or not at all",
			"A light tan",
			"A reasonable tan",
			"Tan very easily",
			"Turn dark brown quickly",
		},
	},
	{
		Text: "Do you turn brown within several hours of sun exposure?",
		Choices: [NumChoices]string{
			"Never",
			"Seldom",
			"Sometimes",
			"Often",
			"Always",
		},
	},
	{
		Text: "How does your face react to the sun?",
		Choices: [NumChoices]string{
			"Very sensitive",
			"Sensitive",
			"Normal",
			"Very resistant",
			"Never had a problem",
		},
	},
	{
		Text: "When did you last expose your body to the sun, a sunlamp, or tanning cream?",
		Choices: [NumChoices]string{
			"More than 3 months ago",
			"2 to 3 months ago",
			"1 to 2 months ago",
			"Less than a month ago",
			"Less than 2 weeks ago",
		},
	},
	{
		Text: "How often do you expose your face to the sun?",
		Choices: [NumChoices]string{
			"Never",
			"Hardly ever",
			"Sometimes",
			"Often",
			"Always",
		},
	},
}

// Questions returns the questionnaire in presentation order. The slice is
// a fresh copy; callers may modify it freely.
func Questions() []Question {
	return append([]Question(nil), questions[:]...)
}

// QuestionAt returns the catalog entry at the zero-based index i, and
// whether the index is in range.
func QuestionAt(i int) (Question, bool) {
	if i < 0 || i >= NumQuestions {
		return Question{}, false
	}
	return questions[i], true
}
