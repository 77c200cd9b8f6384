// Package session holds questionnaire progress between requests.
//
// A session moves through two states: answering, where any question may be
// set or revised and the active-question pointer moves freely, and
// complete, reached only through an explicit result request once all ten
// slots are filled. Answering the last question never completes a session
// on its own; the user confirms by asking for the result.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/chriswiesanjaya/sun-protection/internal/domain"
)

// State names a phase of the questionnaire session lifecycle.
type State string

const (
	StateAnswering State = "answering"
	StateComplete  State = "complete"
)

// Session errors.
var (
	// ErrSessionNotFound reports an unknown or expired session ID.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionComplete reports a mutation attempt on a completed session.
	ErrSessionComplete = errors.New("session already complete")
)

// Session tracks one user's progress through the questionnaire. Methods are
// not safe for concurrent use on their own; the Store serializes access.
type Session struct {
	ID           string
	State        State
	CurrentIndex int
	Answers      []*int // nil slot = unanswered
	Assessment   *domain.SkinAssessment

	lastSeen time.Time
}

// SetAnswer records the answer for a zero-based question index. Any
// question may be set or revised at any time while the session is
// answering; a completed session must be reset first.
func (s *Session) SetAnswer(question, value int) error {
	if s.State == StateComplete {
		return ErrSessionComplete
	}
	if question < 0 || question >= domain.NumQuestions {
		return fmt.Errorf("%w: question index %d out of range", domain.ErrInvalidAnswer, question)
	}
	if value < 0 || value > domain.MaxAnswerValue {
		return fmt.Errorf("%w: question %d scored %d, want 0-%d", domain.ErrInvalidAnswer, question+1, value, domain.MaxAnswerValue)
	}

	v := value
	s.Answers[question] = &v
	return nil
}

// Advance moves the active question forward, clamping at the last question.
func (s *Session) Advance() error {
	if s.State == StateComplete {
		return ErrSessionComplete
	}
	if s.CurrentIndex < domain.NumQuestions-1 {
		s.CurrentIndex++
	}
	return nil
}

// Retreat moves the active question backward, clamping at the first question.
func (s *Session) Retreat() error {
	if s.State == StateComplete {
		return ErrSessionComplete
	}
	if s.CurrentIndex > 0 {
		s.CurrentIndex--
	}
	return nil
}

// Result confirms the questionnaire and scores it. This is the only
// transition into the complete state. An incomplete vector fails with the
// scoring error and leaves the session untouched; asking again after
// completion returns the stored assessment.
func (s *Session) Result() (domain.SkinAssessment, error) {
	if s.State == StateComplete && s.Assessment != nil {
		return *s.Assessment, nil
	}

	assessment, err := domain.ScoreQuestionnaire(s.Answers)
	if err != nil {
		return domain.SkinAssessment{}, err
	}

	s.State = StateComplete
	s.Assessment = &assessment
	return assessment, nil
}

// Reset clears all answers and returns the session to the first question.
// Allowed from either state.
func (s *Session) Reset() {
	s.State = StateAnswering
	s.CurrentIndex = 0
	s.Answers = make([]*int, domain.NumQuestions)
	s.Assessment = nil
}

// Answered counts the filled answer slots.
func (s *Session) Answered() int {
	n := 0
	for _, a := range s.Answers {
		if a != nil {
			n++
		}
	}
	return n
}

// snapshot returns a deep copy safe to use after the store lock is released.
func (s *Session) snapshot() Session {
	cp := *s
	cp.Answers = make([]*int, len(s.Answers))
	for i, a := range s.Answers {
		if a != nil {
			v := *a
			cp.Answers[i] = &v
		}
	}
	if s.Assessment != nil {
		a := *s.Assessment
		cp.Assessment = &a
	}
	return cp
}
