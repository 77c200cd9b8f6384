package session

import (
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriswiesanjaya/sun-protection/internal/domain"
	"github.com/chriswiesanjaya/sun-protection/internal/observability"
)

func TestSession_ExplicitResultTransition(t *testing.T) {
	store, _ := newStoreWithClock(t)
	created := store.Create()

	// Answer every question; the session must stay in the answering state.
	for q := 0; q < domain.NumQuestions; q++ {
		snap, err := store.Update(created.ID, func(s *Session) error {
			return s.SetAnswer(q, 2)
		})
		require.NoError(t, err)
		assert.Equal(t, StateAnswering, snap.State, "answering question %d must not complete the session", q+1)
	}

	snap, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.NumQuestions, snap.Answered())
	assert.Equal(t, StateAnswering, snap.State, "a full answer vector alone must not complete the session")

	// Only the explicit result request moves the session to complete.
	var assessment domain.SkinAssessment
	snap, err = store.Update(created.ID, func(s *Session) error {
		var resultErr error
		assessment, resultErr = s.Result()
		return resultErr
	})
	require.NoError(t, err)
	assert.Equal(t, StateComplete, snap.State)
	assert.Equal(t, 20, assessment.Score)
	assert.Equal(t, domain.SkinType3, assessment.SkinType)
	require.NotNil(t, snap.Assessment)
	assert.Equal(t, assessment, *snap.Assessment)
}

func TestSession_ResultIsIdempotentOnceComplete(t *testing.T) {
	store, _ := newStoreWithClock(t)
	created := store.Create()

	for q := 0; q < domain.NumQuestions; q++ {
		_, err := store.Update(created.ID, func(s *Session) error { return s.SetAnswer(q, 4) })
		require.NoError(t, err)
	}

	var first, second domain.SkinAssessment
	_, err := store.Update(created.ID, func(s *Session) error {
		var resultErr error
		first, resultErr = s.Result()
		return resultErr
	})
	require.NoError(t, err)

	_, err = store.Update(created.ID, func(s *Session) error {
		var resultErr error
		second, resultErr = s.Result()
		return resultErr
	})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, domain.SkinType6, first.SkinType)
}

func TestSession_ResultIncompleteLeavesStateUntouched(t *testing.T) {
	store, _ := newStoreWithClock(t)
	created := store.Create()

	// Nine of ten answered.
	for q := 0; q < domain.NumQuestions-1; q++ {
		_, err := store.Update(created.ID, func(s *Session) error { return s.SetAnswer(q, 1) })
		require.NoError(t, err)
	}

	snap, err := store.Update(created.ID, func(s *Session) error {
		_, resultErr := s.Result()
		return resultErr
	})

	assert.ErrorIs(t, err, domain.ErrIncompleteAnswers)
	assert.Equal(t, StateAnswering, snap.State)
	assert.Equal(t, domain.NumQuestions-1, snap.Answered(), "a failed result request must not clear answers")
	assert.Nil(t, snap.Assessment)
}

func TestSession_SetAnswerValidation(t *testing.T) {
	store, _ := newStoreWithClock(t)
	created := store.Create()

	t.Run("question index out of range", func(t *testing.T) {
		_, err := store.Update(created.ID, func(s *Session) error { return s.SetAnswer(domain.NumQuestions, 1) })
		assert.ErrorIs(t, err, domain.ErrInvalidAnswer)
	})

	t.Run("negative question index", func(t *testing.T) {
		_, err := store.Update(created.ID, func(s *Session) error { return s.SetAnswer(-1, 1) })
		assert.ErrorIs(t, err, domain.ErrInvalidAnswer)
	})

	t.Run("value above range", func(t *testing.T) {
		_, err := store.Update(created.ID, func(s *Session) error { return s.SetAnswer(0, 5) })
		assert.ErrorIs(t, err, domain.ErrInvalidAnswer)
	})

	t.Run("negative value", func(t *testing.T) {
		_, err := store.Update(created.ID, func(s *Session) error { return s.SetAnswer(0, -1) })
		assert.ErrorIs(t, err, domain.ErrInvalidAnswer)
	})

	t.Run("revisiting a question overwrites", func(t *testing.T) {
		_, err := store.Update(created.ID, func(s *Session) error { return s.SetAnswer(3, 1) })
		require.NoError(t, err)
		snap, err := store.Update(created.ID, func(s *Session) error { return s.SetAnswer(3, 4) })
		require.NoError(t, err)

		require.NotNil(t, snap.Answers[3])
		assert.Equal(t, 4, *snap.Answers[3])
		assert.Equal(t, 1, snap.Answered())
	})
}

func TestSession_CompletedSessionRejectsMutation(t *testing.T) {
	store, _ := newStoreWithClock(t)
	created := store.Create()

	for q := 0; q < domain.NumQuestions; q++ {
		_, err := store.Update(created.ID, func(s *Session) error { return s.SetAnswer(q, 0) })
		require.NoError(t, err)
	}
	_, err := store.Update(created.ID, func(s *Session) error {
		_, resultErr := s.Result()
		return resultErr
	})
	require.NoError(t, err)

	_, err = store.Update(created.ID, func(s *Session) error { return s.SetAnswer(0, 1) })
	assert.ErrorIs(t, err, ErrSessionComplete)

	_, err = store.Update(created.ID, func(s *Session) error { return s.Advance() })
	assert.ErrorIs(t, err, ErrSessionComplete)

	_, err = store.Update(created.ID, func(s *Session) error { return s.Retreat() })
	assert.ErrorIs(t, err, ErrSessionComplete)
}

func TestSession_ResetClearsEverything(t *testing.T) {
	store, _ := newStoreWithClock(t)
	created := store.Create()

	for q := 0; q < domain.NumQuestions; q++ {
		_, err := store.Update(created.ID, func(s *Session) error { return s.SetAnswer(q, 3) })
		require.NoError(t, err)
	}
	_, err := store.Update(created.ID, func(s *Session) error {
		_, resultErr := s.Result()
		return resultErr
	})
	require.NoError(t, err)

	snap, err := store.Update(created.ID, func(s *Session) error {
		s.Reset()
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, StateAnswering, snap.State)
	assert.Equal(t, 0, snap.CurrentIndex)
	assert.Equal(t, 0, snap.Answered())
	assert.Nil(t, snap.Assessment)
}

func TestSession_NavigationClampsAtBoundaries(t *testing.T) {
	store, _ := newStoreWithClock(t)
	created := store.Create()

	t.Run("retreat at first question is a no-op", func(t *testing.T) {
		snap, err := store.Update(created.ID, func(s *Session) error { return s.Retreat() })
		require.NoError(t, err)
		assert.Equal(t, 0, snap.CurrentIndex)
	})

	t.Run("advance clamps at last question", func(t *testing.T) {
		var snap Session
		var err error
		for i := 0; i < domain.NumQuestions+5; i++ {
			snap, err = store.Update(created.ID, func(s *Session) error { return s.Advance() })
			require.NoError(t, err)
		}
		assert.Equal(t, domain.NumQuestions-1, snap.CurrentIndex)
	})

	t.Run("retreat walks back", func(t *testing.T) {
		snap, err := store.Update(created.ID, func(s *Session) error { return s.Retreat() })
		require.NoError(t, err)
		assert.Equal(t, domain.NumQuestions-2, snap.CurrentIndex)
	})
}

func newStoreWithClock(t *testing.T) (*Store, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	store := NewStore(testTTL, clock, discardLogger(), observability.NewMetricsForTesting())
	return store, clock
}
