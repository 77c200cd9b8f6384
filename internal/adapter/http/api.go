package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/chriswiesanjaya/sun-protection/internal/advisory"
	"github.com/chriswiesanjaya/sun-protection/internal/domain"
	"github.com/chriswiesanjaya/sun-protection/internal/notify"
	"github.com/chriswiesanjaya/sun-protection/internal/observability"
	"github.com/chriswiesanjaya/sun-protection/internal/session"
)

// Stable machine-readable error codes.
const (
	codeInvalidRequest    = "invalid_request"
	codeInvalidUVIndex    = "invalid_uv_index"
	codeIncompleteAnswers = "incomplete_answers"
	codeInvalidAnswer     = "invalid_answer"
	codeLocationNotFound  = "location_not_found"
	codeSessionNotFound   = "session_not_found"
	codeSessionComplete   = "session_complete"
	codeProviderError     = "provider_error"
	codeInternal          = "internal_error"
)

// Advisor computes UV advisories.
type Advisor interface {
	AdviseByLocation(ctx context.Context, location string) (domain.Report, error)
	AdviseByUVIndex(uvIndex float64) (domain.UVAdvisory, error)
}

// API serves the /v1 routes.
type API struct {
	advisor  Advisor
	sessions *session.Store
	notifier *notify.Notifier
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewAPI wires the /v1 handlers to their collaborators.
func NewAPI(advisor Advisor, sessions *session.Store, notifier *notify.Notifier, logger *slog.Logger, metrics *observability.Metrics) *API {
	return &API{
		advisor:  advisor,
		sessions: sessions,
		notifier: notifier,
		logger:   logger,
		metrics:  metrics,
	}
}

func (a *API) register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/advisory", a.handleAdvisory)
	mux.HandleFunc("GET /v1/advisory/uv", a.handleAdvisoryUV)

	mux.HandleFunc("POST /v1/questionnaire", a.handleCreateSession)
	mux.HandleFunc("GET /v1/questionnaire/{id}", a.handleGetSession)
	mux.HandleFunc("POST /v1/questionnaire/{id}/answers", a.handleSetAnswer)
	mux.HandleFunc("POST /v1/questionnaire/{id}/advance", a.handleAdvance)
	mux.HandleFunc("POST /v1/questionnaire/{id}/retreat", a.handleRetreat)
	mux.HandleFunc("POST /v1/questionnaire/{id}/result", a.handleResult)
	mux.HandleFunc("POST /v1/questionnaire/{id}/reset", a.handleReset)

	mux.HandleFunc("GET /v1/reminder", a.handleReminderStatus)
	mux.HandleFunc("POST /v1/reminder", a.handleReminderArm)
	mux.HandleFunc("DELETE /v1/reminder", a.handleReminderDismiss)
}

// --- advisory ---

func (a *API) handleAdvisory(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "missing location parameter")
		return
	}

	report, err := a.advisor.AdviseByLocation(r.Context(), location)
	if err != nil {
		a.writeAdvisoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (a *API) handleAdvisoryUV(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("value")
	if raw == "" {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "missing value parameter")
		return
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "value must be a number")
		return
	}

	adv, err := a.advisor.AdviseByUVIndex(value)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidUVIndex) {
			writeError(w, http.StatusUnprocessableEntity, codeInvalidUVIndex, err.Error())
			return
		}
		a.logger.Error("uv classification failed", "error", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, adv)
}

// writeAdvisoryError maps pipeline failures: an unknown location is the
// caller's problem, everything else (including a provider reading that
// failed classification) is an upstream failure.
func (a *API) writeAdvisoryError(w http.ResponseWriter, err error) {
	if errors.Is(err, advisory.ErrLocationNotFound) {
		writeError(w, http.StatusNotFound, codeLocationNotFound, err.Error())
		return
	}
	a.logger.Error("advisory request failed", "error", err)
	writeError(w, http.StatusBadGateway, codeProviderError, err.Error())
}

// --- questionnaire ---

type answerRequest struct {
	Question int `json:"question"`
	Value    int `json:"value"`
}

// sessionResponse is the wire view of a questionnaire session. Question
// carries the active question while answering; Result the assessment once
// complete.
type sessionResponse struct {
	SessionID       string                 `json:"session_id"`
	State           session.State          `json:"state"`
	CurrentQuestion int                    `json:"current_question"`
	Answered        int                    `json:"answered"`
	TotalQuestions  int                    `json:"total_questions"`
	Answers         []*int                 `json:"answers"`
	Question        *domain.Question       `json:"question,omitempty"`
	Result          *domain.SkinAssessment `json:"result,omitempty"`
}

func sessionView(s session.Session) sessionResponse {
	resp := sessionResponse{
		SessionID:       s.ID,
		State:           s.State,
		CurrentQuestion: s.CurrentIndex,
		Answered:        s.Answered(),
		TotalQuestions:  domain.NumQuestions,
		Answers:         s.Answers,
		Result:          s.Assessment,
	}
	if s.State == session.StateAnswering {
		if q, ok := domain.QuestionAt(s.CurrentIndex); ok {
			resp.Question = &q
		}
	}
	return resp
}

func (a *API) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	sess := a.sessions.Create()
	writeJSON(w, http.StatusCreated, sessionView(sess))
}

func (a *API) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := a.sessions.Get(r.PathValue("id"))
	if err != nil {
		a.writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionView(sess))
}

func (a *API) handleSetAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "malformed request body")
		return
	}

	a.updateSession(w, r, func(s *session.Session) error {
		return s.SetAnswer(req.Question, req.Value)
	})
}

func (a *API) handleAdvance(w http.ResponseWriter, r *http.Request) {
	a.updateSession(w, r, func(s *session.Session) error { return s.Advance() })
}

func (a *API) handleRetreat(w http.ResponseWriter, r *http.Request) {
	a.updateSession(w, r, func(s *session.Session) error { return s.Retreat() })
}

func (a *API) handleReset(w http.ResponseWriter, r *http.Request) {
	a.updateSession(w, r, func(s *session.Session) error {
		s.Reset()
		return nil
	})
}

func (a *API) handleResult(w http.ResponseWriter, r *http.Request) {
	var completedNow bool
	sess, err := a.sessions.Update(r.PathValue("id"), func(s *session.Session) error {
		wasComplete := s.State == session.StateComplete
		if _, resultErr := s.Result(); resultErr != nil {
			return resultErr
		}
		completedNow = !wasComplete
		return nil
	})
	if err != nil {
		a.writeSessionError(w, err)
		return
	}

	// Count first completions only; re-reading a result is not a new
	// questionnaire.
	if completedNow {
		a.metrics.QuestionnairesCompleted.WithLabelValues(string(sess.Assessment.SkinType)).Inc()
		a.logger.Info("questionnaire completed",
			"session_id", sess.ID,
			"skin_type", sess.Assessment.SkinType,
			"score", sess.Assessment.Score)
	}
	writeJSON(w, http.StatusOK, sessionView(sess))
}

func (a *API) updateSession(w http.ResponseWriter, r *http.Request, fn func(*session.Session) error) {
	sess, err := a.sessions.Update(r.PathValue("id"), fn)
	if err != nil {
		a.writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionView(sess))
}

func (a *API) writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, codeSessionNotFound, err.Error())
	case errors.Is(err, session.ErrSessionComplete):
		writeError(w, http.StatusConflict, codeSessionComplete, err.Error())
	case errors.Is(err, domain.ErrIncompleteAnswers):
		writeError(w, http.StatusUnprocessableEntity, codeIncompleteAnswers, err.Error())
	case errors.Is(err, domain.ErrInvalidAnswer):
		writeError(w, http.StatusUnprocessableEntity, codeInvalidAnswer, err.Error())
	default:
		a.logger.Error("session operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
	}
}

// --- reminder ---

type reminderRequest struct {
	AutoDismissSeconds int `json:"auto_dismiss_seconds"`
}

func (a *API) handleReminderStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.notifier.Status())
}

func (a *API) handleReminderArm(w http.ResponseWriter, r *http.Request) {
	// An empty body arms without a timeout.
	var req reminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "malformed request body")
		return
	}
	if req.AutoDismissSeconds < 0 {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "auto_dismiss_seconds must not be negative")
		return
	}

	status := a.notifier.Notify(time.Duration(req.AutoDismissSeconds) * time.Second)
	writeJSON(w, http.StatusOK, status)
}

func (a *API) handleReminderDismiss(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.notifier.Dismiss())
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
