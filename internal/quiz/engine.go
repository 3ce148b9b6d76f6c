// Package quiz runs quiz sessions against a question bank.
package quiz

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Akhileshvankayala/quiz-for-IP/internal/bank"
	"github.com/Akhileshvankayala/quiz-for-IP/internal/history"
	"github.com/Akhileshvankayala/quiz-for-IP/internal/models"
)

// Common errors
var (
	ErrNoActiveQuestion = errors.New("no active question")
	ErrSessionNotFound  = errors.New("quiz session not found")
	ErrUndoLocked       = errors.New("quiz is completed and cannot be undone")
)

// UndoPolicy decides what undo does to a completed session
type UndoPolicy string

const (
	// UndoReopen moves a completed session back to in-progress and clears its completion stamp
	UndoReopen UndoPolicy = "reopen"
	// UndoLocked refuses undo once the session is completed
	UndoLocked UndoPolicy = "locked"
)

// ParseUndoPolicy converts a configuration value into an UndoPolicy
func ParseUndoPolicy(value string) (UndoPolicy, error) {
	switch UndoPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case UndoReopen, "":
		return UndoReopen, nil
	case UndoLocked:
		return UndoLocked, nil
	default:
		return "", fmt.Errorf("unknown undo policy: %q", value)
	}
}

// AnswerOutcome is the result of submitting an answer
type AnswerOutcome struct {
	Correct  bool
	Question models.Question // the question that was answered
	Record   models.AnswerRecord
	Session  models.Session // session state after the answer
}

// Snapshot is a consistent view of a session and its answers
type Snapshot struct {
	Session models.Session
	Answers []models.AnswerRecord
}

// Option configures an Engine
type Option func(*Engine)

// WithUndoPolicy sets how undo treats completed sessions
func WithUndoPolicy(policy UndoPolicy) Option {
	return func(e *Engine) {
		e.policy = policy
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// Engine owns at most one session and its answer history.
// All methods are safe for concurrent use.
type Engine struct {
	mu      sync.Mutex
	bank    *bank.Bank
	policy  UndoPolicy
	now     func() time.Time
	session *models.Session
	history *history.Stack[models.AnswerRecord]
}

// NewEngine creates an engine with no session
func NewEngine(b *bank.Bank, opts ...Option) *Engine {
	e := &Engine{
		bank:    b,
		policy:  UndoReopen,
		now:     time.Now,
		history: history.NewStack[models.AnswerRecord](),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Start begins a new session, discarding any previous one and its history
func (e *Engine) Start(playerName string) models.Session {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != nil {
		slog.Debug("replacing quiz session", "session_id", e.session.ID)
	}

	e.session = models.NewSession(playerName, e.bank.Size(), e.now())
	e.history.Clear()

	slog.Info("quiz started",
		"session_id", e.session.ID,
		"player", e.session.PlayerName,
		"total_questions", e.session.TotalQuestions,
	)

	return *e.session
}

// CurrentQuestion returns the question at the session's index.
// Returns ErrNoActiveQuestion if there is no session or it is exhausted.
func (e *Engine) CurrentQuestion() (models.Question, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentQuestion()
}

// CurrentQuestionWithSession returns the current question together with the
// session it was read from
func (e *Engine) CurrentQuestionWithSession() (models.Question, models.Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	q, err := e.currentQuestion()
	if err != nil {
		return models.Question{}, models.Session{}, err
	}
	return q, *e.session, nil
}

func (e *Engine) currentQuestion() (models.Question, error) {
	if e.session == nil || e.session.IsExhausted() {
		return models.Question{}, ErrNoActiveQuestion
	}

	q, err := e.bank.Get(e.session.CurrentQuestionIndex)
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to read current question: %w", err)
	}
	return q, nil
}

// SubmitAnswer scores the selected option against the current question and advances.
// Returns ErrNoActiveQuestion if there is nothing to answer.
func (e *Engine) SubmitAnswer(selected int, timeSpentMs int64) (AnswerOutcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	q, err := e.currentQuestion()
	if err != nil {
		return AnswerOutcome{}, err
	}

	now := e.now()
	record := models.AnswerRecord{
		QuestionID:     q.ID,
		SelectedAnswer: selected,
		IsCorrect:      q.IsCorrect(selected),
		TimeSpentMs:    timeSpentMs,
		AnsweredAt:     now,
	}
	e.history.Push(record)

	if record.IsCorrect {
		e.session.RecordCorrect(q.Points())
	}

	if e.session.Advance() {
		e.session.Complete(now)
		slog.Info("quiz completed",
			"session_id", e.session.ID,
			"score", e.session.Score,
			"correct_answers", e.session.CorrectAnswers,
			"total_time_ms", e.session.TotalTimeSpentMs,
		)
	}

	slog.Debug("answer submitted",
		"session_id", e.session.ID,
		"question_id", q.ID,
		"correct", record.IsCorrect,
		"time_spent_ms", timeSpentMs,
	)

	return AnswerOutcome{
		Correct:  record.IsCorrect,
		Question: q,
		Record:   record,
		Session:  *e.session,
	}, nil
}

// Results returns the current session, whether or not it is completed
func (e *Engine) Results() (models.Session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return models.Session{}, false
	}
	return *e.session, true
}

// AllAnswers returns the answer history oldest first
func (e *Engine) AllAnswers() []models.AnswerRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Chronological()
}

// Snapshot returns the session and its answers read under one lock
func (e *Engine) Snapshot() (Snapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return Snapshot{}, false
	}
	return Snapshot{
		Session: *e.session,
		Answers: e.history.Chronological(),
	}, true
}

// State returns where the engine is in the session lifecycle
func (e *Engine) State() models.SessionState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.State()
}

// Reset drops the session and clears the history
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != nil {
		slog.Info("quiz reset", "session_id", e.session.ID)
	}
	e.session = nil
	e.history.Clear()
}

// PeekPrevious returns the most recent answer without removing it
func (e *Engine) PeekPrevious() (models.AnswerRecord, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Peek()
}

// UndoLast removes the most recent answer and reverses its effect on the session.
// Reports false when there is nothing to undo; returns ErrUndoLocked when the
// policy forbids undoing a completed session.
func (e *Engine) UndoLast() (models.AnswerRecord, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.history.IsEmpty() || e.session == nil {
		return models.AnswerRecord{}, false, nil
	}

	if e.session.Completed && e.policy == UndoLocked {
		return models.AnswerRecord{}, false, ErrUndoLocked
	}

	record, _ := e.history.Peek()
	rewind := e.session.CurrentQuestionIndex > 0

	// resolve points before touching any state
	points := 0
	if rewind && record.IsCorrect {
		q, err := e.bank.ByID(record.QuestionID)
		if err != nil {
			return models.AnswerRecord{}, false, fmt.Errorf("failed to resolve undone question: %w", err)
		}
		points = q.Points()
	}

	if _, err := e.history.Pop(); err != nil {
		return models.AnswerRecord{}, false, nil
	}

	if rewind {
		e.session.CurrentQuestionIndex--

		if record.IsCorrect {
			e.session.Score -= points
			e.session.CorrectAnswers--
		}

		if e.session.Completed && !e.session.IsExhausted() {
			e.session.Reopen()
		}
	}

	slog.Info("answer undone",
		"session_id", e.session.ID,
		"question_id", record.QuestionID,
		"was_correct", record.IsCorrect,
		"score", e.session.Score,
	)

	return record, true, nil
}
