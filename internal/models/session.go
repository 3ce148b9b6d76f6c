package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SessionState represents the current state of a quiz session
type SessionState string

const (
	StateNotStarted SessionState = "not_started" // No session exists
	StateInProgress SessionState = "in_progress" // Questions remain
	StateCompleted  SessionState = "completed"   // Every question answered
)

// DefaultPlayerName is used when a quiz is started without a name
const DefaultPlayerName = "Anonymous Player"

// Session tracks one player's progress through the question bank.
// Owned by a single quiz engine; copies handed out are snapshots.
type Session struct {
	ID                   string     `json:"sessionId"`
	PlayerName           string     `json:"playerName"`
	CurrentQuestionIndex int        `json:"currentQuestionIndex"`
	TotalQuestions       int        `json:"totalQuestions"`
	Score                int        `json:"score"`
	CorrectAnswers       int        `json:"correctAnswers"`
	CreatedAt            time.Time  `json:"createdAt"`
	CompletedAt          *time.Time `json:"completedAt,omitempty"`
	TotalTimeSpentMs     int64      `json:"totalTimeSpent"`
	Completed            bool       `json:"isCompleted"`
}

// NewSession creates a session at question 0 for the given bank size
func NewSession(playerName string, totalQuestions int, now time.Time) *Session {
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		playerName = DefaultPlayerName
	}

	return &Session{
		ID:             GenerateSessionID(now),
		PlayerName:     playerName,
		TotalQuestions: totalQuestions,
		CreatedAt:      now,
	}
}

// GenerateSessionID builds a timestamp-derived id with a random suffix
func GenerateSessionID(now time.Time) string {
	return fmt.Sprintf("QUIZ_%d_%s", now.UnixMilli(), strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}

// State returns the state machine position of the session
func (s *Session) State() SessionState {
	if s == nil {
		return StateNotStarted
	}
	if s.Completed {
		return StateCompleted
	}
	return StateInProgress
}

// IsExhausted returns true when no question remains at the current index
func (s *Session) IsExhausted() bool {
	return s.CurrentQuestionIndex >= s.TotalQuestions
}

// RecordCorrect adds the points of a correctly answered question
func (s *Session) RecordCorrect(points int) {
	s.Score += points
	s.CorrectAnswers++
}

// Advance moves to the next question, never past TotalQuestions.
// Reports whether the session has just been exhausted.
func (s *Session) Advance() bool {
	if s.CurrentQuestionIndex < s.TotalQuestions {
		s.CurrentQuestionIndex++
	}
	return s.IsExhausted()
}

// Complete stamps completion time and elapsed milliseconds
func (s *Session) Complete(now time.Time) {
	s.CompletedAt = &now
	s.Completed = true
	s.TotalTimeSpentMs = now.Sub(s.CreatedAt).Milliseconds()
	if s.TotalTimeSpentMs < 0 {
		s.TotalTimeSpentMs = 0
	}
}

// Reopen undoes Complete
func (s *Session) Reopen() {
	s.CompletedAt = nil
	s.Completed = false
	s.TotalTimeSpentMs = 0
}

// Accuracy returns the percentage of questions answered correctly
func (s *Session) Accuracy() float64 {
	if s.TotalQuestions == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.TotalQuestions) * 100
}

// Elapsed returns the total quiz duration (0 until completed)
func (s *Session) Elapsed() time.Duration {
	return time.Duration(s.TotalTimeSpentMs) * time.Millisecond
}

// TimeBonus returns the speed bonus earned at completion
func (s *Session) TimeBonus() int {
	if !s.Completed {
		return 0
	}
	return TimeBonusFor(s.Elapsed())
}

// TimeBonusFor maps an elapsed quiz duration to its bonus
func TimeBonusFor(elapsed time.Duration) int {
	switch {
	case elapsed <= 5*time.Minute:
		return 50
	case elapsed <= 8*time.Minute:
		return 30
	case elapsed <= 12*time.Minute:
		return 10
	default:
		return 0
	}
}

// FinalScore returns the score including the time bonus
func (s *Session) FinalScore() int {
	return s.Score + s.TimeBonus()
}

// AnswerRecord is one submitted answer. Never mutated after creation.
type AnswerRecord struct {
	QuestionID     int       `json:"questionId"`
	SelectedAnswer int       `json:"selectedAnswer"`
	IsCorrect      bool      `json:"isCorrect"`
	TimeSpentMs    int64     `json:"timeSpent"`
	AnsweredAt     time.Time `json:"-"`
}
