package models

import (
	"slices"
	"strings"
)

// Difficulty is the difficulty tag of a question
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// OptionsPerQuestion is the number of answer options every question carries
const OptionsPerQuestion = 4

// DefaultHint is used when a question does not define its own hint
const DefaultHint = "Think carefully about this question."

// Points returns the score awarded for a correct answer at this difficulty.
// Unknown or empty tags are worth the same as Easy.
func (d Difficulty) Points() int {
	switch strings.ToLower(string(d)) {
	case "easy":
		return 10
	case "medium":
		return 15
	case "hard":
		return 20
	default:
		return 10
	}
}

// Question is a single multiple-choice quiz question
type Question struct {
	ID            int        `json:"id"`
	Text          string     `json:"text"`
	Options       []string   `json:"options"`
	CorrectAnswer int        `json:"correctAnswer"`
	FunFact       string     `json:"funFact"`
	Difficulty    Difficulty `json:"difficulty"`
	Hint          string     `json:"hint,omitempty"`
}

// Points returns the value of the question (by difficulty)
func (q Question) Points() int {
	return q.Difficulty.Points()
}

// IsCorrect reports whether the selected option index is the correct one
func (q Question) IsCorrect(selected int) bool {
	return selected == q.CorrectAnswer
}

// CorrectAnswerText returns the text of the correct option, or "" if the index is invalid
func (q Question) CorrectAnswerText() string {
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectAnswer]
}

// Clone returns a copy that shares no memory with q
func (q Question) Clone() Question {
	q.Options = slices.Clone(q.Options)
	return q
}
