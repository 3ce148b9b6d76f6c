// Package bank holds the ordered, read-only sequence of quiz questions.
package bank

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Akhileshvankayala/quiz-for-IP/internal/models"
)

// Common errors
var (
	ErrOutOfRange      = errors.New("question index out of range")
	ErrInvalidQuestion = errors.New("invalid question")
)

// Bank is an ordered, index-addressable sequence of questions.
// It is populated once and never mutated, so it is safe for concurrent reads.
type Bank struct {
	questions []models.Question
}

// New builds a bank from the given questions. Ids are reassigned to the
// 1-based position of each question and empty hints get the default hint.
func New(questions []models.Question) (*Bank, error) {
	b := &Bank{questions: make([]models.Question, 0, len(questions))}

	for i, q := range questions {
		if err := validate(q); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}

		q = q.Clone()
		q.ID = i + 1
		if strings.TrimSpace(q.Hint) == "" {
			q.Hint = models.DefaultHint
		}
		b.questions = append(b.questions, q)
	}

	return b, nil
}

func validate(q models.Question) error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: text is required", ErrInvalidQuestion)
	}
	if len(q.Options) != models.OptionsPerQuestion {
		return fmt.Errorf("%w: expected %d options, got %d", ErrInvalidQuestion, models.OptionsPerQuestion, len(q.Options))
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return fmt.Errorf("%w: correct answer index %d out of range", ErrInvalidQuestion, q.CorrectAnswer)
	}
	return nil
}

// Size returns the number of questions
func (b *Bank) Size() int {
	return len(b.questions)
}

// Get returns the question at a 0-based index
func (b *Bank) Get(index int) (models.Question, error) {
	if index < 0 || index >= len(b.questions) {
		return models.Question{}, fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, index, len(b.questions))
	}
	return b.questions[index].Clone(), nil
}

// ByID returns the question with the given 1-based id
func (b *Bank) ByID(id int) (models.Question, error) {
	return b.Get(id - 1)
}

// All returns every question in order
func (b *Bank) All() []models.Question {
	result := make([]models.Question, 0, len(b.questions))
	for _, q := range b.questions {
		result = append(result, q.Clone())
	}
	return result
}
