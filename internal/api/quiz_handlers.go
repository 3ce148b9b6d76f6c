package api

import (
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/Akhileshvankayala/quiz-for-IP/internal/models"
	"github.com/Akhileshvankayala/quiz-for-IP/internal/quiz"
)

const (
	msgNoActiveQuestion = "No active quiz session or quiz completed"
	msgNoCurrentAnswer  = "No current question available"
	msgNoSession        = "No quiz session found"
)

func (s *Server) handleStartQuiz(w http.ResponseWriter, r *http.Request) {
	req, err := decodeStartRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, session := s.store.Start(req.PlayerName, SessionIDFromContext(r.Context()))

	setSessionCookie(w, session.ID)
	w.Header().Set(sessionHeader, session.ID)

	respondJSON(w, http.StatusOK, models.StartQuizResponse{
		Success:        true,
		SessionID:      session.ID,
		TotalQuestions: session.TotalQuestions,
		Message:        "Quiz started successfully!",
	})
}

func (s *Server) handleGetQuestion(w http.ResponseWriter, r *http.Request) {
	engine := EngineFromContext(r.Context())
	if engine == nil {
		respondError(w, http.StatusNotFound, msgNoActiveQuestion)
		return
	}

	q, session, err := engine.CurrentQuestionWithSession()
	if err != nil {
		if errors.Is(err, quiz.ErrNoActiveQuestion) {
			respondError(w, http.StatusNotFound, msgNoActiveQuestion)
			return
		}
		slog.Error("failed to get question", "error", err, "session_id", SessionIDFromContext(r.Context()))
		respondError(w, http.StatusInternalServerError, "Failed to get question")
		return
	}

	respondJSON(w, http.StatusOK, models.QuestionResponse{
		Success: true,
		Question: models.QuestionView{
			ID:             q.ID,
			Text:           q.Text,
			Options:        q.Options,
			Difficulty:     q.Difficulty,
			QuestionNumber: session.CurrentQuestionIndex + 1,
			TotalQuestions: session.TotalQuestions,
			CurrentScore:   session.Score,
		},
	})
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAnswerRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid answer format")
		return
	}

	if err := s.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	engine := EngineFromContext(r.Context())
	if engine == nil {
		respondError(w, http.StatusNotFound, msgNoCurrentAnswer)
		return
	}

	outcome, err := engine.SubmitAnswer(*req.SelectedAnswer, req.TimeSpent)
	if err != nil {
		if errors.Is(err, quiz.ErrNoActiveQuestion) {
			respondError(w, http.StatusNotFound, msgNoCurrentAnswer)
			return
		}
		slog.Error("failed to submit answer", "error", err, "session_id", SessionIDFromContext(r.Context()))
		respondError(w, http.StatusInternalServerError, "Failed to submit answer")
		return
	}

	respondJSON(w, http.StatusOK, models.SubmitAnswerResponse{
		Success:           true,
		IsCorrect:         outcome.Correct,
		CorrectAnswer:     outcome.Question.CorrectAnswer,
		CorrectAnswerText: outcome.Question.CorrectAnswerText(),
		FunFact:           outcome.Question.FunFact,
		Score:             outcome.Session.Score,
		IsQuizCompleted:   outcome.Session.Completed,
	})
}

func (s *Server) handleGetResults(w http.ResponseWriter, r *http.Request) {
	engine := EngineFromContext(r.Context())
	if engine == nil {
		respondError(w, http.StatusNotFound, msgNoSession)
		return
	}

	snap, ok := engine.Snapshot()
	if !ok {
		respondError(w, http.StatusNotFound, msgNoSession)
		return
	}

	respondJSON(w, http.StatusOK, models.ResultsResponse{
		Success: true,
		Results: buildResults(snap),
	})
}

func buildResults(snap quiz.Snapshot) models.QuizResults {
	session := snap.Session

	answers := snap.Answers
	if answers == nil {
		answers = []models.AnswerRecord{}
	}

	return models.QuizResults{
		SessionID:      session.ID,
		PlayerName:     session.PlayerName,
		Score:          session.Score,
		FinalScore:     session.FinalScore(),
		CorrectAnswers: session.CorrectAnswers,
		TotalQuestions: session.TotalQuestions,
		Accuracy:       math.Round(session.Accuracy()*10) / 10,
		TimeBonus:      session.TimeBonus(),
		TotalTimeSpent: session.TotalTimeSpentMs,
		IsCompleted:    session.Completed,
		Answers:        answers,
	}
}

func (s *Server) handleResetQuiz(w http.ResponseWriter, r *http.Request) {
	if id := SessionIDFromContext(r.Context()); id != "" {
		if err := s.store.Delete(id); err != nil {
			slog.Debug("reset of unknown session", "session_id", id, "error", err)
		}
	}

	clearSessionCookie(w)

	respondJSON(w, http.StatusOK, models.MessageResponse{
		Success: true,
		Message: "Quiz reset successfully",
	})
}

func (s *Server) handleGetHint(w http.ResponseWriter, r *http.Request) {
	engine := EngineFromContext(r.Context())
	if engine == nil {
		respondError(w, http.StatusNotFound, msgNoActiveQuestion)
		return
	}

	q, err := engine.CurrentQuestion()
	if err != nil {
		if errors.Is(err, quiz.ErrNoActiveQuestion) {
			respondError(w, http.StatusNotFound, msgNoActiveQuestion)
			return
		}
		slog.Error("failed to get hint", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to get hint")
		return
	}

	respondJSON(w, http.StatusOK, models.HintResponse{
		Success:    true,
		QuestionID: q.ID,
		Hint:       q.Hint,
	})
}

func (s *Server) handleGetPrevious(w http.ResponseWriter, r *http.Request) {
	engine := EngineFromContext(r.Context())
	if engine == nil {
		respondError(w, http.StatusNotFound, msgNoSession)
		return
	}

	record, ok := engine.PeekPrevious()
	if !ok {
		respondError(w, http.StatusNotFound, "No previous answer")
		return
	}

	respondJSON(w, http.StatusOK, models.PreviousAnswerResponse{
		Success: true,
		Answer:  record,
	})
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	engine := EngineFromContext(r.Context())
	if engine == nil {
		respondError(w, http.StatusNotFound, msgNoSession)
		return
	}

	record, ok, err := engine.UndoLast()
	if err != nil {
		if errors.Is(err, quiz.ErrUndoLocked) {
			respondError(w, http.StatusConflict, "Quiz is completed and cannot be undone")
			return
		}
		slog.Error("failed to undo answer", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to undo answer")
		return
	}
	if !ok {
		respondError(w, http.StatusNotFound, "No answer to undo")
		return
	}

	session, _ := engine.Results()
	respondJSON(w, http.StatusOK, models.UndoResponse{
		Success:        true,
		Answer:         record,
		Score:          session.Score,
		QuestionNumber: session.CurrentQuestionIndex + 1,
		IsCompleted:    session.Completed,
	})
}

func setSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
