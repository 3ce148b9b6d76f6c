package models

// StartQuizRequest represents a request to start a quiz. PlayerName is free text.
type StartQuizRequest struct {
	PlayerName string `json:"playerName"`
}

// StartQuizResponse is returned after starting a quiz
type StartQuizResponse struct {
	Success        bool   `json:"success"`
	SessionID      string `json:"sessionId"`
	TotalQuestions int    `json:"totalQuestions"`
	Message        string `json:"message"`
}

// QuestionView is the player-facing form of a question (no answer, no fun fact)
type QuestionView struct {
	ID             int        `json:"id"`
	Text           string     `json:"text"`
	Options        []string   `json:"options"`
	Difficulty     Difficulty `json:"difficulty"`
	QuestionNumber int        `json:"questionNumber"`
	TotalQuestions int        `json:"totalQuestions"`
	CurrentScore   int        `json:"currentScore"`
}

// QuestionResponse wraps the current question
type QuestionResponse struct {
	Success  bool         `json:"success"`
	Question QuestionView `json:"question"`
}

// SubmitAnswerRequest carries a submitted answer. SelectedAnswer is nil when absent.
type SubmitAnswerRequest struct {
	SelectedAnswer *int `validate:"required"`
	TimeSpent      int64
}

// SubmitAnswerResponse reports the outcome of an answer
type SubmitAnswerResponse struct {
	Success           bool   `json:"success"`
	IsCorrect         bool   `json:"isCorrect"`
	CorrectAnswer     int    `json:"correctAnswer"`
	CorrectAnswerText string `json:"correctAnswerText"`
	FunFact           string `json:"funFact"`
	Score             int    `json:"score"`
	IsQuizCompleted   bool   `json:"isQuizCompleted"`
}

// QuizResults is the results summary of a session
type QuizResults struct {
	SessionID      string         `json:"sessionId"`
	PlayerName     string         `json:"playerName"`
	Score          int            `json:"score"`
	FinalScore     int            `json:"finalScore"`
	CorrectAnswers int            `json:"correctAnswers"`
	TotalQuestions int            `json:"totalQuestions"`
	Accuracy       float64        `json:"accuracy"`
	TimeBonus      int            `json:"timeBonus"`
	TotalTimeSpent int64          `json:"totalTimeSpent"`
	IsCompleted    bool           `json:"isCompleted"`
	Answers        []AnswerRecord `json:"answers"`
}

// ResultsResponse wraps the results summary
type ResultsResponse struct {
	Success bool        `json:"success"`
	Results QuizResults `json:"results"`
}

// MessageResponse is a bare success message
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HintResponse carries the hint of the current question
type HintResponse struct {
	Success    bool   `json:"success"`
	QuestionID int    `json:"questionId"`
	Hint       string `json:"hint"`
}

// PreviousAnswerResponse carries the most recent answer
type PreviousAnswerResponse struct {
	Success bool         `json:"success"`
	Answer  AnswerRecord `json:"answer"`
}

// UndoResponse reports an undone answer and the session position afterwards
type UndoResponse struct {
	Success        bool         `json:"success"`
	Answer         AnswerRecord `json:"answer"`
	Score          int          `json:"score"`
	QuestionNumber int          `json:"questionNumber"`
	IsCompleted    bool         `json:"isCompleted"`
}

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
