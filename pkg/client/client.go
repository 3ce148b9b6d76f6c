package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"github.com/Akhileshvankayala/quiz-for-IP/internal/models"
)

const sessionHeader = "X-Quiz-Session"

// APIError is returned when the server answers with a non-2xx status
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (HTTP %d): %s", e.StatusCode, e.Message)
}

// StatusCode returns the HTTP status of an APIError, or 0 for other errors
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// Client is a Go SDK for the quiz API. It remembers the session it started.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu        sync.Mutex
	sessionID string
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithSession resumes an existing session id
func WithSession(id string) Option {
	return func(c *Client) {
		c.sessionID = id
	}
}

// NewClient creates a new quiz client
func NewClient(baseURL string, opts ...Option) *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SessionID returns the session the client is playing
func (c *Client) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Start begins a new quiz, replacing the client's current session
func (c *Client) Start(ctx context.Context, playerName string) (*models.StartQuizResponse, error) {
	var result models.StartQuizResponse
	if err := c.do(ctx, http.MethodPost, "/api/quiz/start", map[string]string{"playerName": playerName}, &result); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.sessionID = result.SessionID
	c.mu.Unlock()

	return &result, nil
}

// Question fetches the current question
func (c *Client) Question(ctx context.Context) (*models.QuestionView, error) {
	var result models.QuestionResponse
	if err := c.do(ctx, http.MethodGet, "/api/quiz/question", nil, &result); err != nil {
		return nil, err
	}
	return &result.Question, nil
}

// Answer submits the selected option and the milliseconds spent on it
func (c *Client) Answer(ctx context.Context, selected int, timeSpent time.Duration) (*models.SubmitAnswerResponse, error) {
	body := map[string]int64{
		"selectedAnswer": int64(selected),
		"timeSpent":      timeSpent.Milliseconds(),
	}

	var result models.SubmitAnswerResponse
	if err := c.do(ctx, http.MethodPost, "/api/quiz/answer", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Results fetches the results summary of the session
func (c *Client) Results(ctx context.Context) (*models.QuizResults, error) {
	var result models.ResultsResponse
	if err := c.do(ctx, http.MethodGet, "/api/quiz/results", nil, &result); err != nil {
		return nil, err
	}
	return &result.Results, nil
}

// Hint fetches the hint of the current question
func (c *Client) Hint(ctx context.Context) (string, error) {
	var result models.HintResponse
	if err := c.do(ctx, http.MethodGet, "/api/quiz/hint", nil, &result); err != nil {
		return "", err
	}
	return result.Hint, nil
}

// Previous fetches the most recent answer
func (c *Client) Previous(ctx context.Context) (*models.AnswerRecord, error) {
	var result models.PreviousAnswerResponse
	if err := c.do(ctx, http.MethodGet, "/api/quiz/previous", nil, &result); err != nil {
		return nil, err
	}
	return &result.Answer, nil
}

// Undo takes back the most recent answer
func (c *Client) Undo(ctx context.Context) (*models.UndoResponse, error) {
	var result models.UndoResponse
	if err := c.do(ctx, http.MethodPost, "/api/quiz/undo", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Reset ends the session on the server and forgets it locally
func (c *Client) Reset(ctx context.Context) error {
	var result models.MessageResponse
	if err := c.do(ctx, http.MethodPost, "/api/quiz/reset", nil, &result); err != nil {
		return err
	}

	c.mu.Lock()
	c.sessionID = ""
	c.mu.Unlock()

	return nil
}

// Health checks if the service is healthy
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// do performs an HTTP request and decodes a successful response into out
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := c.SessionID(); id != "" {
		req.Header.Set(sessionHeader, id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp models.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err != nil || errResp.Error == "" {
			return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
