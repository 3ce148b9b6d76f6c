package api

import (
	"context"

	"github.com/Akhileshvankayala/quiz-for-IP/internal/quiz"
)

type contextKey string

const (
	engineContextKey    contextKey = "quiz_engine"
	sessionIDContextKey contextKey = "quiz_session_id"
)

// EngineFromContext extracts the session's engine from context
func EngineFromContext(ctx context.Context) *quiz.Engine {
	engine, ok := ctx.Value(engineContextKey).(*quiz.Engine)
	if !ok {
		return nil
	}
	return engine
}

// SessionIDFromContext returns the session id the request was resolved to
func SessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDContextKey).(string)
	return id
}

// ContextWithSession adds the resolved session to context
func ContextWithSession(ctx context.Context, id string, engine *quiz.Engine) context.Context {
	ctx = context.WithValue(ctx, sessionIDContextKey, id)
	return context.WithValue(ctx, engineContextKey, engine)
}
