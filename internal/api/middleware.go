package api

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
)

const (
	sessionCookie = "quiz_session"
	sessionHeader = "X-Quiz-Session"
	sessionQuery  = "sessionId"
)

// sessionMiddleware resolves the caller's quiz session and adds it to the context.
// Requests without a known session pass through with no engine attached.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := extractSessionID(r)
		if id == "" {
			next.ServeHTTP(w, r)
			return
		}

		engine, err := s.store.Get(id)
		if err != nil {
			slog.Debug("unknown quiz session", "session_id", id, "error", err)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithSession(r.Context(), id, engine)))
	})
}

// extractSessionID reads the session id from cookie, header or query, in that order
func extractSessionID(r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if id := strings.TrimSpace(r.Header.Get(sessionHeader)); id != "" {
		return id
	}
	return strings.TrimSpace(r.URL.Query().Get(sessionQuery))
}

// rateLimitMiddleware limits requests per client IP. Limiter failures let the request through.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)

		res, err := s.limiter.Allow(r.Context(), key)
		if err != nil {
			slog.Error("rate limiter unavailable", "error", err, "client", key)
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

		if !res.Allowed {
			retry := int(math.Ceil(res.RetryAfter.Seconds()))
			if retry < 1 {
				retry = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			slog.Warn("rate limit exceeded", "client", key, "path", r.URL.Path)
			respondError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allowAnyOrigin sets Access-Control-Allow-Origin on every response. The cors
// handler only writes it for requests that carry an Origin header.
func allowAnyOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		next.ServeHTTP(w, r)
	})
}

// clientKey returns the client IP without port (RealIP has already applied proxy headers)
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
