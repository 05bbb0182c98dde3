package adapthttp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"weighttrack/internal/domain"
	"weighttrack/internal/logger"

	"github.com/google/uuid"
)

type contextKey string

const sessionContextKey contextKey = "session"

const (
	sessionCookie   = "session"
	requestIDHeader = "X-Request-ID"
)

// sessionFrom returns the session placed on the context by authMiddleware.
func sessionFrom(ctx context.Context) *domain.Session {
	sess, _ := ctx.Value(sessionContextKey).(*domain.Session)
	return sess
}

// authMiddleware resolves the session cookie and rejects requests without
// a live session.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			writeError(w, http.StatusUnauthorized, domain.ErrNotAuthenticated)
			return
		}

		sess, err := s.authSvc.ValidateSession(r.Context(), cookie.Value)
		if errors.Is(err, domain.ErrNotAuthenticated) {
			writeError(w, http.StatusUnauthorized, err)
			return
		}
		if err != nil {
			logger.Error("validate session", "err", err)
			writeError(w, http.StatusInternalServerError, errInternal)
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// requestID keeps an incoming id only when it is a UUID; anything else is
// replaced with a fresh one.
func requestID(incoming string) string {
	if len(incoming) <= 36 {
		if id, err := uuid.Parse(incoming); err == nil {
			return id.String()
		}
	}
	return uuid.NewString()
}

// loggingMiddleware tags each request with an id and logs its outcome.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := requestID(r.Header.Get(requestIDHeader))
		w.Header().Set(requestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"request_id", id,
		)
	})
}
