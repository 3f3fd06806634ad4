package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/phpgen/pkg/session"
)

// logRequests logs method, path, status and duration of every request.
// Health checks are logged at debug level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		kv := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()),
		}
		switch {
		case r.URL.Path == "/healthz":
			s.logger.Debug("request", kv...)
		case status >= 500:
			s.logger.Error("request", kv...)
		default:
			s.logger.Info("request", kv...)
		}
	})
}

// loadSession returns the visitor's session, starting a new one when the
// cookie is missing or stale.
func (s *Server) loadSession(r *http.Request) (*session.Session, error) {
	var id string
	if c, err := r.Cookie(cookieName); err == nil {
		id = c.Value
	}
	return s.sessions.Load(r.Context(), id)
}

// saveSession stores sess and (re)issues the session cookie.
func (s *Server) saveSession(w http.ResponseWriter, r *http.Request, sess *session.Session) error {
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
