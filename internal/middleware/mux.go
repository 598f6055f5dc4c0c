package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/KOFI-GYIMAH/portfolio/pkg/logger"
)

// * statusRecorder keeps what the handler wrote so it can be logged afterwards
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += n
	return n, err
}

// * LoggingMiddleware logs one line per request. Server errors go out at
// * error level, client errors at warn, swagger assets only at debug.
// * Register it after VisitorMiddleware so the visitor is known.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sr, r)

		log := logger.Info
		switch {
		case sr.status >= http.StatusInternalServerError:
			log = logger.Error
		case sr.status >= http.StatusBadRequest:
			log = logger.Warn
		case strings.HasPrefix(r.URL.Path, "/v1/swagger/"):
			log = logger.Debug
		}

		log("%s %s %d %dB %s visitor=%s",
			r.Method, r.URL.RequestURI(), sr.status, sr.bytes,
			time.Since(start).Round(time.Microsecond), shortVisitor(r),
		)
	})
}

func shortVisitor(r *http.Request) string {
	id := VisitorID(r.Context())
	if len(id) < 8 {
		return "-"
	}
	return id[:8]
}
