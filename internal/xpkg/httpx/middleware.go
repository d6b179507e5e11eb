package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"food-delivery/internal/xpkg/logger"
)

const HeaderRequestID = "X-Request-ID"

type ctxKey struct{}

// RequestID returns the id attached by WithRequestLog, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// WithRequestLog assigns every request an id (reusing an inbound X-Request-ID),
// echoes it in the response and logs the completed request.
func WithRequestLog(next http.Handler, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))

		l := log.Action("request_completed").With(
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		if rec.status >= http.StatusInternalServerError {
			l.Warn("Request failed")
			return
		}
		l.Debug("Request completed")
	})
}

// Health serves {"status":"healthy","service":service}.
func Health(service string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		JSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": service})
	}
}
