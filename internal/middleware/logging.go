package middleware

import (
	"log"
	"net/http"
	"time"
)

// statusRecorder wraps http.ResponseWriter to capture the status code and
// body size for the request log line
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// LoggingMiddleware writes one key=value line per request. When the request
// was authenticated the tenant is included so analysis traffic can be
// attributed per tenant.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rec := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rec, r)

		line := "method=%s path=%s status=%d duration=%s bytes=%d ip=%s user_agent=%s"
		args := []any{
			r.Method,
			r.URL.Path,
			rec.statusCode,
			time.Since(start),
			rec.written,
			r.RemoteAddr,
			r.UserAgent(),
		}
		if tenant := GetTenantFromContext(r.Context()); tenant != "" {
			line += " tenant=%s"
			args = append(args, tenant)
		}
		log.Printf(line, args...)
	})
}
