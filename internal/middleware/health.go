package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"
)

// HealthChecker is one named dependency probe run by the health endpoint.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// DatabaseHealthChecker pings the analysis database
type DatabaseHealthChecker struct {
	DB *sql.DB
}

func (d *DatabaseHealthChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return d.DB.PingContext(ctx)
}

type healthReport struct {
	Status    string                `json:"status"`
	Timestamp time.Time             `json:"timestamp"`
	Checks    map[string]checkState `json:"checks"`
}

type checkState struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthHandler runs every registered checker and reports per-dependency
// state. Any failing check flips the whole report to unhealthy (503), the
// orchestrator restarts from there.
func HealthHandler(checkers map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		report := healthReport{
			Status:    "healthy",
			Timestamp: time.Now(),
			Checks:    make(map[string]checkState),
		}

		for name, checker := range checkers {
			if err := checker.Check(ctx); err != nil {
				report.Status = "unhealthy"
				report.Checks[name] = checkState{Status: "unhealthy", Message: err.Error()}
				continue
			}
			report.Checks[name] = checkState{Status: "healthy"}
		}

		code := http.StatusOK
		if report.Status == "unhealthy" {
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(report)
	}
}

// ReadinessHandler answers ready without touching dependencies; routing is up
func ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ready",
		"timestamp": time.Now(),
	})
}

// LivenessHandler is the cheapest possible probe
func LivenessHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
