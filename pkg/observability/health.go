package observability

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
)

// Pinger reports reachability of a dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker answers liveness and readiness probes. The service
// stays ready even when the durable store is down; it only reports the
// degraded state, since the ephemeral store keeps serving traffic.
type HealthChecker struct {
	durable Pinger
}

// NewHealthChecker creates a health checker. durable may be nil when no
// durable store is configured.
func NewHealthChecker(durable Pinger) *HealthChecker {
	return &HealthChecker{durable: durable}
}

// HealthStatus is the probe response body.
type HealthStatus struct {
	Status       string            `json:"status"`
	Timestamp    time.Time         `json:"timestamp"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// Liveness always answers 200 while the process runs.
func (h *HealthChecker) Liveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthStatus{Status: StatusHealthy, Timestamp: time.Now()})
}

// Readiness reports healthy when the durable store answers a ping and
// degraded otherwise. Both answer 200: degraded mode still serves.
func (h *HealthChecker) Readiness(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:       StatusHealthy,
		Timestamp:    time.Now(),
		Dependencies: map[string]string{},
	}
	if h.durable == nil {
		status.Status = StatusDegraded
		status.Dependencies["postgres"] = "not configured"
	} else {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.durable.Ping(ctx); err != nil {
			status.Status = StatusDegraded
			status.Dependencies["postgres"] = err.Error()
		} else {
			status.Dependencies["postgres"] = StatusHealthy
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}
