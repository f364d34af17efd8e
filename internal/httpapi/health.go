package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// health pings every registered dependency with a short deadline. Any
// failure turns the whole endpoint red; the per-dependency status tells the
// operator which one.
func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	overall := "ok"
	status := http.StatusOK
	checks := make(map[string]string, len(h.Healthchecks))
	for name, check := range h.Healthchecks {
		if err := check(ctx); err != nil {
			h.Log.Error("healthcheck failed", slog.String("dependency", name), slog.Any("error", err))
			checks[name] = "down"
			overall = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	respondJSON(w, status, map[string]any{
		"status": overall,
		"checks": checks,
	})
}
