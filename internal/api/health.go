package api

import (
	"context"
	"net/http"
	"sort"
	"time"
)

// Pinger is an optional dependency checked by the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	deps    map[string]Pinger
	env     string
	version string
}

func NewHealthHandler(deps map[string]Pinger, env, version string) *HealthHandler {
	return &HealthHandler{
		deps:    deps,
		env:     env,
		version: version,
	}
}

type LivenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Env     string `json:"env,omitempty"`
}

type ReadinessResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version,omitempty"`
	Env          string            `json:"env,omitempty"`
	Dependencies map[string]string `json:"dependencies"`
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	resp := LivenessResponse{
		Status:  "ok",
		Version: h.version,
		Env:     h.env,
	}
	writeJSON(w, http.StatusOK, resp)
}

// Readiness always answers 200: the records live in memory, so an
// unreachable event sink degrades auditing but not the API.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.deps))
	for name := range h.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	deps := make(map[string]string, len(names))
	status := "ok"
	for _, name := range names {
		depCtx, depCancel := context.WithTimeout(ctx, time.Second)
		err := h.deps[name].Ping(depCtx)
		depCancel()
		if err != nil {
			deps[name] = "down"
			status = "degraded"
		} else {
			deps[name] = "ok"
		}
	}

	writeJSON(w, http.StatusOK, ReadinessResponse{
		Status:       status,
		Version:      h.version,
		Env:          h.env,
		Dependencies: deps,
	})
}
