package server

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/giantswarm/kubectl-sandbox/internal/catalog"
)

// Probe check values.
const (
	checkOK           = "ok"
	checkNotReady     = "not ready"
	checkShuttingDown = "shutting down"
	checkMissing      = "missing"
	checkDisabled     = "disabled"
)

// HealthChecker serves the liveness, readiness and detailed health probes.
type HealthChecker struct {
	ready         atomic.Bool
	serverContext *ServerContext
	startTime     time.Time
}

// NewHealthChecker creates a HealthChecker that starts out ready.
func NewHealthChecker(sc *ServerContext) *HealthChecker {
	h := &HealthChecker{
		serverContext: sc,
		startTime:     time.Now(),
	}
	h.ready.Store(true)
	return h
}

// SetReady flips readiness; the serve command clears it when shutdown begins.
func (h *HealthChecker) SetReady(ready bool) {
	h.ready.Store(ready)
}

// IsReady returns whether the server is ready to receive traffic.
func (h *HealthChecker) IsReady() bool {
	return h.ready.Load()
}

// HealthResponse represents the JSON response for health endpoints.
type HealthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks,omitempty"`
	Version string            `json:"version,omitempty"`
}

// DetailedHealthResponse adds uptime, the loaded catalog and the
// instrumentation setup to the probe status.
type DetailedHealthResponse struct {
	Status          string                      `json:"status"`
	Version         string                      `json:"version,omitempty"`
	Uptime          string                      `json:"uptime"`
	Catalog         *CatalogStatus              `json:"catalog,omitempty"`
	Instrumentation *InstrumentationHealthCheck `json:"instrumentation,omitempty"`
}

// CatalogStatus reports where the catalog came from and how many objects of
// each kind it serves.
type CatalogStatus struct {
	Source           string         `json:"source"`
	DefaultNamespace string         `json:"default_namespace"`
	Objects          map[string]int `json:"objects"`
}

// InstrumentationHealthCheck provides health information about instrumentation.
type InstrumentationHealthCheck struct {
	Enabled         bool   `json:"enabled"`
	MetricsExporter string `json:"metrics_exporter,omitempty"`
	TracingExporter string `json:"tracing_exporter,omitempty"`
}

// LivenessHandler answers /healthz. Responding at all means the process is alive.
func (h *HealthChecker) LivenessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, http.StatusOK, HealthResponse{
			Status:  checkOK,
			Version: h.version(),
		})
	})
}

// ReadinessHandler answers /readyz with one entry per check. Any failing
// check other than instrumentation makes the probe fail with 503.
func (h *HealthChecker) ReadinessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		checks, ok := h.evaluate()

		response := HealthResponse{Status: checkOK, Checks: checks}
		code := http.StatusOK
		if !ok {
			response.Status = checkNotReady
			code = http.StatusServiceUnavailable
		}
		writeHealth(w, code, response)
	})
}

// DetailedHealthHandler answers /healthz/detailed.
func (h *HealthChecker) DetailedHealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := DetailedHealthResponse{
			Status:  checkOK,
			Version: h.version(),
			Uptime:  time.Since(h.startTime).Truncate(time.Second).String(),
		}
		if h.serverContext != nil {
			response.Catalog = h.getCatalogStatus()
			response.Instrumentation = h.getInstrumentationStatus()
		}

		code := http.StatusOK
		switch {
		case !h.ready.Load():
			response.Status = checkNotReady
			code = http.StatusServiceUnavailable
		case h.serverContext != nil && h.serverContext.IsShutdown():
			response.Status = checkShuttingDown
			code = http.StatusServiceUnavailable
		}
		writeHealth(w, code, response)
	})
}

// RegisterHealthEndpoints registers health check endpoints on the given mux.
func (h *HealthChecker) RegisterHealthEndpoints(mux *http.ServeMux) {
	mux.Handle("/healthz", h.LivenessHandler())
	mux.Handle("/readyz", h.ReadinessHandler())
	mux.Handle("/healthz/detailed", h.DetailedHealthHandler())
}

// evaluate runs the readiness checks. Instrumentation is informational only.
func (h *HealthChecker) evaluate() (map[string]string, bool) {
	checks := map[string]string{
		"ready":    checkOK,
		"shutdown": checkOK,
	}
	ok := true

	if !h.ready.Load() {
		checks["ready"] = checkNotReady
		ok = false
	}

	sc := h.serverContext
	if sc == nil {
		return checks, ok
	}

	if sc.IsShutdown() {
		checks["shutdown"] = checkShuttingDown
		ok = false
	}

	if sc.Executor() == nil {
		checks["catalog"] = checkMissing
		ok = false
	} else {
		checks["catalog"] = checkOK
	}

	if provider := sc.InstrumentationProvider(); provider != nil {
		checks["instrumentation"] = checkDisabled
		if provider.Enabled() {
			checks["instrumentation"] = checkOK
		}
	}

	return checks, ok
}

func (h *HealthChecker) version() string {
	if h.serverContext == nil {
		return ""
	}
	if config := h.serverContext.Config(); config != nil {
		return config.Version
	}
	return ""
}

func writeHealth(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

// getCatalogStatus counts the catalog objects across all namespaces.
func (h *HealthChecker) getCatalogStatus() *CatalogStatus {
	executor := h.serverContext.Executor()
	if executor == nil {
		return nil
	}
	config := h.serverContext.Config()
	c := executor.Catalog()

	status := &CatalogStatus{
		Source:           "builtin",
		DefaultNamespace: config.DefaultNamespace,
		Objects:          make(map[string]int),
	}
	if config.CatalogPath != "" {
		status.Source = config.CatalogPath
	}
	for _, kind := range catalog.Kinds() {
		status.Objects[kind.Name] = c.Count(kind.Name, "")
	}
	return status
}

func (h *HealthChecker) getInstrumentationStatus() *InstrumentationHealthCheck {
	provider := h.serverContext.InstrumentationProvider()
	check := &InstrumentationHealthCheck{Enabled: provider.Enabled()}
	if check.Enabled {
		check.MetricsExporter = provider.Config().MetricsExporter
		check.TracingExporter = provider.Config().TracingExporter
	}
	return check
}
