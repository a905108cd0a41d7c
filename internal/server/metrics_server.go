package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/giantswarm/kubectl-sandbox/internal/instrumentation"
)

// DefaultMetricsAddr is the listen address of the metrics server.
const DefaultMetricsAddr = ":9090"

// MetricsServerConfig configures the dedicated metrics listener.
type MetricsServerConfig struct {
	Addr                    string
	InstrumentationProvider *instrumentation.Provider
}

// DefaultMetricsPath is the scrape path used when the provider names none.
const DefaultMetricsPath = "/metrics"

// MetricsServer exposes the Prometheus scrape endpoint on its own port so
// scrapes never share the API listener.
type MetricsServer struct {
	addr   string
	path   string
	server *http.Server
}

// NewMetricsServer builds, but does not start, the metrics server.
func NewMetricsServer(config MetricsServerConfig) (*MetricsServer, error) {
	if config.InstrumentationProvider == nil {
		return nil, errors.New("instrumentation provider is required")
	}

	addr := config.Addr
	if addr == "" {
		addr = DefaultMetricsAddr
	}

	path := config.InstrumentationProvider.Config().PrometheusEndpoint
	if path == "" {
		path = DefaultMetricsPath
	}

	mux := http.NewServeMux()
	mux.Handle(path, config.InstrumentationProvider.PrometheusHandler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return &MetricsServer{
		addr: addr,
		path: path,
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Addr returns the listen address.
func (m *MetricsServer) Addr() string {
	return m.addr
}

// Path returns the scrape path.
func (m *MetricsServer) Path() string {
	return m.path
}

// Handler returns the metrics mux.
func (m *MetricsServer) Handler() http.Handler {
	return m.server.Handler
}

// Start listens until Shutdown is called. It returns http.ErrServerClosed
// after a clean shutdown.
func (m *MetricsServer) Start() error {
	if err := m.server.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return fmt.Errorf("metrics server failed: %w", err)
	}
	return nil
}

// Shutdown stops the server. It is safe to call without Start.
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	return m.server.Shutdown(ctx)
}
