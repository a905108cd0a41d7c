package middleware

import (
	"net/http"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/giantswarm/kubectl-sandbox/internal/instrumentation"
)

// statusRecorder remembers the first status code written through it.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (rw *statusRecorder) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.status = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *statusRecorder) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// Flush keeps streamed MCP responses flowing.
func (rw *statusRecorder) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Routes lists the paths a listener serves, for bounding the path label.
type Routes struct {
	// Paths are labelled as themselves.
	Paths []string
	// SessionPaths are labelled as themselves, and a path followed by one
	// session segment (/mcp/{id}) is labelled <path>/:session.
	SessionPaths []string
}

// HTTPMetrics records a request counter and a duration histogram per
// method, route and status code. Paths outside routes are labelled
// instrumentation.LabelOther.
//
// A nil or disabled provider turns the middleware into a pass-through.
func HTTPMetrics(provider *instrumentation.Provider, routes Routes) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if provider == nil || !provider.Enabled() {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			provider.Metrics().RecordHTTPRequest(r.Context(), r.Method,
				routeLabel(r.URL.Path, routes), rec.status, time.Since(start))
		})
	}
}

// sessionSegmentPattern matches the trailing session id of MCP streamable HTTP paths.
var sessionSegmentPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{8,64}$`)

// routeLabel maps a request path onto a bounded metric label. Exact matches
// are tried across every route before any session folding.
func routeLabel(path string, routes Routes) string {
	if slices.Contains(routes.Paths, path) || slices.Contains(routes.SessionPaths, path) {
		return path
	}
	for _, route := range routes.SessionPaths {
		if rest, ok := strings.CutPrefix(path, route+"/"); ok && sessionSegmentPattern.MatchString(rest) {
			return route + "/:session"
		}
	}
	return instrumentation.LabelOther
}
