package httpserver

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"sentinelops/internal/metrics"
)

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func withRequestLog(next http.Handler, logger *zap.Logger, m *metrics.Metrics) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		route := routeLabel(r.URL.Path)
		m.IncHTTPRequest(route, strconv.Itoa(rec.status))
		logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}

// routeLabel keeps metric cardinality bounded by collapsing incident ids.
func routeLabel(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/incidents/") && strings.HasSuffix(path, "/explain"):
		return "/api/incidents/{id}/explain"
	case strings.HasPrefix(path, "/api/incidents/"):
		return "/api/incidents/*"
	case strings.HasPrefix(path, "/api/"), path == "/metrics":
		return path
	}
	return "static"
}
