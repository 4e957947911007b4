package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"sentinelops/internal/incidents"
	"sentinelops/internal/inventory"
	"sentinelops/internal/metrics"
)

type Deps struct {
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer
	Store       *incidents.Store
	Explainer   *incidents.Explainer
	Catalog     *inventory.Catalog
	Oracle      *inventory.Oracle
	AIEnabled   bool
	FrontendDir string
}

func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.Handle("/api/health", healthHandler(d.AIEnabled))

	// Incidents
	mux.Handle("/api/incidents", &incidents.CollectionHandler{
		Store:  d.Store,
		Logger: d.Logger,
	})
	mux.Handle("/api/incidents/", &incidents.ExplainHandler{
		Explainer: d.Explainer,
		Logger:    d.Logger,
	})

	// Inventory
	mux.Handle("/api/inventory", &inventory.ListHandler{Catalog: d.Catalog})
	mux.Handle("/api/oracle", &inventory.OracleHandler{
		Oracle: d.Oracle,
		Logger: d.Logger,
	})

	if d.Gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	if d.FrontendDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(d.FrontendDir)))
	} else {
		mux.HandleFunc("/", frontendMissing)
	}

	// CORS wrapper (permissive, for the bundled UI and local tools).
	return withCORS(withRequestLog(mux, d.Logger, d.Metrics))
}

func healthHandler(aiEnabled bool) http.HandlerFunc {
	mode := "offline"
	if aiEnabled {
		mode = "ai"
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"mode":      mode,
		})
	}
}

func frontendMissing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "frontend not found"})
}
