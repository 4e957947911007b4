package inventory

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// ListHandler serves /api/inventory.
type ListHandler struct {
	Catalog *Catalog
}

func (h *ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.Catalog.List())
}

// OracleHandler serves /api/oracle.
type OracleHandler struct {
	Oracle *Oracle
	Logger *zap.Logger
}

func (h *OracleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	text, err := h.Oracle.Predict(r.Context())
	if err != nil {
		h.Logger.Error("chaos prediction", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "prediction unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"prediction": text})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
