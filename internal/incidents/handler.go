package incidents

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const maxBodyBytes = 64 << 10

// CollectionHandler serves /api/incidents.
type CollectionHandler struct {
	Store  *Store
	Logger *zap.Logger
}

func (h *CollectionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.Store.List())
	case http.MethodPost:
		h.create(w, r)
	case http.MethodDelete:
		// Save failures are logged by the store.
		_ = h.Store.Clear(r.Context())
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "success",
			"message": "All incidents were deleted.",
		})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *CollectionHandler) create(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable request body")
		return
	}
	if len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, &in); err != nil {
			h.Logger.Debug("reject incident payload", zap.Error(err))
			writeError(w, http.StatusBadRequest, "invalid incident payload")
			return
		}
	}
	inc, err := h.Store.Create(r.Context(), in)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Error("create incident", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, inc)
}

// ExplainHandler serves /api/incidents/{id}/explain.
type ExplainHandler struct {
	Explainer *Explainer
	Logger    *zap.Logger
}

func (h *ExplainHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	// Path is /api/incidents/{id}/explain
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 4 || parts[3] != "explain" || parts[2] == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	text, err := h.Explainer.Explain(r.Context(), parts[2])
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "incident not found")
			return
		}
		h.Logger.Error("explain incident", zap.String("id", parts[2]), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"explanation": text})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
