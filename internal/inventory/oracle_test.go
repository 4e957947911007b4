package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sentinelops/internal/metrics"
)

type fakeGenerator struct {
	text   string
	err    error
	prompt string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.text, f.err
}

func singleAssetCatalog() *Catalog {
	return NewCatalog([]Asset{{ID: "DB-PROD", Name: "PostgreSQL Primary", Type: "Database", Status: StatusOnline, Region: "sa-east-1"}})
}

func TestPredictOffline(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	o := NewOracle(singleAssetCatalog(), nil, rand.New(rand.NewSource(1)), zap.NewNop(), m)

	text, err := o.Predict(context.Background())
	require.NoError(t, err)
	assert.Contains(t, text, "PostgreSQL Primary")
	assert.Contains(t, text, "sa-east-1")
	assert.Contains(t, text, "Database")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GenerationFailure.WithLabelValues("oracle", "unconfigured")))
}

func TestPredictGeneratorFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("network unreachable")}
	o := NewOracle(singleAssetCatalog(), gen, rand.New(rand.NewSource(1)), zap.NewNop(), nil)

	text, err := o.Predict(context.Background())
	require.NoError(t, err)

	want, err := FallbackPrediction(singleAssetCatalog().List()[0])
	require.NoError(t, err)
	assert.Equal(t, want, text)
}

func TestPredictGenerated(t *testing.T) {
	gen := &fakeGenerator{text: "<h3>Doom</h3>"}
	o := NewOracle(singleAssetCatalog(), gen, rand.New(rand.NewSource(1)), zap.NewNop(), nil)

	text, err := o.Predict(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "<h3>Doom</h3>", text)
	assert.Contains(t, gen.prompt, "PostgreSQL Primary")
	assert.Contains(t, gen.prompt, "sa-east-1")
}

func TestPredictEmptyCatalog(t *testing.T) {
	o := NewOracle(NewCatalog(nil), nil, rand.New(rand.NewSource(1)), zap.NewNop(), nil)
	_, err := o.Predict(context.Background())
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestHandlers(t *testing.T) {
	c := NewCatalog(DefaultAssets())

	rec := httptest.NewRecorder()
	(&ListHandler{Catalog: c}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/inventory", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var assets []Asset
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &assets))
	assert.Equal(t, DefaultAssets(), assets)

	oh := &OracleHandler{Oracle: NewOracle(c, nil, rand.New(rand.NewSource(3)), zap.NewNop(), nil), Logger: zap.NewNop()}
	rec = httptest.NewRecorder()
	oh.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/oracle", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.NotEmpty(t, out["prediction"])

	rec = httptest.NewRecorder()
	oh.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/oracle", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandlersWriteJSONHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	(&ListHandler{Catalog: NewCatalog(DefaultAssets())}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/inventory", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	oh := &OracleHandler{Oracle: NewOracle(NewCatalog(nil), nil, rand.New(rand.NewSource(1)), zap.NewNop(), nil), Logger: zap.NewNop()}
	rec = httptest.NewRecorder()
	oh.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/oracle", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"detail":"prediction unavailable"}`, rec.Body.String())
}
