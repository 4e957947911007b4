package inventory

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"math/rand"
	"sync"

	"go.uber.org/zap"

	"sentinelops/internal/llm"
	"sentinelops/internal/metrics"
)

const featureOracle = "oracle"

var ErrEmptyCatalog = errors.New("inventory catalog is empty")

var chaosTmpl = template.Must(template.New("chaos").Parse(`
<h3>Chaos vision (simulation)</h3>
<p>I foresee <b>{{.Name}}</b> suffering a catastrophic failure soon.</p>
<ul>
  <li><b>Scenario:</b> an intern runs an UPDATE without a WHERE clause.</li>
  <li><b>Impact:</b> total loss of data integrity in region {{.Region}}.</li>
  <li><b>SRE question:</b> if this happened right now, would your {{.Type}} backup be ready?</li>
</ul>
`))

// Oracle predicts an imaginary disaster for a random inventory asset.
type Oracle struct {
	Catalog   *Catalog
	Generator llm.Generator
	Logger    *zap.Logger
	Metrics   *metrics.Metrics

	mu  sync.Mutex
	rng *rand.Rand
}

func NewOracle(catalog *Catalog, gen llm.Generator, rng *rand.Rand, logger *zap.Logger, m *metrics.Metrics) *Oracle {
	return &Oracle{
		Catalog:   catalog,
		Generator: gen,
		Logger:    logger,
		Metrics:   m,
		rng:       rng,
	}
}

// Predict returns an HTML narrative for a randomly chosen asset, falling back
// to a fixed template when generation is unavailable or fails.
func (o *Oracle) Predict(ctx context.Context) (string, error) {
	o.mu.Lock()
	target, ok := o.Catalog.Pick(o.rng)
	o.mu.Unlock()
	if !ok {
		return "", ErrEmptyCatalog
	}

	fallback, err := FallbackPrediction(target)
	if err != nil {
		return "", fmt.Errorf("render chaos fallback for %s: %w", target.ID, err)
	}
	res := llm.Generate(ctx, o.Generator, PredictionPrompt(target), fallback)
	o.Metrics.ObserveGeneration(featureOracle, res.Generated, res.Reason)
	if !res.Generated {
		o.Logger.Warn("serving fallback prediction",
			zap.String("feature", featureOracle),
			zap.String("asset", target.ID),
			zap.String("reason", res.Reason),
			zap.Error(res.Err))
	}
	return res.Text, nil
}

func FallbackPrediction(a Asset) (string, error) {
	var buf bytes.Buffer
	if err := chaosTmpl.Execute(&buf, a); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func PredictionPrompt(a Asset) string {
	return fmt.Sprintf(`You are the "Chaos Oracle", an AI that predicts bizarre and creative IT disasters to train teams.
Create a hypothetical catastrophic failure scenario for this asset:
Name: %s | Type: %s | Region: %s

Be creative, technical and slightly dramatic.
Reply in HTML (<h3> for the title, <p> for text, <ul><li> for details).
End with a challenging question for the engineer.
`, a.Name, a.Type, a.Region)
}
