package incidents

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"go.uber.org/zap"

	"sentinelops/internal/llm"
	"sentinelops/internal/metrics"
)

const featureExplain = "explain"

var fallbackTmpl = template.Must(template.New("explain").Parse(`
<p><b>Analysis (offline mode):</b></p>
<p>Service <b>{{.Service}}</b> raised an alert with severity <b>{{.Severity}}</b>.</p>
<ul>
  <li><b>Diagnosis:</b> the AI assistant could not be reached.</li>
{{- if .DeepLog}}
  <li><b>Diagnostic context:</b> <code>{{.DeepLog}}</code></li>
{{- end}}
  <li><b>Recommended action:</b> inspect the service logs over SSH.</li>
</ul>
`))

// Explainer produces an HTML explanation for a stored incident.
type Explainer struct {
	Store     *Store
	Generator llm.Generator
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
}

// Explain returns generated text for the incident, or the templated fallback
// when generation is unavailable or fails. Only ErrNotFound is returned.
func (e *Explainer) Explain(ctx context.Context, id string) (string, error) {
	inc, err := e.Store.Get(id)
	if err != nil {
		return "", err
	}
	fallback, err := FallbackExplanation(inc)
	if err != nil {
		return "", fmt.Errorf("render fallback for %s: %w", id, err)
	}

	res := llm.Generate(ctx, e.Generator, ExplainPrompt(inc), fallback)
	e.Metrics.ObserveGeneration(featureExplain, res.Generated, res.Reason)
	if !res.Generated {
		e.Logger.Warn("serving fallback explanation",
			zap.String("feature", featureExplain),
			zap.String("incident", inc.ID),
			zap.String("reason", res.Reason),
			zap.Error(res.Err))
	}
	return res.Text, nil
}

func FallbackExplanation(inc Incident) (string, error) {
	var buf bytes.Buffer
	if err := fallbackTmpl.Execute(&buf, inc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func ExplainPrompt(inc Incident) string {
	var b strings.Builder
	b.WriteString("Act as a senior SRE. Analyse this incident:\n")
	fmt.Fprintf(&b, "ID: %s | Service: %s | Severity: %s | Summary: %s\n", inc.ID, inc.Service, inc.Severity, inc.Summary)
	if inc.DeepLog != "" {
		fmt.Fprintf(&b, "Diagnostic context: %s\n", inc.DeepLog)
	}
	b.WriteString("Reply ONLY with simple HTML (<p>, <b>, <ul>, <li>).\n")
	return b.String()
}
