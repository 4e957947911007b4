package incidents

import (
	"errors"
	"fmt"
	"time"
)

const (
	DefaultSeverity = "info"
	DefaultService  = "unknown"
	DefaultSummary  = "No description"

	// MaxFieldLen bounds each free-form field of a create request.
	MaxFieldLen = 4096

	idPrefix = "INC-"
	idBase   = 1000
)

var (
	ErrNotFound     = errors.New("incident not found")
	ErrInvalidInput = errors.New("invalid incident input")
)

type Incident struct {
	ID           string    `json:"id"`
	Severity     string    `json:"severity"`
	Service      string    `json:"service"`
	Summary      string    `json:"summary"`
	OpenedAt     time.Time `json:"opened_at"`
	Acknowledged bool      `json:"acknowledged"`
	DeepLog      string    `json:"deep_log,omitempty"`
}

// CreateInput is the body of a create request. Nil fields take the package defaults.
type CreateInput struct {
	Severity *string `json:"severity"`
	Service  *string `json:"service"`
	Summary  *string `json:"summary"`
}

func (in CreateInput) Validate() error {
	for name, v := range map[string]*string{
		"severity": in.Severity,
		"service":  in.Service,
		"summary":  in.Summary,
	} {
		if v != nil && len(*v) > MaxFieldLen {
			return fmt.Errorf("%w: %s exceeds %d bytes", ErrInvalidInput, name, MaxFieldLen)
		}
	}
	return nil
}

func (in CreateInput) withDefaults() (severity, service, summary string) {
	return valueOr(in.Severity, DefaultSeverity), valueOr(in.Service, DefaultService), valueOr(in.Summary, DefaultSummary)
}

func valueOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}
