package incidents

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// DiagnosticsFunc produces the deep log attached to a new incident.
type DiagnosticsFunc func(service, severity string) string

var lastErrors = []string{
	"connection reset by peer",
	"context deadline exceeded",
	"too many open files",
	"OOMKilled: container exceeded memory limit",
	"TLS handshake timeout",
	"disk quota exceeded on /var/lib/data",
	"upstream returned 503 Service Unavailable",
}

// NewDiagnostics returns a DiagnosticsFunc that synthesizes plausible host
// readings from rng. rng is guarded internally.
func NewDiagnostics(rng *rand.Rand) DiagnosticsFunc {
	var mu sync.Mutex
	return func(service, severity string) string {
		mu.Lock()
		defer mu.Unlock()

		host := fmt.Sprintf("%s-%02d", hostPrefix(service), rng.Intn(12)+1)
		var b strings.Builder
		fmt.Fprintf(&b, "trace=%s host=%s pid=%d", uuid.NewString(), host, 1000+rng.Intn(60000))
		fmt.Fprintf(&b, " cpu=%d%% heap=%dMiB p99=%dms", 20+rng.Intn(80), 128+rng.Intn(3968), 5+rng.Intn(2500))
		fmt.Fprintf(&b, " level=%s last_error=%q", severity, lastErrors[rng.Intn(len(lastErrors))])
		return b.String()
	}
}

func hostPrefix(service string) string {
	s := strings.ToLower(strings.TrimSpace(service))
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		case r == ' ' || r == '_' || r == '.':
			return '-'
		}
		return -1
	}, s)
	if s == "" {
		return "node"
	}
	if len(s) > 24 {
		s = s[:24]
	}
	return s
}
