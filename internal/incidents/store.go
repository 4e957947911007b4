package incidents

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"sentinelops/internal/metrics"
)

// Store holds incidents newest-first and rewrites the whole snapshot on every
// mutation. The in-memory sequence is authoritative; a failed save is logged
// and the mutation still succeeds.
type Store struct {
	mu    sync.RWMutex
	items []Incident

	snap    Snapshotter
	logger  *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
	diag    DiagnosticsFunc
}

type Option func(*Store)

// WithClock overrides the time source used for opened_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithDiagnostics sets the deep log generator. A nil func disables deep logs.
func WithDiagnostics(fn DiagnosticsFunc) Option {
	return func(s *Store) { s.diag = fn }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// NewStore loads the snapshot and returns the store. A missing or unreadable
// snapshot yields an empty store.
func NewStore(ctx context.Context, snap Snapshotter, logger *zap.Logger, opts ...Option) *Store {
	s := &Store{
		snap:   snap,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC().Round(0) },
	}
	for _, opt := range opts {
		opt(s)
	}
	incs, err := snap.Load(ctx)
	if err != nil {
		s.metrics.IncPersistError("load")
		logger.Warn("incident snapshot unreadable, starting empty", zap.Error(err))
		incs = nil
	}
	s.items = incs
	s.metrics.SetStored(len(incs))
	logger.Info("incident store ready", zap.Int("incidents", len(incs)))
	return s
}

// List returns all incidents, newest first.
func (s *Store) List() []Incident {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Incident, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Get(id string) (Incident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, inc := range s.items {
		if inc.ID == id {
			return inc, nil
		}
	}
	return Incident{}, ErrNotFound
}

// Create records a new incident at the head of the sequence.
func (s *Store) Create(ctx context.Context, in CreateInput) (Incident, error) {
	if err := in.Validate(); err != nil {
		return Incident{}, err
	}
	severity, service, summary := in.withDefaults()
	inc := Incident{
		Severity: severity,
		Service:  service,
		Summary:  summary,
		OpenedAt: s.now(),
	}
	if s.diag != nil {
		inc.DeepLog = s.diag(service, severity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	inc.ID = formatID(s.nextSeqLocked())
	items := make([]Incident, 0, len(s.items)+1)
	items = append(items, inc)
	s.items = append(items, s.items...)
	_ = s.saveLocked(ctx, "create")
	s.metrics.IncCreated(len(s.items))
	s.logger.Info("incident created",
		zap.String("id", inc.ID),
		zap.String("service", inc.Service),
		zap.String("severity", inc.Severity))
	return inc, nil
}

// Clear removes every incident. It is idempotent. The in-memory sequence is
// emptied even when the snapshot save fails; that error is returned.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.items)
	s.items = nil
	err := s.saveLocked(ctx, "clear")
	s.metrics.IncCleared()
	s.logger.Info("incidents cleared", zap.Int("removed", n))
	return err
}

func (s *Store) saveLocked(ctx context.Context, op string) error {
	if err := s.snap.Save(ctx, s.items); err != nil {
		s.metrics.IncPersistError("save")
		s.logger.Error("persist incidents", zap.String("op", op), zap.Error(err))
		return err
	}
	return nil
}

// nextSeqLocked returns one past the highest stored sequence number, or the
// base on an empty store. For a create-only history this equals base+count.
func (s *Store) nextSeqLocked() int {
	next := idBase
	for _, inc := range s.items {
		if n, ok := parseID(inc.ID); ok && n >= next {
			next = n + 1
		}
	}
	return next
}

func formatID(n int) string {
	return idPrefix + strconv.Itoa(n)
}

func parseID(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, idPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}
