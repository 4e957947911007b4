package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sentinelops/internal/incidents"
)

// snapshotRow is the single row holding the whole incident sequence.
const snapshotRow = 1

var _ incidents.Snapshotter = (*Snapshotter)(nil)

// Snapshotter stores the incident sequence as one JSONB document in Postgres.
type Snapshotter struct {
	db  *sql.DB
	now func() time.Time
}

func NewSnapshotter(db *sql.DB) *Snapshotter {
	return &Snapshotter{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Snapshotter) Load(ctx context.Context) ([]incidents.Incident, error) {
	const q = `SELECT payload FROM incident_snapshots WHERE id = $1`
	var payload []byte
	if err := s.db.QueryRowContext(ctx, q, snapshotRow).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return decodeSnapshot(payload)
}

func (s *Snapshotter) Save(ctx context.Context, incs []incidents.Incident) error {
	payload, err := encodeSnapshot(incs)
	if err != nil {
		return err
	}
	const q = `
		INSERT INTO incident_snapshots (id, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
	`
	if _, err := s.db.ExecContext(ctx, q, snapshotRow, string(payload), s.now()); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func encodeSnapshot(incs []incidents.Incident) ([]byte, error) {
	if incs == nil {
		incs = []incidents.Incident{}
	}
	payload, err := json.Marshal(incs)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return payload, nil
}

func decodeSnapshot(payload []byte) ([]incidents.Incident, error) {
	var incs []incidents.Incident
	if err := json.Unmarshal(payload, &incs); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return incs, nil
}
