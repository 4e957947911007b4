package incidents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Snapshotter persists the whole incident sequence. Save replaces the previous
// snapshot entirely; Load returns an empty sequence when nothing was saved.
type Snapshotter interface {
	Load(ctx context.Context) ([]Incident, error)
	Save(ctx context.Context, incs []Incident) error
}

// FileSnapshotter keeps the sequence as a JSON array in a single file.
type FileSnapshotter struct {
	Path string
}

func NewFileSnapshotter(path string) *FileSnapshotter {
	return &FileSnapshotter{Path: path}
}

func (f *FileSnapshotter) Load(ctx context.Context) ([]Incident, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	var incs []Incident
	if err := json.Unmarshal(data, &incs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.Path, err)
	}
	return incs, nil
}

// Save writes to a sibling temp file and renames it over Path, so a crash
// leaves either the previous snapshot or the new one.
func (f *FileSnapshotter) Save(ctx context.Context, incs []Incident) error {
	if incs == nil {
		incs = []Incident{}
	}
	data, err := json.MarshalIndent(incs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode incidents: %w", err)
	}
	if dir := filepath.Dir(f.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	tmpPath := f.Path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, f.Path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
