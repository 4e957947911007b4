package incidents

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSnapshotterMissingFile(t *testing.T) {
	f := NewFileSnapshotter(filepath.Join(t.TempDir(), "absent.json"))
	incs, err := f.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, incs)
}

func TestFileSnapshotterSaveCreatesDirAndLeavesNoTemp(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	path := filepath.Join(dir, "data.json")
	f := NewFileSnapshotter(path)

	want := []Incident{{ID: "INC-1000", Severity: "info", Service: "api", Summary: "s", OpenedAt: fixedNow}}
	require.NoError(t, f.Save(context.Background(), want))

	got, err := f.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileSnapshotterSaveNilWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, NewFileSnapshotter(path).Save(context.Background(), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestDiagnostics(t *testing.T) {
	diag := NewDiagnostics(rand.New(rand.NewSource(7)))

	line := diag("Payments API", "critical")
	assert.True(t, strings.HasPrefix(line, "trace="))
	assert.Contains(t, line, "host=payments-api-")
	assert.Contains(t, line, "level=critical")
	assert.NotEqual(t, line, diag("Payments API", "critical"))
}

func TestHostPrefix(t *testing.T) {
	assert.Equal(t, "node", hostPrefix("  "))
	assert.Equal(t, "db-primary", hostPrefix("DB_Primary"))
	assert.Len(t, hostPrefix(strings.Repeat("x", 40)), 24)
}
