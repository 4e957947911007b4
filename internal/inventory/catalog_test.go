package inventory

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := LoadCatalog("")
	require.NoError(t, err)

	assets := c.List()
	require.Len(t, assets, 5)
	assert.Equal(t, "SRV-001", assets[0].ID)
	assert.Equal(t, "BKP-SYS", assets[4].ID)
	for _, a := range assets {
		assert.True(t, a.Status.Valid(), a.ID)
	}
}

func TestListIsReadOnly(t *testing.T) {
	c := NewCatalog(DefaultAssets())
	got := c.List()
	got[0].Name = "changed"

	assert.Equal(t, "Kubernetes Cluster Alpha", c.List()[0].Name)
}

func TestLoadCatalogFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	data := `
assets:
  - id: MQ-01
    name: RabbitMQ Cluster
    type: Messaging
    status: Warning
    region: eu-west-1
  - id: CDN
    name: Edge CDN
    type: Network
    status: Online
    region: global
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, []Asset{
		{ID: "MQ-01", Name: "RabbitMQ Cluster", Type: "Messaging", Status: StatusWarning, Region: "eu-west-1"},
		{ID: "CDN", Name: "Edge CDN", Type: "Network", Status: StatusOnline, Region: "global"},
	}, c.List())
}

func TestLoadCatalogRejectsBadFiles(t *testing.T) {
	cases := map[string]string{
		"empty":      "assets: []\n",
		"bad status": "assets:\n  - {id: A, name: a, status: Degraded}\n",
		"no name":    "assets:\n  - {id: A, status: Online}\n",
		"duplicate":  "assets:\n  - {id: A, name: a, status: Online}\n  - {id: A, name: b, status: Online}\n",
		"not yaml":   "assets: [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "inventory.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := LoadCatalog(path)
			assert.Error(t, err)
		})
	}

	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestPick(t *testing.T) {
	c := NewCatalog(DefaultAssets())
	rng := rand.New(rand.NewSource(42))
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		a, ok := c.Pick(rng)
		require.True(t, ok)
		seen[a.ID] = true
	}
	assert.Len(t, seen, 5)

	_, ok := NewCatalog(nil).Pick(rng)
	assert.False(t, ok)
}
