package inventory

import (
	"errors"
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is a fixed, read-only list of assets.
type Catalog struct {
	assets []Asset
}

func NewCatalog(assets []Asset) *Catalog {
	cp := make([]Asset, len(assets))
	copy(cp, assets)
	return &Catalog{assets: cp}
}

// List returns the assets in catalog order. The slice is a copy.
func (c *Catalog) List() []Asset {
	out := make([]Asset, len(c.assets))
	copy(out, c.assets)
	return out
}

func (c *Catalog) Len() int {
	return len(c.assets)
}

// Pick returns an asset chosen uniformly with rng.
func (c *Catalog) Pick(rng *rand.Rand) (Asset, bool) {
	if len(c.assets) == 0 {
		return Asset{}, false
	}
	return c.assets[rng.Intn(len(c.assets))], true
}

type catalogFile struct {
	Assets []Asset `yaml:"assets"`
}

// LoadCatalog reads assets from a YAML file. An empty path yields the built-in inventory.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return NewCatalog(DefaultAssets()), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read inventory: %w", err)
	}
	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse inventory: %w", err)
	}
	if len(cf.Assets) == 0 {
		return nil, errors.New("inventory file lists no assets")
	}
	seen := make(map[string]struct{}, len(cf.Assets))
	for _, a := range cf.Assets {
		if err := a.validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[a.ID]; dup {
			return nil, fmt.Errorf("asset %q listed twice", a.ID)
		}
		seen[a.ID] = struct{}{}
	}
	return NewCatalog(cf.Assets), nil
}
