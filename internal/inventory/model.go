package inventory

import "fmt"

type Status string

const (
	StatusOnline  Status = "Online"
	StatusWarning Status = "Warning"
	StatusOffline Status = "Offline"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOnline, StatusWarning, StatusOffline:
		return true
	}
	return false
}

type Asset struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Type   string `json:"type" yaml:"type"`
	Status Status `json:"status" yaml:"status"`
	Region string `json:"region" yaml:"region"`
}

func (a Asset) validate() error {
	if a.ID == "" || a.Name == "" {
		return fmt.Errorf("asset %q: id and name are required", a.ID)
	}
	if !a.Status.Valid() {
		return fmt.Errorf("asset %q: unknown status %q", a.ID, a.Status)
	}
	return nil
}

// DefaultAssets is the built-in mock inventory.
func DefaultAssets() []Asset {
	return []Asset{
		{ID: "SRV-001", Name: "Kubernetes Cluster Alpha", Type: "Server", Status: StatusOnline, Region: "us-east-1"},
		{ID: "DB-PROD", Name: "PostgreSQL Primary", Type: "Database", Status: StatusOnline, Region: "sa-east-1"},
		{ID: "FW-EDGE", Name: "Perimeter Firewall", Type: "Security", Status: StatusWarning, Region: "global"},
		{ID: "LB-HTTP", Name: "Nginx Load Balancer", Type: "Network", Status: StatusOnline, Region: "sa-east-1"},
		{ID: "BKP-SYS", Name: "Cold Backup System", Type: "Storage", Status: StatusOffline, Region: "us-west-2"},
	}
}
