// Package mockdata holds the demo fleet the dashboard serves when no
// database is configured.
package mockdata

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ukydev/fleet-dashboard/internal/models"
)

//go:embed fleet.yaml
var defaultFleet []byte

// Fleet is a complete snapshot of dashboard records.
type Fleet struct {
	Users       []models.User        `yaml:"users"`
	Vehicles    []models.Vehicle     `yaml:"vehicles"`
	Trips       []models.Trip        `yaml:"trips"`
	Costs       []models.Cost        `yaml:"costs"`
	Maintenance []models.Maintenance `yaml:"maintenance"`
	Chauffeurs  []models.Chauffeur   `yaml:"chauffeurs"`
}

// Default returns the embedded demo fleet.
func Default() (*Fleet, error) {
	return Parse(defaultFleet)
}

// Parse decodes a fleet document.
func Parse(data []byte) (*Fleet, error) {
	var f Fleet
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode fleet: %w", err)
	}
	return &f, nil
}

// Read decodes a fleet document from r.
func Read(r io.Reader) (*Fleet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read fleet: %w", err)
	}
	return Parse(data)
}

// Load returns the fleet stored at path, or the embedded demo fleet when
// path is empty.
func Load(path string) (*Fleet, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fleet file: %w", err)
	}
	defer f.Close()
	return Read(f)
}
