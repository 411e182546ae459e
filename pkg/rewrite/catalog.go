package rewrite

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog is the optional YAML file extending the built-in alias table and
// the analyzer's suggestion allow-list.
//
// Format:
//
//	aliases:
//	  codeshift.legacy.SomeOldId: codeshift.current.SomeId
//	allow:
//	  - codeshift.jakarta.JavaxToJakarta
type Catalog struct {
	Aliases map[string]string `yaml:"aliases"`
	Allow   []string          `yaml:"allow"`
}

// LoadCatalog reads and validates a catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("catalog file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return LoadCatalogFromBytes(data)
}

// LoadCatalogFromBytes parses a catalog from raw YAML.
func LoadCatalogFromBytes(data []byte) (*Catalog, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("catalog file is empty")
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("invalid YAML in catalog: %w", err)
	}

	for from, to := range catalog.Aliases {
		if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
			return nil, fmt.Errorf("catalog alias entries must be non-empty (%q: %q)", from, to)
		}
	}
	return &catalog, nil
}

// ApplyTo merges the catalog into an alias table.
func (c *Catalog) ApplyTo(aliases *Aliases) {
	if c == nil || aliases == nil {
		return
	}
	for from, to := range c.Aliases {
		aliases.Add(from, to)
	}
}
