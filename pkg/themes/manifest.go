package themes

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

// DefaultTheme names the embedded manifest.
const DefaultTheme = "heroform"

//go:embed default.yaml
var defaultManifest []byte

// Default returns the embedded manifest.
func Default() (*theme.Manifest, error) {
	return ParseManifest(defaultManifest)
}

// LoadManifest reads a JSON or YAML manifest from disk.
func LoadManifest(path string) (*theme.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("themes: read manifest %s: %w", path, err)
	}
	manifest, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("themes: %s: %w", path, err)
	}
	return manifest, nil
}

// ParseManifest decodes JSON or YAML manifest bytes. YAML is decoded first
// and re-encoded as JSON so both formats share the manifest's JSON mapping.
func ParseManifest(data []byte) (*theme.Manifest, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("themes: manifest is empty")
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		if yamlErr := yaml.Unmarshal(data, &raw); yamlErr != nil {
			return nil, fmt.Errorf("themes: decode manifest: %w", yamlErr)
		}
	}

	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("themes: normalise manifest: %w", err)
	}
	var manifest theme.Manifest
	if err := json.Unmarshal(normalized, &manifest); err != nil {
		return nil, fmt.Errorf("themes: decode manifest: %w", err)
	}
	if strings.TrimSpace(manifest.Name) == "" {
		return nil, fmt.Errorf("themes: manifest name is required")
	}
	return &manifest, nil
}
