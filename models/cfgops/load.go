package cfgops

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and parses an acsops.yml file.
func Load(path string) (*Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var root Root
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if root.Version != 1 {
		return nil, fmt.Errorf("config %s: unsupported version %d", path, root.Version)
	}
	return &root, nil
}
