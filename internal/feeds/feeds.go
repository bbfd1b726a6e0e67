package feeds

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ListConfig is YAML config structure
// feeds:
//   - https://...
type ListConfig struct {
	Feeds []string `yaml:"feeds"`
}

// Load reads the feed URL list from a YAML file.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feed list: %w", err)
	}
	defer f.Close()

	var cfg ListConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode feed list: %w", err)
	}
	return cfg.Feeds, nil
}
