package seed

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLPattern represents the YAML structure for a pattern file.
type YAMLPattern struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Rows        []string `yaml:"rows"`
}

// parseYAML parses a YAML pattern file. Rows use '.' or space for dead
// cells and any other character for live ones.
func parseYAML(data []byte) (Pattern, error) {
	var yp YAMLPattern
	if err := yaml.Unmarshal(data, &yp); err != nil {
		return Pattern{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	g, err := FromDots(yp.Rows)
	if err != nil {
		return Pattern{}, err
	}

	return Pattern{
		Name:        yp.Name,
		Description: yp.Description,
		Grid:        g,
	}, nil
}
