package story

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Write saves a story as YAML
func Write(s *Story, path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode story: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Read loads a story, applies defaults and validates it
func Read(path string) (*Story, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Story
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	s.ApplyDefaults()
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid story %s: %w", path, err)
	}
	return &s, nil
}
