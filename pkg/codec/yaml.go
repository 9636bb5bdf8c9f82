package codec

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/rexliu/navb/pkg/nav"
)

// FormatYAML renders cfg as YAML using the same field names as the JSON form.
func FormatYAML(cfg nav.Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseYAML decodes YAML text into a configuration, all-or-nothing like Parse.
func ParseYAML(data []byte) (nav.Config, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nav.Config{}, fmt.Errorf("%w: empty input", ErrMalformed)
	}
	var cfg nav.Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nav.Config{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return cfg, nil
}
