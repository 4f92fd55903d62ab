package codec

import "gopkg.in/yaml.v3"

// YAML is the YAML 1.2 codec.
type YAML struct{}

// Marshal serializes v to a YAML document.
func (YAML) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Unmarshal deserializes a YAML document into v.
func (YAML) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// Name returns "yaml".
func (YAML) Name() string { return "yaml" }
