// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// toml.go — TOML codec built on BurntSushi/toml. Indent only changes how
// sub-tables are laid out, so every TOML codec reads every other's output.

package codec

import (
	"bytes"

	"github.com/BurntSushi/toml"
)

// TOML encodes values as TOML documents. The top-level value must be a
// struct or a map.
type TOML struct {
	// Indent is prepended once per nesting level to sub-table lines.
	Indent string
}

// Marshal serializes v to a TOML document.
func (c TOML) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = c.Indent
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal deserializes a TOML document into v.
func (TOML) Unmarshal(data []byte, v any) error {
	return toml.Unmarshal(data, v)
}

// Name returns "toml", or "toml-pretty" when an indent is set.
func (c TOML) Name() string {
	if c.Indent != "" {
		return "toml-pretty"
	}
	return "toml"
}
