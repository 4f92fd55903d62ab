// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// json.go — JSON codecs wrapping encoding/json in compact and indented form.

package codec

import "encoding/json"

// JSON is the compact JSON codec.
type JSON struct{}

// Marshal serializes v to JSON bytes.
func (JSON) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal deserializes JSON bytes into v.
func (JSON) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// Name returns "json".
func (JSON) Name() string { return "json" }

// JSONPretty writes JSON indented by two spaces. It reads any valid JSON.
type JSONPretty struct{}

// Marshal serializes v to indented JSON bytes.
func (JSONPretty) Marshal(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// Unmarshal deserializes JSON bytes into v.
func (JSONPretty) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// Name returns "json-pretty".
func (JSONPretty) Name() string { return "json-pretty" }
