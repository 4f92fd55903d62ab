// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// format.go — the closed set of storage formats and their dispatch to the
// codec implementations. Pretty variants differ from their plain family
// member only in whitespace.

package persistent

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/AndrewDonelson/persistent/internal/codec"
)

// Format selects the encoding used for a persisted value.
type Format int

const (
	Bincode Format = iota + 1
	INI
	JSON
	JSONPretty
	RON
	RONPretty
	TOML
	TOMLPretty
	YAML
	MsgPack
	CBOR
)

const (
	opSerialize   = "serialize"
	opDeserialize = "deserialize"
)

var errInvalidUTF8 = errors.New("input is not valid UTF-8")

// codecs maps each Format to its codec. The codec's Name is the format's
// canonical text form.
var codecs = map[Format]codec.Codec{
	Bincode:    codec.Bincode{},
	INI:        codec.INI{},
	JSON:       codec.JSON{},
	JSONPretty: codec.JSONPretty{},
	RON:        codec.RON{},
	RONPretty:  codec.RON{Pretty: true},
	TOML:       codec.TOML{},
	TOMLPretty: codec.TOML{Indent: "  "},
	YAML:       codec.YAML{},
	MsgPack:    codec.MsgPack{},
	CBOR:       codec.CBOR{},
}

// Formats returns every supported format in declaration order.
func Formats() []Format {
	out := make([]Format, 0, len(codecs))
	for f := Bincode; f <= CBOR; f++ {
		out = append(out, f)
	}
	return out
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	_, ok := codecs[f]
	return ok
}

func (f Format) String() string {
	if c, ok := codecs[f]; ok {
		return c.Name()
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// IsBinary reports whether f produces non-textual output.
func (f Format) IsBinary() bool {
	switch f {
	case Bincode, MsgPack, CBOR:
		return true
	}
	return false
}

// Family returns the plain member of f's format family, e.g. JSON for
// JSONPretty.
func (f Format) Family() Format {
	switch f {
	case JSONPretty:
		return JSON
	case RONPretty:
		return RON
	case TOMLPretty:
		return TOML
	}
	return f
}

// ParseFormat returns the Format with the given name. Matching is
// case-insensitive and accepts "_" in place of "-" ("json_pretty").
func ParseFormat(name string) (Format, error) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	if n == "yml" {
		n = "yaml"
	}
	for f, c := range codecs {
		if c.Name() == n {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown format %q", ErrConfig, name)
}

// FormatForPath infers a plain Format from a file extension.
func FormatForPath(path string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "bin", "bincode":
		return Bincode, nil
	case "cfg", "conf":
		return INI, nil
	case "mpk":
		return MsgPack, nil
	case "":
		return 0, fmt.Errorf("%w: %q has no extension", ErrConfig, path)
	}
	return ParseFormat(ext)
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: unknown format %d", ErrConfig, int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	v, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Serialize encodes v. Errors are *FormatError matching ErrEncodeFailed.
func (f Format) Serialize(v any) ([]byte, error) {
	c, ok := codecs[f]
	if !ok {
		return nil, &FormatError{Format: f, Op: opSerialize, Err: ErrUnsupported}
	}
	b, err := c.Marshal(v)
	if err != nil {
		return nil, &FormatError{Format: f, Op: opSerialize, Err: err}
	}
	return b, nil
}

// Deserialize decodes data into the value pointed to by v. Textual formats
// reject input that is not valid UTF-8 before parsing. Errors are
// *FormatError matching ErrDecodeFailed.
func (f Format) Deserialize(data []byte, v any) error {
	c, ok := codecs[f]
	if !ok {
		return &FormatError{Format: f, Op: opDeserialize, Err: ErrUnsupported}
	}
	if !f.IsBinary() && !utf8.Valid(data) {
		return &FormatError{Format: f, Op: opDeserialize, Err: errInvalidUTF8}
	}
	if err := c.Unmarshal(data, v); err != nil {
		return &FormatError{Format: f, Op: opDeserialize, Err: err}
	}
	return nil
}
