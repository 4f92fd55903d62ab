package codec

import (
	"bytes"

	"gopkg.in/ini.v1"
)

// INI encodes struct values as INI files. Top-level scalar fields go into
// the default section; nested structs become named sections.
type INI struct{}

// Marshal serializes the struct v to INI bytes.
func (INI) Marshal(v any) ([]byte, error) {
	p, err := structPtr(v, true)
	if err != nil {
		return nil, err
	}
	f := ini.Empty()
	if err := ini.ReflectFrom(f, p); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal deserializes INI bytes into the struct pointed to by v.
func (INI) Unmarshal(data []byte, v any) error {
	p, err := structPtr(v, false)
	if err != nil {
		return err
	}
	f, err := ini.Load(data)
	if err != nil {
		return err
	}
	return f.MapTo(p)
}

// Name returns "ini".
func (INI) Name() string { return "ini" }
