package codec

import "github.com/AndrewDonelson/persistent/internal/codec/ron"

// RON is the Rusty Object Notation codec. Pretty output indents nested
// values and ends each element with a comma.
type RON struct {
	Pretty bool
}

// Marshal serializes v to RON text.
func (c RON) Marshal(v any) ([]byte, error) {
	if c.Pretty {
		return ron.MarshalPretty(v)
	}
	return ron.Marshal(v)
}

// Unmarshal parses RON text into v.
func (RON) Unmarshal(data []byte, v any) error {
	return ron.Unmarshal(data, v)
}

// Name returns "ron" or "ron-pretty".
func (c RON) Name() string {
	if c.Pretty {
		return "ron-pretty"
	}
	return "ron"
}
