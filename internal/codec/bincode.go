package codec

import "github.com/AndrewDonelson/persistent/internal/codec/bincode"

// Bincode is the fixed-int little-endian bincode codec. It is not
// self-describing, so values must be decoded into the type they were
// encoded from.
type Bincode struct{}

// Marshal serializes v to bincode bytes.
func (Bincode) Marshal(v any) ([]byte, error) {
	return bincode.Marshal(v)
}

// Unmarshal deserializes bincode bytes into v.
func (Bincode) Unmarshal(data []byte, v any) error {
	return bincode.Unmarshal(data, v)
}

// Name returns "bincode".
func (Bincode) Name() string { return "bincode" }
