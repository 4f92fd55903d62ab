package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	var err error
	// Canonical ordering keeps map encodings stable across writes.
	if cborEnc, err = cbor.CanonicalEncOptions().EncMode(); err != nil {
		panic(err)
	}
	cborDec, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// CBOR is a binary codec using RFC 8949 encoding.
type CBOR struct{}

// Marshal serializes v to canonical CBOR bytes.
func (CBOR) Marshal(v any) ([]byte, error) {
	return cborEnc.Marshal(v)
}

// Unmarshal deserializes CBOR bytes into v. Untyped maps decode as
// map[string]any.
func (CBOR) Unmarshal(data []byte, v any) error {
	return cborDec.Unmarshal(data, v)
}

// Name returns "cbor".
func (CBOR) Name() string { return "cbor" }
