package persistent_test

import (
	"errors"
	"testing"

	"github.com/AndrewDonelson/persistent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Window is representable in every format, INI included (nested struct
// becomes a section).
type Window struct {
	Title    string   `json:"title" yaml:"title" toml:"title" ini:"title" ron:"title" msgpack:"title" cbor:"title"`
	Width    int      `json:"width" yaml:"width" toml:"width" ini:"width" ron:"width" msgpack:"width" cbor:"width"`
	Scale    float64  `json:"scale" yaml:"scale" toml:"scale" ini:"scale" ron:"scale" msgpack:"scale" cbor:"scale"`
	Maximize bool     `json:"maximize" yaml:"maximize" toml:"maximize" ini:"maximize" ron:"maximize" msgpack:"maximize" cbor:"maximize"`
	Position Position `json:"position" yaml:"position" toml:"position" ini:"position" ron:"position" msgpack:"position" cbor:"position"`
}

type Position struct {
	X int `json:"x" yaml:"x" toml:"x" ini:"x" ron:"x" msgpack:"x" cbor:"x"`
	Y int `json:"y" yaml:"y" toml:"y" ini:"y" ron:"y" msgpack:"y" cbor:"y"`
}

var sampleWindow = Window{
	Title:    "Smart \"window\" ✓",
	Width:    1280,
	Scale:    1.5,
	Maximize: true,
	Position: Position{X: -20, Y: 40},
}

func TestFormat_RoundTripAll(t *testing.T) {
	for _, f := range persistent.Formats() {
		t.Run(f.String(), func(t *testing.T) {
			b, err := f.Serialize(sampleWindow)
			require.NoError(t, err)

			var got Window
			require.NoError(t, f.Deserialize(b, &got))
			assert.Equal(t, sampleWindow, got)
		})
	}
}

func TestFormat_PrettyAndPlainAgree(t *testing.T) {
	for _, f := range []persistent.Format{persistent.JSONPretty, persistent.RONPretty, persistent.TOMLPretty} {
		plain := f.Family()
		require.NotEqual(t, f, plain)

		a, err := plain.Serialize(sampleWindow)
		require.NoError(t, err)
		b, err := f.Serialize(sampleWindow)
		require.NoError(t, err)

		var fromPlain, fromPretty Window
		require.NoError(t, f.Deserialize(a, &fromPlain))
		require.NoError(t, plain.Deserialize(b, &fromPretty))
		assert.Equal(t, fromPlain, fromPretty, f.String())
		assert.Equal(t, sampleWindow, fromPretty, f.String())
	}
}

func TestFormat_Names(t *testing.T) {
	seen := map[string]bool{}
	for _, f := range persistent.Formats() {
		assert.True(t, f.Valid())
		assert.False(t, seen[f.String()], "duplicate name %s", f)
		seen[f.String()] = true

		parsed, err := persistent.ParseFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
	}
	assert.Len(t, seen, 11)

	f, err := persistent.ParseFormat(" TOML_Pretty ")
	require.NoError(t, err)
	assert.Equal(t, persistent.TOMLPretty, f)

	f, err = persistent.ParseFormat("yml")
	require.NoError(t, err)
	assert.Equal(t, persistent.YAML, f)

	_, err = persistent.ParseFormat("xml")
	assert.ErrorIs(t, err, persistent.ErrConfig)

	assert.False(t, persistent.Format(0).Valid())
	assert.Equal(t, "format(0)", persistent.Format(0).String())
}

func TestFormat_TextMarshaling(t *testing.T) {
	b, err := persistent.RONPretty.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "ron-pretty", string(b))

	var f persistent.Format
	require.NoError(t, f.UnmarshalText([]byte("cbor")))
	assert.Equal(t, persistent.CBOR, f)
	assert.Error(t, f.UnmarshalText([]byte("nope")))

	_, err = persistent.Format(99).MarshalText()
	assert.ErrorIs(t, err, persistent.ErrConfig)
}

func TestFormat_IsBinary(t *testing.T) {
	binary := map[persistent.Format]bool{persistent.Bincode: true, persistent.MsgPack: true, persistent.CBOR: true}
	for _, f := range persistent.Formats() {
		assert.Equal(t, binary[f], f.IsBinary(), f.String())
	}
}

func TestFormatForPath(t *testing.T) {
	cases := map[string]persistent.Format{
		"settings.toml":   persistent.TOML,
		"a/b/state.JSON":  persistent.JSON,
		"save.ron":        persistent.RON,
		"config.yml":      persistent.YAML,
		"config.yaml":     persistent.YAML,
		"legacy.ini":      persistent.INI,
		"legacy.cfg":      persistent.INI,
		"world.bin":       persistent.Bincode,
		"world.msgpack":   persistent.MsgPack,
		"world.mpk":       persistent.MsgPack,
		"world.cbor":      persistent.CBOR,
		"/tmp/x.bincode":  persistent.Bincode,
		"/tmp/x.y/z.conf": persistent.INI,
	}
	for path, want := range cases {
		got, err := persistent.FormatForPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := persistent.FormatForPath("Makefile")
	assert.ErrorIs(t, err, persistent.ErrConfig)
	_, err = persistent.FormatForPath("notes.txt")
	assert.ErrorIs(t, err, persistent.ErrConfig)
}

func TestFormat_RejectsInvalidUTF8(t *testing.T) {
	bad := []byte{'{', 0xff, '}'}
	for _, f := range persistent.Formats() {
		if f.IsBinary() {
			continue
		}
		var w Window
		err := f.Deserialize(bad, &w)
		require.Error(t, err, f.String())
		assert.ErrorIs(t, err, persistent.ErrDecodeFailed)
		assert.Contains(t, err.Error(), "UTF-8")
	}
}

func TestFormatError(t *testing.T) {
	var w Window
	err := persistent.JSON.Deserialize([]byte(`{"width":"wide"}`), &w)
	require.Error(t, err)

	var fe *persistent.FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, persistent.JSON, fe.Format)
	assert.Equal(t, "deserialize", fe.Op)
	assert.ErrorIs(t, err, persistent.ErrDecodeFailed)
	assert.NotErrorIs(t, err, persistent.ErrEncodeFailed)
	assert.True(t, persistent.IsCodecError(err))
	assert.Contains(t, err.Error(), "json deserialize")

	_, err = persistent.INI.Serialize(map[string]int{"a": 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, persistent.ErrEncodeFailed)
	assert.ErrorIs(t, err, persistent.ErrUnsupported)

	_, err = persistent.Format(0).Serialize(w)
	assert.ErrorIs(t, err, persistent.ErrUnsupported)
	assert.False(t, persistent.IsCodecError(errors.New("disk full")))
}
