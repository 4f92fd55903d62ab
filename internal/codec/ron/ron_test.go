package ron_test

import (
	"math"
	"testing"
	"time"

	"github.com/AndrewDonelson/persistent/internal/codec/ron"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type keybindings struct {
	Jump   string `ron:"jump"`
	Crouch string `ron:"crouch"`
}

type profile struct {
	Name     string            `ron:"name"`
	Level    uint8             `ron:"level"`
	Speed    float64           `ron:"speed"`
	Tags     []string          `ron:"tags"`
	Scores   map[string]int    `ron:"scores"`
	Keys     keybindings       `ron:"keys"`
	Nickname *string           `ron:"nickname"`
	Missing  *int              `ron:"missing"`
	Seen     time.Time         `ron:"seen"`
	Extra    map[string]string `ron:"-"`
}

func TestMarshal_Compact(t *testing.T) {
	b, err := ron.Marshal(keybindings{Jump: "Space", Crouch: "C"})
	require.NoError(t, err)
	assert.Equal(t, `(jump:"Space",crouch:"C")`, string(b))
}

func TestMarshal_Pretty(t *testing.T) {
	b, err := ron.MarshalPretty(keybindings{Jump: "Space", Crouch: "C"})
	require.NoError(t, err)
	assert.Equal(t, "(\n    jump: \"Space\",\n    crouch: \"C\",\n)\n", string(b))
}

func TestMarshal_Collections(t *testing.T) {
	b, err := ron.Marshal(map[string][]int{"b": {1, 2}, "a": {}})
	require.NoError(t, err)
	assert.Equal(t, `{"a":[],"b":[1,2]}`, string(b))

	b, err = ron.MarshalPretty(map[string][]int{"a": {1}})
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"a\": [\n        1,\n    ],\n}\n", string(b))
}

func TestMarshal_Scalars(t *testing.T) {
	cases := map[string]any{
		"true":                 true,
		"-3":                   int16(-3),
		"1.0":                  1.0,
		"0.25":                 float32(0.25),
		"inf":                  math.Inf(1),
		`"a\"b\n"`:             "a\"b\n",
		`"\u{7}"`:              "\a",
		"None":                 (*int)(nil),
		"Some(5)":              func() *int { v := 5; return &v }(),
		"[]":                   []string(nil),
		"()":                   struct{}{},
		`"héllo"`:              "héllo",
		"18446744073709551615": uint64(math.MaxUint64),
	}
	for want, v := range cases {
		b, err := ron.Marshal(v)
		require.NoError(t, err)
		assert.Equal(t, want, string(b))
	}
}

func TestRoundTrip(t *testing.T) {
	nick := "ace"
	orig := profile{
		Name:     "player",
		Level:    12,
		Speed:    1.5,
		Tags:     []string{"a", "b,c"},
		Scores:   map[string]int{"x": 1, "y": -2},
		Keys:     keybindings{Jump: "Space", Crouch: "ControlLeft"},
		Nickname: &nick,
		Seen:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	for _, marshal := range []func(any) ([]byte, error){ron.Marshal, ron.MarshalPretty} {
		b, err := marshal(orig)
		require.NoError(t, err)

		var got profile
		require.NoError(t, ron.Unmarshal(b, &got), string(b))
		assert.Equal(t, orig, got)
	}
}

func TestUnmarshal_HandWritten(t *testing.T) {
	src := `
// player keybindings
Keybindings(
    jump: "Space", /* default */
    crouch: r#"Control"Left"#,
    unknown: [1, 2, (a: 3)],
)
`
	var got keybindings
	require.NoError(t, ron.Unmarshal([]byte(src), &got))
	assert.Equal(t, keybindings{Jump: "Space", Crouch: `Control"Left`}, got)
}

func TestUnmarshal_Any(t *testing.T) {
	var got any
	require.NoError(t, ron.Unmarshal([]byte(`(name: "x", n: 3, f: 2.5, on: true, opt: None, list: [1, "two"], m: {"k": Some(1)})`), &got))
	assert.Equal(t, map[string]any{
		"name": "x",
		"n":    int64(3),
		"f":    2.5,
		"on":   true,
		"opt":  nil,
		"list": []any{int64(1), "two"},
		"m":    map[string]any{"k": int64(1)},
	}, got)
}

func TestUnmarshal_StructIntoMap(t *testing.T) {
	got := map[string]string{}
	require.NoError(t, ron.Unmarshal([]byte(`(jump:"Space",crouch:"C")`), &got))
	assert.Equal(t, map[string]string{"jump": "Space", "crouch": "C"}, got)
}

func TestUnmarshal_CharAndEscapes(t *testing.T) {
	var s struct {
		Key   string `ron:"key"`
		Rune  int32  `ron:"rune"`
		Bytes string `ron:"bytes"`
	}
	require.NoError(t, ron.Unmarshal([]byte(`(key: 'x', rune: '\u{e9}', bytes: "\x41\t\u{1F600}")`), &s))
	assert.Equal(t, "x", s.Key)
	assert.Equal(t, int32('é'), s.Rune)
	assert.Equal(t, "A\t😀", s.Bytes)
}

func TestUnmarshal_Errors(t *testing.T) {
	var kb keybindings
	cases := []string{
		``,
		`(jump: "Space"`,
		`(jump: "Space") extra`,
		`(jump: 5)`,
		`(jump "Space")`,
		`[1, 2]`,
	}
	for _, src := range cases {
		err := ron.Unmarshal([]byte(src), &kb)
		var syn *ron.SyntaxError
		assert.ErrorAs(t, err, &syn, "input %q", src)
	}

	var n uint8
	assert.Error(t, ron.Unmarshal([]byte(`300`), &n))
	assert.Error(t, ron.Unmarshal([]byte(`1`), n))
}

func TestSyntaxError_Position(t *testing.T) {
	var kb keybindings
	err := ron.Unmarshal([]byte("(\n  jump: ?\n)"), &kb)
	var syn *ron.SyntaxError
	require.ErrorAs(t, err, &syn)
	assert.Equal(t, 2, syn.Line)
	assert.Equal(t, 9, syn.Col)
}
