package ron

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// SyntaxError describes malformed RON input.
type SyntaxError struct {
	Line, Col int
	Msg       string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("ron: %d:%d: %s", e.Line, e.Col, e.Msg)
}

// Unmarshal parses RON data into the value pointed to by v. Unknown struct
// fields are skipped. Decoding into an empty interface produces bool,
// int64, float64, string, []any and map[string]any values.
func Unmarshal(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("ron: Unmarshal requires a non-nil pointer, got %T", v)
	}
	d := &decoder{data: data}
	if err := d.value(rv.Elem()); err != nil {
		return err
	}
	d.skipSpace()
	if d.off < len(d.data) {
		return d.errorf("trailing characters")
	}
	return nil
}

type decoder struct {
	data []byte
	off  int
}

func (d *decoder) errorf(format string, args ...any) error {
	line, col := 1, 1
	for _, c := range d.data[:min(d.off, len(d.data))] {
		if c == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return &SyntaxError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

// skipSpace skips whitespace and // or /* */ comments.
func (d *decoder) skipSpace() {
	for d.off < len(d.data) {
		switch c := d.data[d.off]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			d.off++
		case c == '/' && d.off+1 < len(d.data) && d.data[d.off+1] == '/':
			for d.off < len(d.data) && d.data[d.off] != '\n' {
				d.off++
			}
		case c == '/' && d.off+1 < len(d.data) && d.data[d.off+1] == '*':
			end := strings.Index(string(d.data[d.off+2:]), "*/")
			if end < 0 {
				d.off = len(d.data)
				return
			}
			d.off += end + 4
		default:
			return
		}
	}
}

func (d *decoder) peek() byte {
	d.skipSpace()
	if d.off >= len(d.data) {
		return 0
	}
	return d.data[d.off]
}

func (d *decoder) expect(c byte) error {
	if d.peek() != c {
		if d.off >= len(d.data) {
			return d.errorf("expected %q, found end of input", c)
		}
		return d.errorf("expected %q, found %q", c, d.data[d.off])
	}
	d.off++
	return nil
}

func isIdentByte(c byte, first bool) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (!first && c >= '0' && c <= '9')
}

// ident reads an identifier, returning "" if none starts here.
func (d *decoder) ident() string {
	d.skipSpace()
	start := d.off
	for d.off < len(d.data) && isIdentByte(d.data[d.off], d.off == start) {
		d.off++
	}
	return string(d.data[start:d.off])
}

// peekIdent returns the identifier at the cursor without consuming it.
func (d *decoder) peekIdent() string {
	save := d.off
	id := d.ident()
	d.off = save
	return id
}

// isStructBody reports whether the "(" at the cursor opens named fields.
func (d *decoder) isStructBody() bool {
	save := d.off
	defer func() { d.off = save }()
	if d.expect('(') != nil {
		return false
	}
	if d.peek() == ')' {
		return true
	}
	if d.ident() == "" {
		return false
	}
	return d.peek() == ':'
}

// list parses a delimited, comma-separated sequence, calling item for each
// element. Trailing commas are accepted.
func (d *decoder) list(open, close byte, item func() error) error {
	if err := d.expect(open); err != nil {
		return err
	}
	for {
		if d.peek() == close {
			d.off++
			return nil
		}
		if err := item(); err != nil {
			return err
		}
		switch d.peek() {
		case ',':
			d.off++
		case close:
		default:
			return d.errorf("expected ',' or %q", close)
		}
	}
}

func (d *decoder) value(v reflect.Value) error {
	c := d.peek()
	if c == 0 {
		return d.errorf("unexpected end of input")
	}

	switch v.Kind() {
	case reflect.Pointer:
		switch d.peekIdent() {
		case "None":
			d.ident()
			v.Set(reflect.Zero(v.Type()))
			return nil
		case "Some":
			d.ident()
			p := reflect.New(v.Type().Elem())
			if err := d.expect('('); err != nil {
				return err
			}
			if err := d.value(p.Elem()); err != nil {
				return err
			}
			if err := d.expect(')'); err != nil {
				return err
			}
			v.Set(p)
			return nil
		}
		p := reflect.New(v.Type().Elem())
		if err := d.value(p.Elem()); err != nil {
			return err
		}
		v.Set(p)
		return nil
	case reflect.Interface:
		if v.NumMethod() != 0 {
			return d.errorf("cannot decode into %s", v.Type())
		}
		x, err := d.any()
		if err != nil {
			return err
		}
		if x == nil {
			v.Set(reflect.Zero(v.Type()))
		} else {
			v.Set(reflect.ValueOf(x))
		}
		return nil
	}

	if v.CanAddr() && v.Addr().Type().Implements(textUnmarshalerType) && (c == '"' || c == 'r') {
		s, err := d.str()
		if err != nil {
			return err
		}
		return v.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s))
	}

	switch v.Kind() {
	case reflect.Bool:
		switch d.ident() {
		case "true":
			v.SetBool(true)
		case "false":
			v.SetBool(false)
		default:
			return d.errorf("expected bool")
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if c == '\'' {
			r, err := d.char()
			if err != nil {
				return err
			}
			v.SetInt(int64(r))
			return nil
		}
		tok := d.number()
		n, err := strconv.ParseInt(strings.ReplaceAll(tok, "_", ""), 0, v.Type().Bits())
		if err != nil {
			return d.errorf("invalid integer %q", tok)
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		tok := d.number()
		n, err := strconv.ParseUint(strings.ReplaceAll(tok, "_", ""), 0, v.Type().Bits())
		if err != nil {
			return d.errorf("invalid unsigned integer %q", tok)
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := d.float()
		if err != nil {
			return err
		}
		v.SetFloat(f)
	case reflect.String:
		if c == '\'' {
			r, err := d.char()
			if err != nil {
				return err
			}
			v.SetString(string(r))
			return nil
		}
		s, err := d.str()
		if err != nil {
			return err
		}
		v.SetString(s)
	case reflect.Slice:
		return d.slice(v, c)
	case reflect.Array:
		i := 0
		closer := byte(']')
		if c == '(' {
			closer = ')'
		}
		if err := d.list(c, closer, func() error {
			if i >= v.Len() {
				return d.errorf("too many elements for %s", v.Type())
			}
			if err := d.value(v.Index(i)); err != nil {
				return err
			}
			i++
			return nil
		}); err != nil {
			return err
		}
		for ; i < v.Len(); i++ {
			v.Index(i).Set(reflect.Zero(v.Type().Elem()))
		}
	case reflect.Map:
		if v.IsNil() {
			v.Set(reflect.MakeMap(v.Type()))
		}
		if c != '{' && v.Type().Key().Kind() == reflect.String {
			return d.fieldsIntoMap(v)
		}
		return d.list('{', '}', func() error {
			k := reflect.New(v.Type().Key()).Elem()
			if err := d.value(k); err != nil {
				return err
			}
			if err := d.expect(':'); err != nil {
				return err
			}
			val := reflect.New(v.Type().Elem()).Elem()
			if err := d.value(val); err != nil {
				return err
			}
			v.SetMapIndex(k, val)
			return nil
		})
	case reflect.Struct:
		return d.structValue(v)
	default:
		return d.errorf("cannot decode into %s", v.Type())
	}
	return nil
}

func (d *decoder) slice(v reflect.Value, c byte) error {
	closer := byte(']')
	if c == '(' {
		closer = ')'
	}
	s := reflect.MakeSlice(v.Type(), 0, 0)
	if err := d.list(c, closer, func() error {
		elem := reflect.New(v.Type().Elem()).Elem()
		if err := d.value(elem); err != nil {
			return err
		}
		s = reflect.Append(s, elem)
		return nil
	}); err != nil {
		return err
	}
	v.Set(s)
	return nil
}

func (d *decoder) structValue(v reflect.Value) error {
	// optional struct name before the body
	if d.peek() != '(' {
		if name := d.ident(); name == "" {
			return d.errorf("expected struct")
		}
	}
	t := v.Type()
	index := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if name, ok := fieldName(t.Field(i)); ok {
			index[name] = i
		}
	}
	return d.list('(', ')', func() error {
		name := d.ident()
		if name == "" {
			return d.errorf("expected field name")
		}
		if err := d.expect(':'); err != nil {
			return err
		}
		i, ok := index[name]
		if !ok {
			_, err := d.any()
			return err
		}
		return d.value(v.Field(i))
	})
}

// fieldsIntoMap reads a struct body into a map keyed by field name.
func (d *decoder) fieldsIntoMap(v reflect.Value) error {
	if d.peek() != '(' {
		if name := d.ident(); name == "" {
			return d.errorf("expected map or struct")
		}
	}
	return d.list('(', ')', func() error {
		name := d.ident()
		if name == "" {
			return d.errorf("expected field name")
		}
		if err := d.expect(':'); err != nil {
			return err
		}
		val := reflect.New(v.Type().Elem()).Elem()
		if err := d.value(val); err != nil {
			return err
		}
		v.SetMapIndex(reflect.ValueOf(name).Convert(v.Type().Key()), val)
		return nil
	})
}

// any parses a value without a destination type.
func (d *decoder) any() (any, error) {
	switch c := d.peek(); {
	case c == '"' || (c == 'r' && d.off+1 < len(d.data) && (d.data[d.off+1] == '"' || d.data[d.off+1] == '#')):
		return d.str()
	case c == '\'':
		r, err := d.char()
		return string(r), err
	case c == '[':
		var out []any
		err := d.list('[', ']', func() error {
			x, err := d.any()
			out = append(out, x)
			return err
		})
		return out, err
	case c == '{':
		out := map[string]any{}
		err := d.list('{', '}', func() error {
			k, err := d.any()
			if err != nil {
				return err
			}
			if err := d.expect(':'); err != nil {
				return err
			}
			x, err := d.any()
			if s, ok := k.(string); ok {
				out[s] = x
			} else {
				out[fmt.Sprint(k)] = x
			}
			return err
		})
		return out, err
	case c == '(':
		return d.anyParen()
	case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
		return d.anyNumber()
	case isIdentByte(c, true):
		switch id := d.peekIdent(); id {
		case "true", "false":
			d.ident()
			return id == "true", nil
		case "None":
			d.ident()
			return nil, nil
		case "Some":
			d.ident()
			if err := d.expect('('); err != nil {
				return nil, err
			}
			x, err := d.any()
			if err != nil {
				return nil, err
			}
			return x, d.expect(')')
		case "inf", "NaN":
			return d.anyNumber()
		default:
			d.ident()
			if d.peek() == '(' {
				return d.anyParen()
			}
			// unit struct or enum variant
			return id, nil
		}
	case c == 0:
		return nil, d.errorf("unexpected end of input")
	default:
		return nil, d.errorf("unexpected character %q", c)
	}
}

// anyParen parses "(field: v, ...)" into a map or "(a, b)" into a slice.
func (d *decoder) anyParen() (any, error) {
	if d.isStructBody() {
		out := map[string]any{}
		err := d.list('(', ')', func() error {
			name := d.ident()
			if err := d.expect(':'); err != nil {
				return err
			}
			x, err := d.any()
			out[name] = x
			return err
		})
		return out, err
	}
	var out []any
	err := d.list('(', ')', func() error {
		x, err := d.any()
		out = append(out, x)
		return err
	})
	return out, err
}

func (d *decoder) anyNumber() (any, error) {
	save := d.off
	tok := d.number()
	if !strings.ContainsAny(tok, ".eE") && tok != "inf" && tok != "-inf" && tok != "+inf" && tok != "NaN" {
		clean := strings.ReplaceAll(tok, "_", "")
		if n, err := strconv.ParseInt(clean, 0, 64); err == nil {
			return n, nil
		}
		if n, err := strconv.ParseUint(clean, 0, 64); err == nil {
			return n, nil
		}
	}
	d.off = save
	return d.float()
}

// number consumes the characters that may form a numeric literal.
func (d *decoder) number() string {
	d.skipSpace()
	start := d.off
	for d.off < len(d.data) {
		c := d.data[d.off]
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == '.' ||
			((c == '-' || c == '+') && (d.off == start || d.data[d.off-1] == 'e' || d.data[d.off-1] == 'E')) {
			d.off++
			continue
		}
		break
	}
	return string(d.data[start:d.off])
}

func (d *decoder) float() (float64, error) {
	tok := d.number()
	switch tok {
	case "inf", "+inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	case "NaN":
		return math.NaN(), nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(tok, "_", ""), 64)
	if err != nil {
		return 0, d.errorf("invalid float %q", tok)
	}
	return f, nil
}

func (d *decoder) char() (rune, error) {
	if err := d.expect('\''); err != nil {
		return 0, err
	}
	var r rune
	if d.off < len(d.data) && d.data[d.off] == '\\' {
		b, err := d.escape()
		if err != nil {
			return 0, err
		}
		r, _ = utf8.DecodeRune(b)
	} else {
		var size int
		r, size = utf8.DecodeRune(d.data[d.off:])
		d.off += size
	}
	if d.off >= len(d.data) || d.data[d.off] != '\'' {
		return 0, d.errorf("unterminated char literal")
	}
	d.off++
	return r, nil
}

// str parses a quoted string or a raw string r"..." / r#"..."#.
func (d *decoder) str() (string, error) {
	if d.peek() == 'r' {
		d.off++
		hashes := 0
		for d.off < len(d.data) && d.data[d.off] == '#' {
			hashes++
			d.off++
		}
		if d.off >= len(d.data) || d.data[d.off] != '"' {
			return "", d.errorf("expected raw string")
		}
		d.off++
		terminator := "\"" + strings.Repeat("#", hashes)
		end := strings.Index(string(d.data[d.off:]), terminator)
		if end < 0 {
			return "", d.errorf("unterminated raw string")
		}
		s := string(d.data[d.off : d.off+end])
		d.off += end + len(terminator)
		return s, nil
	}
	if err := d.expect('"'); err != nil {
		return "", err
	}
	var sb strings.Builder
	for {
		if d.off >= len(d.data) {
			return "", d.errorf("unterminated string")
		}
		c := d.data[d.off]
		switch c {
		case '"':
			d.off++
			return sb.String(), nil
		case '\\':
			b, err := d.escape()
			if err != nil {
				return "", err
			}
			sb.Write(b)
		default:
			sb.WriteByte(c)
			d.off++
		}
	}
}

// escape decodes one backslash escape sequence at the cursor.
func (d *decoder) escape() ([]byte, error) {
	d.off++ // backslash
	if d.off >= len(d.data) {
		return nil, d.errorf("unterminated escape")
	}
	c := d.data[d.off]
	d.off++
	switch c {
	case '"', '\\', '\'', '/':
		return []byte{c}, nil
	case 'n':
		return []byte{'\n'}, nil
	case 'r':
		return []byte{'\r'}, nil
	case 't':
		return []byte{'\t'}, nil
	case 'b':
		return []byte{'\b'}, nil
	case 'f':
		return []byte{'\f'}, nil
	case '0':
		return []byte{0}, nil
	case 'x':
		if d.off+2 > len(d.data) {
			return nil, d.errorf("short \\x escape")
		}
		n, err := strconv.ParseUint(string(d.data[d.off:d.off+2]), 16, 8)
		if err != nil {
			return nil, d.errorf("invalid \\x escape")
		}
		d.off += 2
		return []byte{byte(n)}, nil
	case 'u':
		var hex string
		if d.off < len(d.data) && d.data[d.off] == '{' {
			end := strings.IndexByte(string(d.data[d.off:]), '}')
			if end < 0 {
				return nil, d.errorf("unterminated \\u escape")
			}
			hex = string(d.data[d.off+1 : d.off+end])
			d.off += end + 1
		} else {
			if d.off+4 > len(d.data) {
				return nil, d.errorf("short \\u escape")
			}
			hex = string(d.data[d.off : d.off+4])
			d.off += 4
		}
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || !utf8.ValidRune(rune(n)) {
			return nil, d.errorf("invalid \\u escape %q", hex)
		}
		return utf8.AppendRune(nil, rune(n)), nil
	default:
		return nil, d.errorf("unknown escape \\%c", c)
	}
}
