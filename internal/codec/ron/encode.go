// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// encode.go — RON writer. Structs become "(field:value)", slices and arrays
// "[..]", maps "{key:value}", nil pointers "None" and non-nil pointers
// "Some(..)". Pretty output indents nested collections by four spaces and
// ends every element with a comma.

// Package ron reads and writes Rusty Object Notation documents.
package ron

import (
	"bytes"
	"encoding"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const indentUnit = "    "

var (
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// Marshal returns the compact RON encoding of v.
func Marshal(v any) ([]byte, error) {
	return marshal(v, false)
}

// MarshalPretty returns the indented RON encoding of v.
func MarshalPretty(v any) ([]byte, error) {
	return marshal(v, true)
}

func marshal(v any, pretty bool) ([]byte, error) {
	e := &encoder{pretty: pretty}
	if err := e.encode(reflect.ValueOf(v), 0); err != nil {
		return nil, err
	}
	if pretty {
		e.buf.WriteByte('\n')
	}
	return e.buf.Bytes(), nil
}

// fieldName returns the RON name of a struct field and whether it is kept.
func fieldName(f reflect.StructField) (string, bool) {
	if !f.IsExported() {
		return "", false
	}
	tag := f.Tag.Get("ron")
	if tag == "-" {
		return "", false
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, true
	}
	return f.Name, true
}

type encoder struct {
	buf    bytes.Buffer
	pretty bool
}

func (e *encoder) newline(depth int) {
	if !e.pretty {
		return
	}
	e.buf.WriteByte('\n')
	for i := 0; i < depth; i++ {
		e.buf.WriteString(indentUnit)
	}
}

func (e *encoder) colon() {
	e.buf.WriteByte(':')
	if e.pretty {
		e.buf.WriteByte(' ')
	}
}

// element writes the separator that precedes item i of a collection.
func (e *encoder) element(i, depth int) {
	if i > 0 {
		e.buf.WriteByte(',')
	}
	e.newline(depth + 1)
}

// close finishes a collection of n items with the given delimiter.
func (e *encoder) close(n, depth int, delim byte) {
	if e.pretty && n > 0 {
		e.buf.WriteByte(',')
		e.newline(depth)
	}
	e.buf.WriteByte(delim)
}

func (e *encoder) encode(v reflect.Value, depth int) error {
	if !v.IsValid() {
		e.buf.WriteString("None")
		return nil
	}
	if v.Kind() != reflect.Pointer && v.Kind() != reflect.Interface && v.Type().Implements(textMarshalerType) {
		b, err := v.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return err
		}
		writeString(&e.buf, string(b))
		return nil
	}
	switch v.Kind() {
	case reflect.Bool:
		e.buf.WriteString(strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		e.buf.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		e.buf.WriteString(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32:
		writeFloat(&e.buf, v.Float(), 32)
	case reflect.Float64:
		writeFloat(&e.buf, v.Float(), 64)
	case reflect.String:
		writeString(&e.buf, v.String())
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			e.buf.WriteString("[]")
			return nil
		}
		e.buf.WriteByte('[')
		for i := 0; i < v.Len(); i++ {
			e.element(i, depth)
			if err := e.encode(v.Index(i), depth+1); err != nil {
				return err
			}
		}
		e.close(v.Len(), depth, ']')
	case reflect.Map:
		return e.encodeMap(v, depth)
	case reflect.Struct:
		return e.encodeStruct(v, depth)
	case reflect.Pointer:
		if v.IsNil() {
			e.buf.WriteString("None")
			return nil
		}
		e.buf.WriteString("Some(")
		if err := e.encode(v.Elem(), depth); err != nil {
			return err
		}
		e.buf.WriteByte(')')
	case reflect.Interface:
		if v.IsNil() {
			e.buf.WriteString("None")
			return nil
		}
		return e.encode(v.Elem(), depth)
	default:
		return fmt.Errorf("ron: unsupported type %s", v.Type())
	}
	return nil
}

func (e *encoder) encodeStruct(v reflect.Value, depth int) error {
	t := v.Type()
	e.buf.WriteByte('(')
	n := 0
	for i := 0; i < t.NumField(); i++ {
		name, ok := fieldName(t.Field(i))
		if !ok {
			continue
		}
		e.element(n, depth)
		e.buf.WriteString(name)
		e.colon()
		if err := e.encode(v.Field(i), depth+1); err != nil {
			return fmt.Errorf("%s.%s: %w", t.Name(), t.Field(i).Name, err)
		}
		n++
	}
	e.close(n, depth, ')')
	return nil
}

// encodeMap writes entries sorted by their encoded key text.
func (e *encoder) encodeMap(v reflect.Value, depth int) error {
	if v.IsNil() {
		e.buf.WriteString("{}")
		return nil
	}
	type kv struct {
		key string
		val reflect.Value
	}
	entries := make([]kv, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		ke := &encoder{}
		if err := ke.encode(iter.Key(), 0); err != nil {
			return err
		}
		entries = append(entries, kv{key: ke.buf.String(), val: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	e.buf.WriteByte('{')
	for i, ent := range entries {
		e.element(i, depth)
		e.buf.WriteString(ent.key)
		e.colon()
		if err := e.encode(ent.val, depth+1); err != nil {
			return err
		}
	}
	e.close(len(entries), depth, '}')
	return nil
}

func writeFloat(buf *bytes.Buffer, f float64, bits int) {
	switch {
	case math.IsNaN(f):
		buf.WriteString("NaN")
	case math.IsInf(f, 1):
		buf.WriteString("inf")
	case math.IsInf(f, -1):
		buf.WriteString("-inf")
	default:
		s := strconv.FormatFloat(f, 'g', -1, bits)
		buf.WriteString(s)
		if !strings.ContainsAny(s, ".e") {
			buf.WriteString(".0")
		}
	}
}

func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == '"':
			buf.WriteString(`\"`)
		case r == '\\':
			buf.WriteString(`\\`)
		case r == '\n':
			buf.WriteString(`\n`)
		case r == '\r':
			buf.WriteString(`\r`)
		case r == '\t':
			buf.WriteString(`\t`)
		case r == 0:
			buf.WriteString(`\0`)
		case r == utf8.RuneError && size == 1:
			fmt.Fprintf(buf, `\x%02x`, s[i])
		case !unicode.IsPrint(r):
			fmt.Fprintf(buf, `\u{%x}`, r)
		default:
			buf.WriteString(s[i : i+size])
		}
		i += size
	}
	buf.WriteByte('"')
}
