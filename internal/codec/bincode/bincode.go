// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// bincode.go — reflective encoder/decoder for the bincode wire layout:
// fixed-width little-endian integers and floats, u64 length prefixes for
// strings, slices and maps, a u8 tag for bools and optional (pointer)
// values, struct fields in declaration order with no names or framing.

// Package bincode implements the fixed-int little-endian bincode layout.
package bincode

import (
	"bytes"
	"encoding"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
)

// ErrUnexpectedEOF is returned when the input ends inside a value.
var ErrUnexpectedEOF = errors.New("bincode: unexpected end of input")

var (
	binaryMarshalerType   = reflect.TypeOf((*encoding.BinaryMarshaler)(nil)).Elem()
	binaryUnmarshalerType = reflect.TypeOf((*encoding.BinaryUnmarshaler)(nil)).Elem()
)

// Marshal returns the bincode encoding of v.
func Marshal(v any) ([]byte, error) {
	e := &encoder{}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, fmt.Errorf("bincode: cannot encode nil")
	}
	if err := e.encode(rv); err != nil {
		return nil, err
	}
	return e.buf, nil
}

// Unmarshal decodes data into the value pointed to by v. Trailing bytes
// after the value are ignored.
func Unmarshal(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("bincode: Unmarshal requires a non-nil pointer, got %T", v)
	}
	d := &decoder{data: data}
	return d.decode(rv.Elem())
}

// fields returns the indices of the exported, non-skipped struct fields.
func fields(t reflect.Type) []int {
	out := make([]int, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("bincode") == "-" {
			continue
		}
		out = append(out, i)
	}
	return out
}

type encoder struct {
	buf []byte
}

func (e *encoder) u8(b byte)    { e.buf = append(e.buf, b) }
func (e *encoder) u16(v uint16) { e.buf = binary.LittleEndian.AppendUint16(e.buf, v) }
func (e *encoder) u32(v uint32) { e.buf = binary.LittleEndian.AppendUint32(e.buf, v) }
func (e *encoder) u64(v uint64) { e.buf = binary.LittleEndian.AppendUint64(e.buf, v) }
func (e *encoder) length(n int) { e.u64(uint64(n)) }

func (e *encoder) raw(b []byte) {
	e.length(len(b))
	e.buf = append(e.buf, b...)
}

// opaque reports whether values of t are written as a length-prefixed
// MarshalBinary blob. Encoder and decoder both decide by type alone, so a
// type qualifies only when *T can both marshal and unmarshal itself.
// Pointers never qualify; they always carry an option tag.
func opaque(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer || t.Kind() == reflect.Interface {
		return false
	}
	pt := reflect.PointerTo(t)
	return pt.Implements(binaryMarshalerType) && pt.Implements(binaryUnmarshalerType)
}

func (e *encoder) encode(v reflect.Value) error {
	if opaque(v.Type()) {
		if !v.CanAddr() {
			c := reflect.New(v.Type()).Elem()
			c.Set(v)
			v = c
		}
		b, err := v.Addr().Interface().(encoding.BinaryMarshaler).MarshalBinary()
		if err != nil {
			return err
		}
		e.raw(b)
		return nil
	}
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			e.u8(1)
		} else {
			e.u8(0)
		}
	case reflect.Int8:
		e.u8(byte(v.Int()))
	case reflect.Int16:
		e.u16(uint16(v.Int()))
	case reflect.Int32:
		e.u32(uint32(v.Int()))
	case reflect.Int, reflect.Int64:
		e.u64(uint64(v.Int()))
	case reflect.Uint8:
		e.u8(byte(v.Uint()))
	case reflect.Uint16:
		e.u16(uint16(v.Uint()))
	case reflect.Uint32:
		e.u32(uint32(v.Uint()))
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		e.u64(v.Uint())
	case reflect.Float32:
		e.u32(math.Float32bits(float32(v.Float())))
	case reflect.Float64:
		e.u64(math.Float64bits(v.Float()))
	case reflect.String:
		e.raw([]byte(v.String()))
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			e.raw(v.Bytes())
			return nil
		}
		e.length(v.Len())
		for i := 0; i < v.Len(); i++ {
			if err := e.encode(v.Index(i)); err != nil {
				return err
			}
		}
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := e.encode(v.Index(i)); err != nil {
				return err
			}
		}
	case reflect.Map:
		return e.encodeMap(v)
	case reflect.Struct:
		for _, i := range fields(v.Type()) {
			if err := e.encode(v.Field(i)); err != nil {
				return fmt.Errorf("%s.%s: %w", v.Type().Name(), v.Type().Field(i).Name, err)
			}
		}
	case reflect.Pointer:
		if v.IsNil() {
			e.u8(0)
			return nil
		}
		e.u8(1)
		return e.encode(v.Elem())
	default:
		return fmt.Errorf("bincode: unsupported type %s", v.Type())
	}
	return nil
}

// encodeMap writes entries ordered by their encoded key bytes so the same
// map always produces the same output.
func (e *encoder) encodeMap(v reflect.Value) error {
	type kv struct {
		key []byte
		val reflect.Value
	}
	entries := make([]kv, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		ke := &encoder{}
		if err := ke.encode(iter.Key()); err != nil {
			return err
		}
		entries = append(entries, kv{key: ke.buf, val: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool { return bytes.Compare(entries[i].key, entries[j].key) < 0 })
	e.length(len(entries))
	for _, ent := range entries {
		e.buf = append(e.buf, ent.key...)
		if err := e.encode(ent.val); err != nil {
			return err
		}
	}
	return nil
}

type decoder struct {
	data []byte
	off  int
}

func (d *decoder) take(n int) ([]byte, error) {
	if n < 0 || len(d.data)-d.off < n {
		return nil, ErrUnexpectedEOF
	}
	b := d.data[d.off : d.off+n]
	d.off += n
	return b, nil
}

func (d *decoder) u8() (byte, error) {
	b, err := d.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *decoder) u16() (uint16, error) {
	b, err := d.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (d *decoder) u32() (uint32, error) {
	b, err := d.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (d *decoder) u64() (uint64, error) {
	b, err := d.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// length reads a u64 length prefix and rejects values that cannot fit in
// the remaining input, assuming every element takes at least one byte.
func (d *decoder) length() (int, error) {
	n, err := d.u64()
	if err != nil {
		return 0, err
	}
	if n > uint64(len(d.data)-d.off) {
		return 0, fmt.Errorf("bincode: length %d exceeds remaining input", n)
	}
	return int(n), nil
}

func (d *decoder) raw() ([]byte, error) {
	n, err := d.length()
	if err != nil {
		return nil, err
	}
	return d.take(n)
}

func (d *decoder) decode(v reflect.Value) error {
	if opaque(v.Type()) {
		b, err := d.raw()
		if err != nil {
			return err
		}
		return v.Addr().Interface().(encoding.BinaryUnmarshaler).UnmarshalBinary(b)
	}
	switch v.Kind() {
	case reflect.Bool:
		b, err := d.u8()
		if err != nil {
			return err
		}
		switch b {
		case 0:
			v.SetBool(false)
		case 1:
			v.SetBool(true)
		default:
			return fmt.Errorf("bincode: invalid bool tag %d", b)
		}
	case reflect.Int8:
		b, err := d.u8()
		if err != nil {
			return err
		}
		v.SetInt(int64(int8(b)))
	case reflect.Int16:
		x, err := d.u16()
		if err != nil {
			return err
		}
		v.SetInt(int64(int16(x)))
	case reflect.Int32:
		x, err := d.u32()
		if err != nil {
			return err
		}
		v.SetInt(int64(int32(x)))
	case reflect.Int, reflect.Int64:
		x, err := d.u64()
		if err != nil {
			return err
		}
		v.SetInt(int64(x))
	case reflect.Uint8:
		b, err := d.u8()
		if err != nil {
			return err
		}
		v.SetUint(uint64(b))
	case reflect.Uint16:
		x, err := d.u16()
		if err != nil {
			return err
		}
		v.SetUint(uint64(x))
	case reflect.Uint32:
		x, err := d.u32()
		if err != nil {
			return err
		}
		v.SetUint(uint64(x))
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		x, err := d.u64()
		if err != nil {
			return err
		}
		v.SetUint(x)
	case reflect.Float32:
		x, err := d.u32()
		if err != nil {
			return err
		}
		v.SetFloat(float64(math.Float32frombits(x)))
	case reflect.Float64:
		x, err := d.u64()
		if err != nil {
			return err
		}
		v.SetFloat(math.Float64frombits(x))
	case reflect.String:
		b, err := d.raw()
		if err != nil {
			return err
		}
		v.SetString(string(b))
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			b, err := d.raw()
			if err != nil {
				return err
			}
			v.SetBytes(append([]byte(nil), b...))
			return nil
		}
		n, err := d.length()
		if err != nil {
			return err
		}
		s := reflect.MakeSlice(v.Type(), n, n)
		for i := 0; i < n; i++ {
			if err := d.decode(s.Index(i)); err != nil {
				return err
			}
		}
		v.Set(s)
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := d.decode(v.Index(i)); err != nil {
				return err
			}
		}
	case reflect.Map:
		n, err := d.length()
		if err != nil {
			return err
		}
		m := reflect.MakeMapWithSize(v.Type(), n)
		for i := 0; i < n; i++ {
			k := reflect.New(v.Type().Key()).Elem()
			if err := d.decode(k); err != nil {
				return err
			}
			val := reflect.New(v.Type().Elem()).Elem()
			if err := d.decode(val); err != nil {
				return err
			}
			m.SetMapIndex(k, val)
		}
		v.Set(m)
	case reflect.Struct:
		for _, i := range fields(v.Type()) {
			if err := d.decode(v.Field(i)); err != nil {
				return fmt.Errorf("%s.%s: %w", v.Type().Name(), v.Type().Field(i).Name, err)
			}
		}
	case reflect.Pointer:
		tag, err := d.u8()
		if err != nil {
			return err
		}
		switch tag {
		case 0:
			v.Set(reflect.Zero(v.Type()))
		case 1:
			p := reflect.New(v.Type().Elem())
			if err := d.decode(p.Elem()); err != nil {
				return err
			}
			v.Set(p)
		default:
			return fmt.Errorf("bincode: invalid option tag %d", tag)
		}
	default:
		return fmt.Errorf("bincode: unsupported type %s", v.Type())
	}
	return nil
}
