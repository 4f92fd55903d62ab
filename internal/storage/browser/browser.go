//go:build js && wasm

package browser

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"syscall/js"
	"unicode/utf8"

	"github.com/AndrewDonelson/persistent/internal/storage"
)

const binaryPrefix = "base64:"

// Store is a Web Storage adapter for one storage area.
type Store struct {
	area Area
}

// New returns a Store for the given area.
func New(area Area) *Store {
	return &Store{area: area}
}

func (s *Store) object() (js.Value, error) {
	v := js.Global().Get(string(s.area))
	if v.IsUndefined() || v.IsNull() {
		return js.Value{}, fmt.Errorf("browser %s is unavailable", s.area)
	}
	return v, nil
}

// Read returns the value stored under key.
func (s *Store) Read(ctx context.Context, key string) (data []byte, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	obj, err := s.object()
	if err != nil {
		return nil, err
	}
	defer recoverJS(&err, "read", key)
	v := obj.Call("getItem", key)
	if v.IsNull() {
		return nil, storage.ErrNotFound
	}
	text := v.String()
	if rest, ok := strings.CutPrefix(text, binaryPrefix); ok {
		b, err := base64.StdEncoding.DecodeString(rest)
		if err != nil {
			return nil, fmt.Errorf("browser read %s: %w", key, err)
		}
		return b, nil
	}
	return []byte(text), nil
}

// Write stores data under key.
func (s *Store) Write(ctx context.Context, key string, data []byte) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	obj, err := s.object()
	if err != nil {
		return err
	}
	defer recoverJS(&err, "write", key)
	text := string(data)
	if !utf8.Valid(data) || strings.HasPrefix(text, binaryPrefix) {
		text = binaryPrefix + base64.StdEncoding.EncodeToString(data)
	}
	obj.Call("setItem", key, text)
	return nil
}

// Delete removes key.
func (s *Store) Delete(ctx context.Context, key string) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	obj, err := s.object()
	if err != nil {
		return err
	}
	defer recoverJS(&err, "delete", key)
	obj.Call("removeItem", key)
	return nil
}

// Exists reports whether key is present.
func (s *Store) Exists(ctx context.Context, key string) (ok bool, err error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	obj, err := s.object()
	if err != nil {
		return false, err
	}
	defer recoverJS(&err, "exists", key)
	return !obj.Call("getItem", key).IsNull(), nil
}

// recoverJS turns a thrown JavaScript exception (quota exceeded, storage
// disabled) into an error.
func recoverJS(err *error, op, key string) {
	if r := recover(); r != nil {
		if jsErr, ok := r.(js.Error); ok {
			*err = fmt.Errorf("browser %s %s: %w", op, key, jsErr)
			return
		}
		panic(r)
	}
}
