// Package browser stores values in the Web Storage API (localStorage or
// sessionStorage). Web Storage holds strings only, so payloads that are not
// valid UTF-8 are stored base64-encoded behind a fixed prefix.
//
// The Store itself is only compiled for js/wasm; path parsing is available
// on every platform.
package browser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPath is returned when a path does not start with "local" or
// "session".
var ErrInvalidPath = errors.New(`browser: path must start with "local" or "session"`)

// Area selects the Web Storage object.
type Area string

const (
	Local   Area = "localStorage"
	Session Area = "sessionStorage"
)

// ParsePath splits a path-like string into a storage area and key. A leading
// separator is ignored; the first segment selects the area and the rest,
// joined with "/", is the key.
//
//	"/local/settings/keys.toml" -> Local, "settings/keys.toml"
func ParsePath(path string) (Area, string, error) {
	p := strings.ReplaceAll(path, `\`, "/")
	p = strings.TrimLeft(p, "/")
	head, rest, _ := strings.Cut(p, "/")

	var area Area
	switch head {
	case "local":
		area = Local
	case "session":
		area = Session
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}

	segs := make([]string, 0, 4)
	for _, s := range strings.Split(rest, "/") {
		if s != "" && s != "." {
			segs = append(segs, s)
		}
	}
	if len(segs) == 0 {
		return "", "", fmt.Errorf("%w: %q has no key", ErrInvalidPath, path)
	}
	return area, strings.Join(segs, "/"), nil
}
