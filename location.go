package persistent

import (
	"fmt"

	"github.com/AndrewDonelson/persistent/internal/storage/browser"
)

// LocationKind identifies where a persisted value lives.
type LocationKind int

const (
	// FilePath is a path on the native filesystem.
	FilePath LocationKind = iota + 1
	// LocalStorage is a key in the browser's localStorage.
	LocalStorage
	// SessionStorage is a key in the browser's sessionStorage.
	SessionStorage
	// BackendKey is a key in a caller-supplied Backend.
	BackendKey
)

func (k LocationKind) String() string {
	switch k {
	case FilePath:
		return "file"
	case LocalStorage:
		return "local"
	case SessionStorage:
		return "session"
	case BackendKey:
		return "backend"
	}
	return fmt.Sprintf("location(%d)", int(k))
}

// Location is the resolved storage address of a persisted value. Path is
// the filesystem path for FilePath and the storage key otherwise.
type Location struct {
	Kind LocationKind
	Path string
}

func (l Location) String() string {
	if l.Kind == FilePath {
		return l.Path
	}
	return l.Kind.String() + ":" + l.Path
}

// ParseBrowserLocation resolves a path the way js/wasm builds do: the first
// segment must be "local" or "session" and the rest form the storage key.
// It is available on every platform so tools can validate browser paths.
func ParseBrowserLocation(path string) (Location, error) {
	area, key, err := browser.ParsePath(path)
	if err != nil {
		return Location{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	kind := LocalStorage
	if area == browser.Session {
		kind = SessionStorage
	}
	return Location{Kind: kind, Path: key}, nil
}
