//go:build !(js && wasm)

package persistent

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/AndrewDonelson/persistent/internal/storage/fs"
)

// resolveLocation maps a builder path to a FilePath location. The path is
// made absolute and, when it already exists, symlinks are resolved.
func resolveLocation(path string) (Location, error) {
	if strings.TrimSpace(path) == "" {
		return Location{}, fmt.Errorf("%w: path is empty", ErrConfig)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	return Location{Kind: FilePath, Path: abs}, nil
}

// platformBackend returns the storage backend for a resolved location.
func platformBackend(loc Location) (Backend, error) {
	if loc.Kind != FilePath {
		return nil, fmt.Errorf("%w: %s locations need a js/wasm build", ErrConfig, loc.Kind)
	}
	return fs.New(), nil
}
