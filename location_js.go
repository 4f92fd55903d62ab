//go:build js && wasm

package persistent

import (
	"fmt"

	"github.com/AndrewDonelson/persistent/internal/storage/browser"
)

// resolveLocation maps a builder path to a browser storage location.
func resolveLocation(path string) (Location, error) {
	return ParseBrowserLocation(path)
}

// platformBackend returns the Web Storage area for a resolved location.
func platformBackend(loc Location) (Backend, error) {
	switch loc.Kind {
	case LocalStorage:
		return browser.New(browser.Local), nil
	case SessionStorage:
		return browser.New(browser.Session), nil
	}
	return nil, fmt.Errorf("%w: %s locations are not available in the browser", ErrConfig, loc.Kind)
}
