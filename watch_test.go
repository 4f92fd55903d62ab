package persistent_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/AndrewDonelson/persistent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_ReloadsExternalEdit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.toml")
	p, err := persistent.New[KeyBindings]().
		Name("keys").Format(persistent.TOML).Path(path).Default(defaultKeys).
		Build()
	require.NoError(t, err)
	g := persistent.NewGuarded(p)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan error, 16)
	done := make(chan error, 1)
	go func() {
		done <- persistent.Watch(ctx, g, persistent.WatchOptions{
			Debounce: 20 * time.Millisecond,
			OnReload: func(err error) { reloaded <- err },
		})
	}()

	// Give the watcher time to register before editing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, g.Update(func(k *KeyBindings) { k.Jump = "Own write" }))
	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte("jump = \"W\"\ncrouch = \"S\"\n"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	want := KeyBindings{Jump: "W", Crouch: "S"}
	require.Eventually(t, func() bool {
		v, ok := g.Get()
		return ok && v == want
	}, 5*time.Second, 10*time.Millisecond, "watcher did not reload")

	select {
	case err := <-reloaded:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("OnReload was not called")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatch_RequiresFilePath(t *testing.T) {
	p, err := persistent.New[KeyBindings]().
		Name("keys").Format(persistent.JSON).Path("keys").Default(defaultKeys).
		Backend(persistent.NewMemoryBackend()).
		Build()
	require.NoError(t, err)

	err = persistent.Watch(context.Background(), persistent.NewGuarded(p), persistent.WatchOptions{})
	assert.ErrorIs(t, err, persistent.ErrConfig)
}
