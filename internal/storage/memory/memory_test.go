package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/AndrewDonelson/persistent/internal/storage"
	"github.com/AndrewDonelson/persistent/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_WriteRead(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	data := []byte("value")
	require.NoError(t, s.Write(ctx, "k", data))
	data[0] = 'X'

	got, err := s.Read(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "value", string(got), "store must not alias caller bytes")

	got[0] = 'Y'
	again, err := s.Read(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "value", string(again))
}

func TestMemory_Miss(t *testing.T) {
	_, err := memory.New().Read(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestMemory_ExistsDelete(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	require.NoError(t, s.Write(ctx, "k", nil))

	ok, err := s.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Delete(ctx, "k"))
	ok, err = s.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_LenFlush(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	for i := 0; i < 100; i++ {
		require.NoError(t, s.Write(ctx, fmt.Sprintf("key-%d", i), []byte{byte(i)}))
	}
	assert.Equal(t, 100, s.Len())
	s.Flush()
	assert.Equal(t, 0, s.Len())
}

func TestMemory_Concurrent(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i)
			for j := 0; j < 100; j++ {
				_ = s.Write(ctx, key, []byte{byte(j)})
				_, _ = s.Read(ctx, key)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 16, s.Len())
}
