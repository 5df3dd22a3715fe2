package blobstore

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	var s Store = NewMemoryStore("http://blobs.local/")
	m := s.(*MemoryStore)

	body := []byte("gif-bytes")
	require.NoError(t, s.Put(ctx, "K.gif", "image/gif", body))
	body[0] = 'X'

	obj, err := m.Get("K.gif")
	require.NoError(t, err)
	assert.Equal(t, "image/gif", obj.ContentType)
	assert.Equal(t, []byte("gif-bytes"), obj.Body)
	assert.Equal(t, "http://blobs.local", s.BaseURL())

	require.NoError(t, s.Delete(ctx, "K.gif"))
	_, err = m.Get("K.gif")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMemoryStore("")
	assert.ErrorIs(t, m.Put(ctx, "k", "image/png", nil), context.Canceled)
	assert.Equal(t, 0, m.Len())
}

func TestMemoryStore_Concurrent(t *testing.T) {
	m := NewMemoryStore("")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = m.Put(context.Background(), string(rune('a'+i%26)), "image/png", []byte{byte(i)})
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 26, m.Len())
}
