/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package cache

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	lock sync.Mutex
	at   time.Time
}

func (f *fakeClock) Now() time.Time {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.at
}

func (f *fakeClock) Advance(d time.Duration) {
	f.lock.Lock()
	f.at = f.at.Add(d)
	f.lock.Unlock()
}

func TestMemoryCacheHitAndMiss(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	_, ok, err := c.Get(ctx, "/?page=1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, 0, "/?page=1", []byte("page one"), time.Minute))

	value, ok, err := c.Get(ctx, "/?page=1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "page one", string(value))

	_, ok, _ = c.Get(ctx, "/?page=2")
	assert.False(t, ok, "keys include the query string")
}

func TestMemoryCacheExpires(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{at: time.Unix(1000, 0)}
	c := NewMemoryCache()
	c.SetClock(clock.Now)

	require.NoError(t, c.Put(ctx, 0, "/", []byte("v"), 20*time.Second))

	clock.Advance(19 * time.Second)
	_, ok, _ := c.Get(ctx, "/")
	assert.True(t, ok)

	clock.Advance(time.Second)
	_, ok, _ = c.Get(ctx, "/")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestMemoryCacheInvalidateAll(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	require.NoError(t, c.Put(ctx, 0, "/", []byte("a"), time.Minute))
	require.NoError(t, c.Put(ctx, 0, "/?page=2", []byte("b"), time.Minute))

	require.NoError(t, c.InvalidateAll(ctx))

	_, ok, _ := c.Get(ctx, "/")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestMemoryCacheDropsPutFromOlderGeneration(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	before, err := c.Generation(ctx)
	require.NoError(t, err)
	require.NoError(t, c.InvalidateAll(ctx))
	after, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, before, after)

	require.NoError(t, c.Put(ctx, before, "/", []byte("stale"), time.Minute))
	_, ok, _ := c.Get(ctx, "/")
	assert.False(t, ok)
	assert.Zero(t, c.Len())

	require.NoError(t, c.Put(ctx, after, "/", []byte("fresh"), time.Minute))
	value, ok, _ := c.Get(ctx, "/")
	assert.True(t, ok)
	assert.Equal(t, "fresh", string(value))
}

func TestMemoryCacheStoresCopy(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	value := []byte("original")
	require.NoError(t, c.Put(ctx, 0, "/", value, time.Minute))
	value[0] = 'X'

	stored, _, _ := c.Get(ctx, "/")
	assert.Equal(t, "original", string(stored))

	require.NoError(t, c.Put(ctx, 0, "/zero", []byte("x"), 0))
	_, ok, _ := c.Get(ctx, "/zero")
	assert.False(t, ok)
}

func TestMemoryCacheConcurrentUse(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("/?page=%d", i%4)
			for j := 0; j < 100; j++ {
				gen, _ := c.Generation(ctx)
				c.Put(ctx, gen, key, []byte(key), time.Minute)
				if v, ok, _ := c.Get(ctx, key); ok {
					assert.Equal(t, key, string(v))
				}
				if j%25 == 0 {
					c.InvalidateAll(ctx)
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("YATUBE_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("YATUBE_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()

	c, err := NewRedisCache(ctx, addr, os.Getenv("YATUBE_TEST_REDIS_PASSWORD"), "test-"+uuid.New().String())
	require.NoError(t, err)
	defer c.Close()

	_, ok, err := c.Get(ctx, "/")
	require.NoError(t, err)
	assert.False(t, ok)

	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Put(ctx, gen, "/", []byte("cached"), time.Minute))
	value, ok, err := c.Get(ctx, "/")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "cached", string(value))

	require.NoError(t, c.InvalidateAll(ctx))
	_, ok, err = c.Get(ctx, "/")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, gen, "/", []byte("stale"), time.Minute))
	_, ok, err = c.Get(ctx, "/")
	require.NoError(t, err)
	assert.False(t, ok)
}
