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
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

// RedisCache shares cached responses between processes. Keys are scoped by
// a generation counter so that InvalidateAll is a single INCR; entries of
// older generations are never read again and age out through their TTL.
type RedisCache struct {
	inner  *redis.Client
	prefix string
}

func NewRedisCache(ctx context.Context, addr, password, prefix string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0, // use default DB
	})
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, errors.Wrapf(err, "ping redis at %s", addr)
	}
	return &RedisCache{inner: client, prefix: prefix}, nil
}

func (r *RedisCache) generationKey() string {
	return r.prefix + ":generation"
}

func (r *RedisCache) Generation(ctx context.Context) (uint64, error) {
	gen, err := r.inner.Get(ctx, r.generationKey()).Uint64()
	if err == redis.Nil {
		return 0, nil
	}
	return gen, errors.Wrap(err, "read cache generation")
}

func (r *RedisCache) entryKey(gen uint64, key string) string {
	return fmt.Sprintf("%s:%d:%s", r.prefix, gen, key)
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	gen, err := r.Generation(ctx)
	if err != nil {
		return nil, false, err
	}
	value, err := r.inner.Get(ctx, r.entryKey(gen, key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "read cache entry %s", key)
	}
	return value, true, nil
}

// Put writes under the key space of gen. A value computed before an
// invalidation lands in a generation Get no longer reads.
func (r *RedisCache) Put(ctx context.Context, gen uint64, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return errors.Wrapf(r.inner.Set(ctx, r.entryKey(gen, key), value, ttl).Err(), "write cache entry %s", key)
}

func (r *RedisCache) InvalidateAll(ctx context.Context) error {
	return errors.Wrap(r.inner.Incr(ctx, r.generationKey()).Err(), "bump cache generation")
}

func (r *RedisCache) Close() error {
	return r.inner.Close()
}
