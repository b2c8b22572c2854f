/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package cache memoizes rendered responses for a bounded time.
package cache

import (
	"context"
	"time"
)

// ResponseCache maps a request key (path plus query string) to rendered
// bytes. Implementations are safe for concurrent use; a miss is not an
// error.
//
// Every InvalidateAll starts a new generation. A value must be computed
// after reading Generation and stored with that generation: Put drops it
// when an invalidation happened in between.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Generation(ctx context.Context) (uint64, error)
	Put(ctx context.Context, gen uint64, key string, value []byte, ttl time.Duration) error
	InvalidateAll(ctx context.Context) error
}
