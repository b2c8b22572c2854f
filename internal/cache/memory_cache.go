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
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache is a process-wide ResponseCache guarded by a read/write lock.
type MemoryCache struct {
	lock    sync.RWMutex
	entries map[string]memoryEntry
	gen     uint64
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// SetClock replaces the time source, for tests.
func (m *MemoryCache) SetClock(now func() time.Time) {
	m.lock.Lock()
	m.now = now
	m.lock.Unlock()
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.lock.RLock()
	entry, ok := m.entries[key]
	now := m.now()
	m.lock.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if !now.Before(entry.expiresAt) {
		m.lock.Lock()
		// Only drop it if nobody refreshed the entry in between.
		if current, ok := m.entries[key]; ok && !m.now().Before(current.expiresAt) {
			delete(m.entries, key)
		}
		m.lock.Unlock()
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (m *MemoryCache) Generation(_ context.Context) (uint64, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.gen, nil
}

// Put stores a copy of value unless gen is no longer current. The last
// writer of a generation wins.
func (m *MemoryCache) Put(_ context.Context, gen uint64, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	stored := append([]byte(nil), value...)

	m.lock.Lock()
	defer m.lock.Unlock()
	if gen != m.gen {
		return nil
	}
	m.entries[key] = memoryEntry{value: stored, expiresAt: m.now().Add(ttl)}
	return nil
}

func (m *MemoryCache) InvalidateAll(_ context.Context) error {
	m.lock.Lock()
	m.entries = make(map[string]memoryEntry)
	m.gen++
	m.lock.Unlock()
	return nil
}

func (m *MemoryCache) Len() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return len(m.entries)
}
