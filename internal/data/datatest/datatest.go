/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package datatest opens throwaway content stores for tests.
package datatest

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"yatube/internal/data"

	"github.com/stretchr/testify/require"
)

// NewStorage opens an isolated in-memory sqlite store for one test and
// closes it when the test ends.
func NewStorage(t testing.TB) *data.StorageManager {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := data.OpenDatabase(data.DriverSQLite, fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the shared in-memory database alive and
	// avoids table locks between pooled connections.
	sqlDB.SetMaxOpenConns(1)

	storage, err := data.NewStorageManager(db)
	require.NoError(t, err)

	t.Cleanup(func() { storage.Close() })
	return storage
}

// NewFileStorage opens a sqlite file in a temporary directory behind a pool
// of conns connections, so that concurrent callers really hit the database
// at the same time. Writers wait on each other instead of failing busy.
func NewFileStorage(t testing.TB, conns int) *data.StorageManager {
	t.Helper()

	path := filepath.Join(t.TempDir(), "yatube.db")
	db, err := data.OpenDatabase(data.DriverSQLite, "file:"+path+"?_busy_timeout=10000&_txlock=immediate")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(conns)
	sqlDB.SetMaxIdleConns(conns)

	storage, err := data.NewStorageManager(db)
	require.NoError(t, err)

	t.Cleanup(func() { storage.Close() })
	return storage
}
