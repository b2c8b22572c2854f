/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".cfg"), `{"secret-key": "from-file", "enable-logging": true}`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.FolderPath)
	assert.Equal(t, "from-file", cfg.SecretKey)
	assert.True(t, cfg.EnableLogging)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, uint16(8000), cfg.HTTPServerPort)
	assert.Equal(t, 20*time.Second, cfg.CacheTTLDuration())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".cfg"), `{"secret-key": "from-file", "http-server-port": 9000}`)
	writeFile(t, filepath.Join(dir, ".env"), "YATUBE_REDIS_ADDR=localhost:6379\n")

	t.Setenv("YATUBE_SECRET_KEY", "from-env")
	t.Setenv("YATUBE_HEALTH_PORT", "9100")
	t.Setenv("YATUBE_CACHE_TTL", "5")
	t.Cleanup(func() { os.Unsetenv("YATUBE_REDIS_ADDR") })

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.SecretKey)
	assert.Equal(t, uint16(9000), cfg.HTTPServerPort)
	assert.Equal(t, uint16(9100), cfg.HealthServerPort)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 5*time.Second, cfg.CacheTTLDuration())
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".cfg"), `{"http-server-port": 9000}`)
	t.Setenv("YATUBE_HTTP_PORT", "not-a-port")
	_, err = LoadConfig(dir)
	assert.Error(t, err)
}

func TestRetrieveWebTemplates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "layouts", "base.html"), `{{define "base"}}{{end}}`)
	writeFile(t, filepath.Join(dir, "index.html"), `{{template "base" .}}`)
	writeFile(t, filepath.Join(dir, "profile.html"), `{{template "base" .}}`)

	mapping, err := RetrieveWebTemplates(dir)
	require.NoError(t, err)

	assert.Len(t, mapping, 2)
	assert.Equal(t, []string{
		filepath.Join(dir, "layouts", "base.html"),
		filepath.Join(dir, "index.html"),
	}, mapping["index.html"])
}
