/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package blob

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeyKeepsImageExtension(t *testing.T) {
	key := NewKey("Holiday.PNG")
	assert.True(t, strings.HasPrefix(key, "posts/"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	assert.False(t, strings.Contains(NewKey("script.sh"), ".sh"))
	assert.NotEqual(t, NewKey("a.jpg"), NewKey("a.jpg"))
}

func TestValidKey(t *testing.T) {
	assert.True(t, ValidKey("posts/abc.png"))
	assert.False(t, ValidKey(""))
	assert.False(t, ValidKey("/etc/passwd"))
	assert.False(t, ValidKey("posts/../../secret"))
	assert.False(t, ValidKey("posts//x"))
	assert.False(t, ValidKey(`posts\x`))
}

func TestLocalStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store, err := NewLocalStore(root, "/media")
	require.NoError(t, err)

	key, err := store.Save(ctx, "cat.jpg", strings.NewReader("image bytes"))
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(content))
	assert.Equal(t, "/media/"+key, store.URL(key))
	assert.Empty(t, store.URL(""))

	require.NoError(t, store.Delete(ctx, key))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(key)))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Delete(ctx, key), "deleting twice is fine")
	assert.Error(t, store.Delete(ctx, "../outside"))
}

func TestS3StoreURL(t *testing.T) {
	store, err := NewS3Store("yatube-media", "us-west-1")
	require.NoError(t, err)
	assert.Equal(t, "https://yatube-media.s3.us-west-1.amazonaws.com/posts/x.png", store.URL("posts/x.png"))
	assert.Empty(t, store.URL(""))
}
