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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// LocalStore keeps blobs under a directory served by the media route.
type LocalStore struct {
	root      string
	urlPrefix string
}

func NewLocalStore(root, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create media directory %s", root)
	}
	if !strings.HasSuffix(urlPrefix, "/") {
		urlPrefix += "/"
	}
	return &LocalStore{root: root, urlPrefix: urlPrefix}, nil
}

func (l *LocalStore) Root() string {
	return l.root
}

func (l *LocalStore) path(key string) string {
	return filepath.Join(l.root, filepath.FromSlash(key))
}

func (l *LocalStore) Save(_ context.Context, filename string, r io.Reader) (string, error) {
	key := NewKey(filename)
	full := l.path(key)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", errors.Wrap(err, "create blob directory")
	}

	f, err := os.Create(full)
	if err != nil {
		return "", errors.Wrapf(err, "create blob %s", key)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(full)
		return "", errors.Wrapf(err, "write blob %s", key)
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrapf(err, "close blob %s", key)
	}
	return key, nil
}

func (l *LocalStore) URL(key string) string {
	if key == "" {
		return ""
	}
	return l.urlPrefix + key
}

// Delete removes the blob. A missing blob is not an error.
func (l *LocalStore) Delete(_ context.Context, key string) error {
	if !ValidKey(key) {
		return errors.Errorf("invalid blob key %q", key)
	}
	err := os.Remove(l.path(key))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "delete blob %s", key)
	}
	return nil
}
