/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package pagination slices ordered result sets into fixed-size pages.
//
// Out-of-range page indexes never fail: they produce a page with no items
// but with the full navigation metadata, so every feed route degrades the
// same way.
package pagination

import (
	"math"
	"strconv"
	"strings"
)

// PostsPerPage is the single page size shared by every feed view.
const PostsPerPage = 10

// QueryParam is the query string key carrying the 1-based page index.
const QueryParam = "page"

// Page is one slice of an ordered sequence plus navigation metadata.
type Page[T any] struct {
	Items    []T
	Number   int // requested page index, 1-based
	Size     int
	Count    int // total number of items across all pages
	NumPages int
}

// Paginate slices an already ordered, in-memory sequence.
func Paginate[T any](items []T, size, index int) Page[T] {
	offset, limit := Window(size, index)
	total := len(items)

	var slice []T
	if limit > 0 && offset < total {
		end := min(offset+limit, total)
		slice = items[offset:end]
	}
	return NewPage(slice, int64(total), size, index)
}

// NewPage builds a page around items that were already fetched for the
// window returned by Window(size, index).
func NewPage[T any](items []T, total int64, size, index int) Page[T] {
	if size <= 0 {
		panic("pagination: page size must be positive")
	}
	if items == nil {
		items = []T{}
	}
	count := int(total)
	return Page[T]{
		Items:    items,
		Number:   index,
		Size:     size,
		Count:    count,
		NumPages: (count + size - 1) / size,
	}
}

// Window returns the offset and limit of page index for the given size.
// A limit of zero means the index cannot address any item, which includes
// indexes whose offset would not fit in an int.
func Window(size, index int) (offset, limit int) {
	if size <= 0 || index < 1 || index-1 > math.MaxInt/size {
		return 0, 0
	}
	return (index - 1) * size, size
}

// ParseIndex reads the page index from its raw query value. A missing or
// non-numeric value means the first page.
func ParseIndex(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1
	}
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return index
}

func (p Page[T]) Len() int { return len(p.Items) }

func (p Page[T]) InRange() bool {
	return p.Number >= 1 && p.Number <= p.NumPages
}

func (p Page[T]) HasPrevious() bool {
	return p.InRange() && p.Number > 1
}

func (p Page[T]) HasNext() bool {
	return p.InRange() && p.Number < p.NumPages
}

func (p Page[T]) HasOtherPages() bool {
	return p.HasPrevious() || p.HasNext()
}

func (p Page[T]) PreviousNumber() int { return p.Number - 1 }
func (p Page[T]) NextNumber() int     { return p.Number + 1 }

// PageRange lists every valid page index, for rendering page links.
func (p Page[T]) PageRange() []int {
	r := make([]int, p.NumPages)
	for i := range r {
		r[i] = i + 1
	}
	return r
}
