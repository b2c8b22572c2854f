/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package apperr

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNotFoundKeepsKind(t *testing.T) {
	err := NotFound("group", "missing-slug")

	assert.True(t, IsNotFound(err))
	assert.False(t, IsForbidden(err))
	assert.Contains(t, err.Error(), "group missing-slug")
}

func TestWrappedKindsSurviveContext(t *testing.T) {
	err := errors.Wrap(ErrUnauthorized, "follow")
	err = fmt.Errorf("handler: %w", err)

	assert.True(t, IsUnauthorized(err))
}

func TestValidationErrorMatchesKind(t *testing.T) {
	err := errors.Wrap(NewValidationError("text", "must not be empty"), "create post")

	assert.True(t, IsValidation(err))
	v, ok := AsValidation(err)
	assert.True(t, ok)
	assert.Equal(t, "text", v.Field)
	assert.Equal(t, "text: must not be empty", v.Error())
}
