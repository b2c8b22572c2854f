/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"yatube/internal/apperr"
	"yatube/internal/cache"
	"yatube/internal/data/datatest"
	"yatube/internal/nlog"
	"yatube/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupCommands(t *testing.T) {
	ctx := context.Background()
	storage := datatest.NewStorage(t)
	feeds := service.NewFeedService(storage.GetPostRepository(), storage.GetGroupRepository(), storage.GetUserRepository(), storage.GetFollowRepository(), cache.NewMemoryCache(), 20*time.Second, nlog.Discard{})
	groups := service.NewGroupService(storage.GetGroupRepository(), feeds, nlog.Discard{})

	var out bytes.Buffer
	require.NoError(t, runCommand(ctx, groups, &out, "group-create", []string{"-title", "Cats", "-description", "All about cats"}))
	assert.Contains(t, out.String(), "/group/cats/")

	out.Reset()
	require.NoError(t, runCommand(ctx, groups, &out, "group-list", nil))
	assert.Contains(t, out.String(), "cats")
	assert.Contains(t, out.String(), "All about cats")

	out.Reset()
	require.NoError(t, runCommand(ctx, groups, &out, "group-delete", []string{"-slug", "cats"}))
	err := runCommand(ctx, groups, &out, "group-delete", []string{"-slug", "cats"})
	assert.True(t, apperr.IsNotFound(err))

	assert.Error(t, runCommand(ctx, groups, &out, "group-rename", nil))
}
