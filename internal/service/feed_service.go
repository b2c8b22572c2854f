/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package service

import (
	"context"
	"fmt"
	"time"

	"yatube/internal/apperr"
	"yatube/internal/cache"
	"yatube/internal/entity"
	"yatube/internal/nlog"
	"yatube/internal/pagination"
	"yatube/internal/repository"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

// PostPage is one page of a post feed.
type PostPage = pagination.Page[*entity.Post]

// RenderFunc turns an assembled global feed page into the bytes that are
// cached and served.
type RenderFunc func(page PostPage) ([]byte, error)

type GroupFeed struct {
	Group *entity.Group
	Page  PostPage
}

type ProfileFeed struct {
	Author      *entity.User
	PostCount   int64
	IsFollowing bool // always false for anonymous viewers
	Page        PostPage
}

// FeedService assembles the four read views: select the base set, order it
// newest first, paginate. None of them mutate state.
type FeedService interface {
	GlobalFeed(ctx context.Context, pageIndex int) (PostPage, error)
	// CachedGlobalFeed serves the rendered global feed for key (request path
	// plus query) from the response cache, rendering it on a miss.
	CachedGlobalFeed(ctx context.Context, key string, pageIndex int, render RenderFunc) ([]byte, error)
	GroupFeed(ctx context.Context, slug string, pageIndex int) (*GroupFeed, error)
	ProfileFeed(ctx context.Context, username string, pageIndex int, viewer *entity.User) (*ProfileFeed, error)
	FollowedFeed(ctx context.Context, viewer *entity.User, pageIndex int) (PostPage, error)
	InvalidateGlobalFeed(ctx context.Context) error
}

type feedService struct {
	posts   repository.PostRepository
	groups  repository.GroupRepository
	users   repository.UserRepository
	follows repository.FollowRepository

	cache    cache.ResponseCache
	ttl      time.Duration
	pageSize int
	inflight singleflight.Group

	logger nlog.Logger
}

func NewFeedService(
	posts repository.PostRepository,
	groups repository.GroupRepository,
	users repository.UserRepository,
	follows repository.FollowRepository,
	responseCache cache.ResponseCache,
	ttl time.Duration,
	logger nlog.Logger,
) FeedService {
	return &feedService{
		posts:    posts,
		groups:   groups,
		users:    users,
		follows:  follows,
		cache:    responseCache,
		ttl:      ttl,
		pageSize: pagination.PostsPerPage,
		logger:   logger,
	}
}

func (f *feedService) Logf(format string, v ...any) {
	f.logger.Logf(format, v...)
}

type windowQuery func(offset, limit int) ([]*entity.Post, int64, error)

func (f *feedService) page(pageIndex int, query windowQuery) (PostPage, error) {
	offset, limit := pagination.Window(f.pageSize, pageIndex)
	items, total, err := query(offset, limit)
	if err != nil {
		return PostPage{}, err
	}
	return pagination.NewPage(items, total, f.pageSize, pageIndex), nil
}

func (f *feedService) GlobalFeed(ctx context.Context, pageIndex int) (PostPage, error) {
	return f.page(pageIndex, func(offset, limit int) ([]*entity.Post, int64, error) {
		return f.posts.ListAll(ctx, offset, limit)
	})
}

func (f *feedService) CachedGlobalFeed(ctx context.Context, key string, pageIndex int, render RenderFunc) ([]byte, error) {
	// Read before querying: a render that races a write keeps the older
	// generation and its Put is dropped.
	gen, err := f.cache.Generation(ctx)
	if err != nil {
		f.Logf("Cache generation unavailable, rendering uncached {%v}", err)
		return f.renderGlobalFeed(ctx, pageIndex, render)
	}

	cached, ok, err := f.cache.Get(ctx, key)
	if err != nil {
		f.Logf("Cache read failed, rendering uncached {%v}", err)
	} else if ok {
		return cached, nil
	}

	// Concurrent misses on the same key and generation share a single
	// render; a read issued after an invalidation starts its own.
	value, err, _ := f.inflight.Do(fmt.Sprintf("%d:%s", gen, key), func() (any, error) {
		rendered, err := f.renderGlobalFeed(ctx, pageIndex, render)
		if err != nil {
			return nil, err
		}
		if err := f.cache.Put(ctx, gen, key, rendered, f.ttl); err != nil {
			f.Logf("Cache write failed {%v}", err)
		}
		return rendered, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]byte), nil
}

func (f *feedService) renderGlobalFeed(ctx context.Context, pageIndex int, render RenderFunc) ([]byte, error) {
	page, err := f.GlobalFeed(ctx, pageIndex)
	if err != nil {
		return nil, err
	}
	rendered, err := render(page)
	if err != nil {
		return nil, errors.Wrap(err, "render global feed")
	}
	return rendered, nil
}

func (f *feedService) GroupFeed(ctx context.Context, slug string, pageIndex int) (*GroupFeed, error) {
	group, err := f.groups.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	page, err := f.page(pageIndex, func(offset, limit int) ([]*entity.Post, int64, error) {
		return f.posts.ListByGroup(ctx, group.ID, offset, limit)
	})
	if err != nil {
		return nil, err
	}
	return &GroupFeed{Group: group, Page: page}, nil
}

func (f *feedService) ProfileFeed(ctx context.Context, username string, pageIndex int, viewer *entity.User) (*ProfileFeed, error) {
	author, err := f.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	page, err := f.page(pageIndex, func(offset, limit int) ([]*entity.Post, int64, error) {
		return f.posts.ListByAuthor(ctx, author.UUID, offset, limit)
	})
	if err != nil {
		return nil, err
	}

	following := false
	if viewer != nil {
		following, err = f.follows.Exists(ctx, viewer.UUID, author.UUID)
		if err != nil {
			return nil, err
		}
	}
	return &ProfileFeed{
		Author:      author,
		PostCount:   int64(page.Count),
		IsFollowing: following,
		Page:        page,
	}, nil
}

func (f *feedService) FollowedFeed(ctx context.Context, viewer *entity.User, pageIndex int) (PostPage, error) {
	if viewer == nil {
		return PostPage{}, errors.Wrap(apperr.ErrUnauthorized, "followed feed")
	}
	return f.page(pageIndex, func(offset, limit int) ([]*entity.Post, int64, error) {
		return f.posts.ListByFollowedAuthors(ctx, viewer.UUID, offset, limit)
	})
}

func (f *feedService) InvalidateGlobalFeed(ctx context.Context) error {
	return errors.Wrap(f.cache.InvalidateAll(ctx), "invalidate global feed")
}
