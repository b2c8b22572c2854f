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
	"strings"

	"yatube/internal/apperr"
	"yatube/internal/entity"
	"yatube/internal/nlog"
	"yatube/internal/repository"

	"github.com/gosimple/slug"
	"github.com/pkg/errors"
)

const maxSlugAttempts = 100

// GroupService manages communities. Groups are created and deleted by
// operators, never by site users.
type GroupService interface {
	Create(ctx context.Context, title, description, slugHint string) (*entity.Group, error)
	Delete(ctx context.Context, slug string) error
	GetBySlug(ctx context.Context, slug string) (*entity.Group, error)
	List(ctx context.Context) ([]*entity.Group, error)
}

type groupService struct {
	groups repository.GroupRepository
	feed   FeedInvalidator
	logger nlog.Logger
}

func NewGroupService(groups repository.GroupRepository, feed FeedInvalidator, logger nlog.Logger) GroupService {
	return &groupService{
		groups: groups,
		feed:   feed,
		logger: logger,
	}
}

func (s *groupService) Logf(format string, v ...any) {
	s.logger.Logf(format, v...)
}

// Create derives the slug from slugHint, or from the title when no hint is
// given, and suffixes it with -2, -3, ... until it is free.
func (s *groupService) Create(ctx context.Context, title, description, slugHint string) (*entity.Group, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperr.NewValidationError("title", "Title must not be empty")
	}
	if len([]rune(title)) > 200 {
		return nil, apperr.NewValidationError("title", "Title must be at most 200 characters")
	}
	if strings.TrimSpace(slugHint) == "" {
		slugHint = title
	}
	base := slug.Make(slugHint)
	if base == "" {
		return nil, apperr.NewValidationError("slug", "Slug must contain letters or digits")
	}

	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		candidate := base
		if attempt > 1 {
			candidate = fmt.Sprintf("%s-%d", base, attempt)
		}
		taken, err := s.groups.SlugExists(ctx, candidate)
		if err != nil {
			return nil, err
		}
		if taken {
			continue
		}

		group := &entity.Group{Title: title, Slug: candidate, Description: description}
		err = s.groups.Create(ctx, group)
		if errors.Is(err, repository.ErrDuplicate) {
			continue
		}
		if err != nil {
			return nil, err
		}
		s.Logf("Group %s created {%s}", group.Slug, group.Title)
		return group, nil
	}
	return nil, apperr.NewValidationError("slug", "No free slug for "+base)
}

// Delete removes the group; its posts survive without a group. The global
// feed shows group links, so cached pages are dropped too.
func (s *groupService) Delete(ctx context.Context, slug string) error {
	group, err := s.groups.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.groups.Delete(ctx, group.ID); err != nil {
		return err
	}
	if err := s.feed.InvalidateGlobalFeed(ctx); err != nil {
		s.Logf("Global feed invalidation failed {%v}", err)
	}
	s.Logf("Group %s deleted", slug)
	return nil
}

func (s *groupService) GetBySlug(ctx context.Context, slug string) (*entity.Group, error) {
	return s.groups.GetBySlug(ctx, slug)
}

func (s *groupService) List(ctx context.Context) ([]*entity.Group, error) {
	return s.groups.List(ctx)
}
