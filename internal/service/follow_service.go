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

	"yatube/internal/apperr"
	"yatube/internal/entity"
	"yatube/internal/nlog"
	"yatube/internal/repository"

	"github.com/pkg/errors"
)

// FollowService edits the follow graph. Both writes are idempotent and
// require a signed-in viewer; neither touches the global feed cache.
type FollowService interface {
	Follow(ctx context.Context, viewer *entity.User, authorUsername string) error
	Unfollow(ctx context.Context, viewer *entity.User, authorUsername string) error
	Following(ctx context.Context, viewer *entity.User) ([]*entity.Follow, error)
}

type followService struct {
	users   repository.UserRepository
	follows repository.FollowRepository
	logger  nlog.Logger
}

func NewFollowService(users repository.UserRepository, follows repository.FollowRepository, logger nlog.Logger) FollowService {
	return &followService{
		users:   users,
		follows: follows,
		logger:  logger,
	}
}

func (s *followService) Logf(format string, v ...any) {
	s.logger.Logf(format, v...)
}

func (s *followService) Follow(ctx context.Context, viewer *entity.User, authorUsername string) error {
	if viewer == nil {
		return errors.Wrap(apperr.ErrUnauthorized, "follow")
	}
	author, err := s.users.GetByUsername(ctx, authorUsername)
	if err != nil {
		return err
	}
	if author.UUID == viewer.UUID {
		return nil
	}

	created, err := s.follows.Create(ctx, viewer.UUID, author.UUID)
	if err != nil {
		return err
	}
	if created {
		s.Logf("%s now follows %s", viewer.Username, author.Username)
	}
	return nil
}

func (s *followService) Unfollow(ctx context.Context, viewer *entity.User, authorUsername string) error {
	if viewer == nil {
		return errors.Wrap(apperr.ErrUnauthorized, "unfollow")
	}
	author, err := s.users.GetByUsername(ctx, authorUsername)
	if err != nil {
		return err
	}

	existed, err := s.follows.Delete(ctx, viewer.UUID, author.UUID)
	if err != nil {
		return err
	}
	if existed {
		s.Logf("%s no longer follows %s", viewer.Username, author.Username)
	}
	return nil
}

// Following lists the authors the viewer follows, ordered by author.
func (s *followService) Following(ctx context.Context, viewer *entity.User) ([]*entity.Follow, error) {
	if viewer == nil {
		return nil, errors.Wrap(apperr.ErrUnauthorized, "list follows")
	}
	return s.follows.ListByUser(ctx, viewer.UUID)
}
