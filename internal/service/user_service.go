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

	"yatube/internal/entity"
	"yatube/internal/nlog"
	"yatube/internal/repository"
)

// UserService resolves identities stored in sessions and URLs.
type UserService interface {
	GetByUUID(ctx context.Context, uuid string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}

type userService struct {
	users  repository.UserRepository
	logger nlog.Logger
}

func NewUserService(users repository.UserRepository, logger nlog.Logger) UserService {
	return &userService{
		users:  users,
		logger: logger,
	}
}

func (u *userService) Logf(format string, v ...any) {
	u.logger.Logf(format, v...)
}

func (u *userService) GetByUUID(ctx context.Context, uuid string) (*entity.User, error) {
	return u.users.GetByUUID(ctx, uuid)
}

func (u *userService) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return u.users.GetByUsername(ctx, username)
}
