/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package repository

import (
	"context"

	"yatube/internal/entity"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error

	GetForLogin(ctx context.Context, username string) (*entity.User, error)

	GetByUUID(ctx context.Context, uuid string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db}
}

// Create stores the user together with its secret in one transaction.
func (repo *GormUserRepository) Create(ctx context.Context, user *entity.User) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&entity.User{}).Where("username = ?", user.Username).Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return errors.Wrapf(ErrDuplicate, "username %q", user.Username)
		}
		return tx.Create(user).Error
	})
	return errors.Wrap(err, "create user")
}

func (repo *GormUserRepository) GetForLogin(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	err := repo.db.WithContext(ctx).Preload("Secret").Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, translate(err, "user", username)
	}
	return &user, nil
}

func (repo *GormUserRepository) GetByUUID(ctx context.Context, uuid string) (*entity.User, error) {
	var user entity.User
	if err := repo.db.WithContext(ctx).Where("uuid = ?", uuid).First(&user).Error; err != nil {
		return nil, translate(err, "user", uuid)
	}
	return &user, nil
}

func (repo *GormUserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	if err := repo.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err, "user", username)
	}
	return &user, nil
}
