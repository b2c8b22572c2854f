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

type GroupRepository interface {
	Create(ctx context.Context, group *entity.Group) error

	// Delete removes the group; its posts survive with no group.
	Delete(ctx context.Context, id uint64) error

	GetByID(ctx context.Context, id uint64) (*entity.Group, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Group, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context) ([]*entity.Group, error)
}

type GormGroupRepository struct {
	db *gorm.DB
}

func NewGormGroupRepository(db *gorm.DB) GroupRepository {
	return &GormGroupRepository{db}
}

func (repo *GormGroupRepository) Create(ctx context.Context, group *entity.Group) error {
	exists, err := repo.SlugExists(ctx, group.Slug)
	if err != nil {
		return err
	}
	if exists {
		return errors.Wrapf(ErrDuplicate, "group slug %q", group.Slug)
	}
	return errors.Wrap(repo.db.WithContext(ctx).Create(group).Error, "create group")
}

func (repo *GormGroupRepository) Delete(ctx context.Context, id uint64) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Post{}).Where("group_id = ?", id).Update("group_id", nil).Error; err != nil {
			return errors.Wrapf(err, "detach posts from group %d", id)
		}
		result := tx.Delete(&entity.Group{}, id)
		if result.Error != nil {
			return errors.Wrapf(result.Error, "delete group %d", id)
		}
		if result.RowsAffected == 0 {
			return translate(gorm.ErrRecordNotFound, "group", id)
		}
		return nil
	})
}

func (repo *GormGroupRepository) GetByID(ctx context.Context, id uint64) (*entity.Group, error) {
	var group entity.Group
	if err := repo.db.WithContext(ctx).First(&group, id).Error; err != nil {
		return nil, translate(err, "group", id)
	}
	return &group, nil
}

func (repo *GormGroupRepository) GetBySlug(ctx context.Context, slug string) (*entity.Group, error) {
	var group entity.Group
	if err := repo.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, translate(err, "group", slug)
	}
	return &group, nil
}

func (repo *GormGroupRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&entity.Group{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, errors.Wrap(err, "lookup group slug")
}

func (repo *GormGroupRepository) List(ctx context.Context) ([]*entity.Group, error) {
	groups := []*entity.Group{}
	err := repo.db.WithContext(ctx).Order("title ASC").Find(&groups).Error
	return groups, errors.Wrap(err, "list groups")
}
