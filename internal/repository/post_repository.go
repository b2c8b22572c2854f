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

// PostRepository lists posts newest first (created_at DESC, id DESC). Every
// List method returns the requested window together with the total size of
// the unwindowed set; a zero limit only counts.
type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	Update(ctx context.Context, post *entity.Post) error
	Delete(ctx context.Context, id uint64) error

	GetByID(ctx context.Context, id uint64) (*entity.Post, error)
	CountByAuthor(ctx context.Context, authorUUID string) (int64, error)

	ListAll(ctx context.Context, offset, limit int) ([]*entity.Post, int64, error)
	ListByGroup(ctx context.Context, groupID uint64, offset, limit int) ([]*entity.Post, int64, error)
	ListByAuthor(ctx context.Context, authorUUID string, offset, limit int) ([]*entity.Post, int64, error)
	ListByFollowedAuthors(ctx context.Context, viewerUUID string, offset, limit int) ([]*entity.Post, int64, error)
}

type GormPostRepository struct {
	db *gorm.DB
}

func NewGormPostRepository(db *gorm.DB) PostRepository {
	return &GormPostRepository{db}
}

func (repo *GormPostRepository) Create(ctx context.Context, post *entity.Post) error {
	post.ID = 0
	err := repo.db.WithContext(ctx).Omit("Author", "Group").Create(post).Error
	return errors.Wrap(err, "create post")
}

// Update rewrites the editable fields only; author and creation time are
// fixed at creation.
func (repo *GormPostRepository) Update(ctx context.Context, post *entity.Post) error {
	result := repo.db.WithContext(ctx).
		Model(&entity.Post{ID: post.ID}).
		Select("text", "group_id", "image").
		Updates(map[string]any{
			"text":     post.Text,
			"group_id": post.GroupID,
			"image":    post.Image,
		})
	if result.Error != nil {
		return errors.Wrapf(result.Error, "update post %d", post.ID)
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "post", post.ID)
	}
	return nil
}

// Delete removes the post and its comments atomically.
func (repo *GormPostRepository) Delete(ctx context.Context, id uint64) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&entity.Comment{}).Error; err != nil {
			return errors.Wrapf(err, "delete comments of post %d", id)
		}
		result := tx.Delete(&entity.Post{}, id)
		if result.Error != nil {
			return errors.Wrapf(result.Error, "delete post %d", id)
		}
		if result.RowsAffected == 0 {
			return translate(gorm.ErrRecordNotFound, "post", id)
		}
		return nil
	})
}

func (repo *GormPostRepository) GetByID(ctx context.Context, id uint64) (*entity.Post, error) {
	var post entity.Post
	err := repo.db.WithContext(ctx).Preload("Author").Preload("Group").First(&post, id).Error
	if err != nil {
		return nil, translate(err, "post", id)
	}
	return &post, nil
}

func (repo *GormPostRepository) CountByAuthor(ctx context.Context, authorUUID string) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&entity.Post{}).Where("author_uuid = ?", authorUUID).Count(&count).Error
	return count, errors.Wrap(err, "count posts")
}

func (repo *GormPostRepository) ListAll(ctx context.Context, offset, limit int) ([]*entity.Post, int64, error) {
	return repo.list(ctx, func(db *gorm.DB) *gorm.DB { return db }, offset, limit)
}

func (repo *GormPostRepository) ListByGroup(ctx context.Context, groupID uint64, offset, limit int) ([]*entity.Post, int64, error) {
	return repo.list(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("posts.group_id = ?", groupID)
	}, offset, limit)
}

func (repo *GormPostRepository) ListByAuthor(ctx context.Context, authorUUID string, offset, limit int) ([]*entity.Post, int64, error) {
	return repo.list(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("posts.author_uuid = ?", authorUUID)
	}, offset, limit)
}

// ListByFollowedAuthors joins through the follow graph: a post is listed
// iff an edge (viewer -> post author) exists.
func (repo *GormPostRepository) ListByFollowedAuthors(ctx context.Context, viewerUUID string, offset, limit int) ([]*entity.Post, int64, error) {
	return repo.list(ctx, func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("JOIN follows ON follows.author_uuid = posts.author_uuid").
			Where("follows.user_uuid = ?", viewerUUID)
	}, offset, limit)
}

func (repo *GormPostRepository) list(ctx context.Context, scope func(*gorm.DB) *gorm.DB, offset, limit int) ([]*entity.Post, int64, error) {
	db := repo.db.WithContext(ctx)

	var total int64
	if err := db.Model(&entity.Post{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count posts")
	}

	posts := []*entity.Post{}
	if limit <= 0 || offset < 0 || int64(offset) >= total {
		return posts, total, nil
	}

	err := db.Model(&entity.Post{}).
		Scopes(scope).
		Preload("Author").
		Preload("Group").
		Order("posts.created_at DESC").
		Order("posts.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list posts")
	}
	return posts, total, nil
}
