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

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error

	// ListByPost returns the comments oldest first.
	ListByPost(ctx context.Context, postID uint64) ([]*entity.Comment, error)
	CountByPost(ctx context.Context, postID uint64) (int64, error)
}

type GormCommentRepository struct {
	db *gorm.DB
}

func NewGormCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db}
}

func (repo *GormCommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	comment.ID = 0
	err := repo.db.WithContext(ctx).Omit("Post", "Author").Create(comment).Error
	return errors.Wrap(err, "create comment")
}

func (repo *GormCommentRepository) ListByPost(ctx context.Context, postID uint64) ([]*entity.Comment, error) {
	comments := []*entity.Comment{}
	err := repo.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&comments).Error
	return comments, errors.Wrapf(err, "list comments of post %d", postID)
}

func (repo *GormCommentRepository) CountByPost(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&entity.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, errors.Wrap(err, "count comments")
}
