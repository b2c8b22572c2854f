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
	"gorm.io/gorm/clause"
)

// FollowRepository stores the directed subscription edges.
type FollowRepository interface {
	// Create inserts the edge unless it already exists and reports whether
	// a row was written. Concurrent calls for one pair store one edge.
	Create(ctx context.Context, userUUID, authorUUID string) (bool, error)
	// Delete removes the edge if present and reports whether it existed.
	Delete(ctx context.Context, userUUID, authorUUID string) (bool, error)

	Exists(ctx context.Context, userUUID, authorUUID string) (bool, error)
	ListByUser(ctx context.Context, userUUID string) ([]*entity.Follow, error)
}

type GormFollowRepository struct {
	db *gorm.DB
}

func NewGormFollowRepository(db *gorm.DB) FollowRepository {
	return &GormFollowRepository{db}
}

func (repo *GormFollowRepository) Create(ctx context.Context, userUUID, authorUUID string) (bool, error) {
	edge := &entity.Follow{UserUUID: userUUID, AuthorUUID: authorUUID}
	result := repo.db.WithContext(ctx).
		Omit("User", "Author").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_uuid"}, {Name: "author_uuid"}},
			DoNothing: true,
		}).
		Create(edge)
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "create follow")
	}
	return result.RowsAffected > 0, nil
}

func (repo *GormFollowRepository) Delete(ctx context.Context, userUUID, authorUUID string) (bool, error) {
	result := repo.db.WithContext(ctx).
		Where("user_uuid = ? AND author_uuid = ?", userUUID, authorUUID).
		Delete(&entity.Follow{})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "delete follow")
	}
	return result.RowsAffected > 0, nil
}

func (repo *GormFollowRepository) Exists(ctx context.Context, userUUID, authorUUID string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&entity.Follow{}).
		Where("user_uuid = ? AND author_uuid = ?", userUUID, authorUUID).
		Count(&count).Error
	return count > 0, errors.Wrap(err, "lookup follow")
}

// ListByUser returns the user's outgoing edges ordered by author.
func (repo *GormFollowRepository) ListByUser(ctx context.Context, userUUID string) ([]*entity.Follow, error) {
	follows := []*entity.Follow{}
	err := repo.db.WithContext(ctx).
		Preload("Author").
		Where("user_uuid = ?", userUUID).
		Order("author_uuid ASC").
		Find(&follows).Error
	return follows, errors.Wrap(err, "list follows")
}
