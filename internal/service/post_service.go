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
	"io"
	"strings"

	"yatube/internal/apperr"
	"yatube/internal/blob"
	"yatube/internal/entity"
	"yatube/internal/nlog"
	"yatube/internal/repository"

	"github.com/pkg/errors"
)

// PostInput carries the editable fields of a post. Image is optional; on
// edit a nil Image keeps the current one.
type PostInput struct {
	Text      string
	GroupID   *uint64
	ImageName string
	Image     io.Reader
}

type PostDetail struct {
	Post            *entity.Post
	AuthorPostCount int64
	Comments        []*entity.Comment
}

func (d *PostDetail) CommentCount() int {
	return len(d.Comments)
}

// FeedInvalidator drops every cached global feed page.
type FeedInvalidator interface {
	InvalidateGlobalFeed(ctx context.Context) error
}

// PostService owns every post and comment write. Post writes invalidate the
// cached global feed once they are committed.
type PostService interface {
	Create(ctx context.Context, author *entity.User, in PostInput) (*entity.Post, error)
	Edit(ctx context.Context, editor *entity.User, id uint64, in PostInput) (*entity.Post, error)
	Delete(ctx context.Context, actor *entity.User, id uint64) (*entity.Post, error)
	Get(ctx context.Context, id uint64) (*entity.Post, error)
	Detail(ctx context.Context, id uint64) (*PostDetail, error)
	AddComment(ctx context.Context, author *entity.User, postID uint64, text string) (*entity.Comment, error)
}

type postService struct {
	posts    repository.PostRepository
	groups   repository.GroupRepository
	comments repository.CommentRepository
	blobs    blob.BlobStore
	feed     FeedInvalidator
	logger   nlog.Logger
}

func NewPostService(
	posts repository.PostRepository,
	groups repository.GroupRepository,
	comments repository.CommentRepository,
	blobs blob.BlobStore,
	feed FeedInvalidator,
	logger nlog.Logger,
) PostService {
	return &postService{
		posts:    posts,
		groups:   groups,
		comments: comments,
		blobs:    blobs,
		feed:     feed,
		logger:   logger,
	}
}

func (s *postService) Logf(format string, v ...any) {
	s.logger.Logf(format, v...)
}

func (s *postService) validate(ctx context.Context, in *PostInput) error {
	in.Text = strings.TrimSpace(in.Text)
	if in.Text == "" {
		return apperr.NewValidationError("text", "Post text must not be empty")
	}
	if in.GroupID != nil {
		if _, err := s.groups.GetByID(ctx, *in.GroupID); err != nil {
			if apperr.IsNotFound(err) {
				return apperr.NewValidationError("group", "Unknown group")
			}
			return err
		}
	}
	return nil
}

func (s *postService) storeImage(ctx context.Context, in PostInput) (string, error) {
	if in.Image == nil {
		return "", nil
	}
	return s.blobs.Save(ctx, in.ImageName, in.Image)
}

func (s *postService) dropImage(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.blobs.Delete(ctx, key); err != nil {
		s.Logf("Could not delete image %s {%v}", key, err)
	}
}

// invalidate runs after a committed write. A failure leaves the cached
// pages to expire through their TTL.
func (s *postService) invalidate(ctx context.Context) {
	if err := s.feed.InvalidateGlobalFeed(ctx); err != nil {
		s.Logf("Global feed invalidation failed {%v}", err)
	}
}

func (s *postService) Create(ctx context.Context, author *entity.User, in PostInput) (*entity.Post, error) {
	if author == nil {
		return nil, errors.Wrap(apperr.ErrUnauthorized, "create post")
	}
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}

	image, err := s.storeImage(ctx, in)
	if err != nil {
		return nil, err
	}
	post := &entity.Post{
		Text:       in.Text,
		AuthorUUID: author.UUID,
		GroupID:    in.GroupID,
		Image:      image,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		s.dropImage(ctx, image)
		return nil, err
	}
	s.invalidate(ctx)

	s.Logf("Post %d created by %s {%s}", post.ID, author.Username, post.Preview())
	return post, nil
}

func (s *postService) Edit(ctx context.Context, editor *entity.User, id uint64, in PostInput) (*entity.Post, error) {
	if editor == nil {
		return nil, errors.Wrap(apperr.ErrUnauthorized, "edit post")
	}
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorUUID != editor.UUID {
		return post, errors.Wrapf(apperr.ErrForbidden, "post %d belongs to another author", id)
	}
	if err := s.validate(ctx, &in); err != nil {
		return post, err
	}

	image, err := s.storeImage(ctx, in)
	if err != nil {
		return post, err
	}
	previous := post.Image
	post.Text = in.Text
	post.GroupID = in.GroupID
	if image != "" {
		post.Image = image
	}
	if err := s.posts.Update(ctx, post); err != nil {
		s.dropImage(ctx, image)
		return nil, err
	}
	if image != "" {
		s.dropImage(ctx, previous)
	}
	s.invalidate(ctx)

	s.Logf("Post %d edited by %s", post.ID, editor.Username)
	return s.posts.GetByID(ctx, id)
}

func (s *postService) Delete(ctx context.Context, actor *entity.User, id uint64) (*entity.Post, error) {
	if actor == nil {
		return nil, errors.Wrap(apperr.ErrUnauthorized, "delete post")
	}
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorUUID != actor.UUID {
		return post, errors.Wrapf(apperr.ErrForbidden, "post %d belongs to another author", id)
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return nil, err
	}
	s.dropImage(ctx, post.Image)
	s.invalidate(ctx)

	s.Logf("Post %d deleted by %s", id, actor.Username)
	return post, nil
}

func (s *postService) Get(ctx context.Context, id uint64) (*entity.Post, error) {
	return s.posts.GetByID(ctx, id)
}

func (s *postService) Detail(ctx context.Context, id uint64) (*PostDetail, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.posts.CountByAuthor(ctx, post.AuthorUUID)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByPost(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PostDetail{Post: post, AuthorPostCount: count, Comments: comments}, nil
}

// AddComment never invalidates the global feed: comments are not part of it.
func (s *postService) AddComment(ctx context.Context, author *entity.User, postID uint64, text string) (*entity.Comment, error) {
	if author == nil {
		return nil, errors.Wrap(apperr.ErrUnauthorized, "add comment")
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.NewValidationError("text", "Comment text must not be empty")
	}

	comment := &entity.Comment{PostID: postID, AuthorUUID: author.UUID, Text: text}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	s.Logf("Comment %d added to post %d by %s", comment.ID, postID, author.Username)
	return comment, nil
}
