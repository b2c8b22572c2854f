/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package repository_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"yatube/internal/apperr"
	"yatube/internal/data"
	"yatube/internal/data/datatest"
	"yatube/internal/entity"
	"yatube/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(t *testing.T, s *data.StorageManager, username string) *entity.User {
	t.Helper()
	id := uuid.New().String()
	u := &entity.User{
		UUID:     id,
		Username: username,
		Secret:   entity.UserSecret{UserUUID: id, Hash: "x"},
	}
	require.NoError(t, s.GetUserRepository().Create(context.Background(), u))
	return u
}

func newPost(t *testing.T, s *data.StorageManager, author *entity.User, text string, group *entity.Group) *entity.Post {
	t.Helper()
	p := &entity.Post{Text: text, AuthorUUID: author.UUID}
	if group != nil {
		p.GroupID = &group.ID
	}
	require.NoError(t, s.GetPostRepository().Create(context.Background(), p))
	return p
}

func ids(posts []*entity.Post) []uint64 {
	out := make([]uint64, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	s := datatest.NewStorage(t)
	users := s.GetUserRepository()

	leo := newUser(t, s, "leo")

	got, err := users.GetByUsername(ctx, "leo")
	require.NoError(t, err)
	assert.Equal(t, leo.UUID, got.UUID)

	withSecret, err := users.GetForLogin(ctx, "leo")
	require.NoError(t, err)
	assert.Equal(t, "x", withSecret.Secret.Hash)

	_, err = users.GetByUUID(ctx, "nope")
	assert.True(t, apperr.IsNotFound(err))

	err = users.Create(ctx, &entity.User{UUID: uuid.New().String(), Username: "leo"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestPostsAreListedNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := datatest.NewStorage(t)
	author := newUser(t, s, "author")

	first := newPost(t, s, author, "first", nil)
	second := newPost(t, s, author, "second", nil)
	third := newPost(t, s, author, "third", nil)

	posts, total, err := s.GetPostRepository().ListAll(ctx, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Equal(t, []uint64{third.ID, second.ID, first.ID}, ids(posts))
	assert.Equal(t, "author", posts[0].Author.Username)
}

func TestPostOrderUsesCreationTimeThenID(t *testing.T) {
	ctx := context.Background()
	s := datatest.NewStorage(t)
	author := newUser(t, s, "author")
	repo := s.GetPostRepository()

	now := time.Now().Truncate(time.Second)
	older := &entity.Post{Text: "older", AuthorUUID: author.UUID, CreatedAt: now.Add(-time.Hour)}
	tieA := &entity.Post{Text: "tie a", AuthorUUID: author.UUID, CreatedAt: now}
	tieB := &entity.Post{Text: "tie b", AuthorUUID: author.UUID, CreatedAt: now}
	for _, p := range []*entity.Post{tieA, older, tieB} {
		require.NoError(t, repo.Create(ctx, p))
	}

	posts, _, err := repo.ListAll(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint64{tieB.ID, tieA.ID, older.ID}, ids(posts))
}

func TestPostWindows(t *testing.T) {
	ctx := context.Background()
	s := datatest.NewStorage(t)
	author := newUser(t, s, "author")
	for i := 0; i < 13; i++ {
		newPost(t, s, author, "post", nil)
	}
	repo := s.GetPostRepository()

	page, total, err := repo.ListAll(ctx, 10, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 13, total)
	assert.Len(t, page, 3)

	page, total, err = repo.ListAll(ctx, 30, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 13, total)
	assert.Empty(t, page)

	page, _, err = repo.ListByAuthor(ctx, author.UUID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, page)

	page, total, err = repo.ListAll(ctx, -10, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 13, total)
	assert.Empty(t, page)
}

func TestListByGroupAndAuthor(t *testing.T) {
	ctx := context.Background()
	s := datatest.NewStorage(t)
	a := newUser(t, s, "a")
	b := newUser(t, s, "b")

	cats := &entity.Group{Title: "Cats", Slug: "cats", Description: "meow"}
	require.NoError(t, s.GetGroupRepository().Create(ctx, cats))

	inGroup := newPost(t, s, a, "cat post", cats)
	newPost(t, s, b, "no group", nil)

	posts, total, err := s.GetPostRepository().ListByGroup(ctx, cats.ID, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, []uint64{inGroup.ID}, ids(posts))
	require.NotNil(t, posts[0].Group)
	assert.Equal(t, "cats", posts[0].Group.Slug)

	count, err := s.GetPostRepository().CountByAuthor(ctx, b.UUID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestUpdateKeepsCreationTime(t *testing.T) {
	ctx := context.Background()
	s := datatest.NewStorage(t)
	author := newUser(t, s, "author")
	repo := s.GetPostRepository()

	post := newPost(t, s, author, "draft", nil)
	created := post.CreatedAt

	post.Text = "final"
	post.CreatedAt = created.Add(time.Hour)
	require.NoError(t, repo.Update(ctx, post))

	stored, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", stored.Text)
	assert.True(t, stored.CreatedAt.Equal(created))

	err = repo.Update(ctx, &entity.Post{ID: 999, Text: "ghost"})
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeletePostCascadesComments(t *testing.T) {
	ctx := context.Background()
	s := datatest.NewStorage(t)
	author := newUser(t, s, "author")
	post := newPost(t, s, author, "post", nil)
	other := newPost(t, s, author, "other", nil)

	comments := s.GetCommentRepository()
	require.NoError(t, comments.Create(ctx, &entity.Comment{PostID: post.ID, AuthorUUID: author.UUID, Text: "one"}))
	require.NoError(t, comments.Create(ctx, &entity.Comment{PostID: other.ID, AuthorUUID: author.UUID, Text: "two"}))

	require.NoError(t, s.GetPostRepository().Delete(ctx, post.ID))

	_, err := s.GetPostRepository().GetByID(ctx, post.ID)
	assert.True(t, apperr.IsNotFound(err))
	count, err := comments.CountByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
	count, err = comments.CountByPost(ctx, other.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	assert.True(t, apperr.IsNotFound(s.GetPostRepository().Delete(ctx, post.ID)))
}

func TestDeleteGroupClearsPostGroup(t *testing.T) {
	ctx := context.Background()
	s := datatest.NewStorage(t)
	author := newUser(t, s, "author")
	groups := s.GetGroupRepository()

	g := &entity.Group{Title: "Dogs", Slug: "dogs", Description: "woof"}
	require.NoError(t, groups.Create(ctx, g))
	post := newPost(t, s, author, "dog post", g)

	require.NoError(t, groups.Delete(ctx, g.ID))

	stored, err := s.GetPostRepository().GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.GroupID)
	assert.Nil(t, stored.Group)

	_, err = groups.GetBySlug(ctx, "dogs")
	assert.True(t, apperr.IsNotFound(err))
}

func TestGroupSlugIsUnique(t *testing.T) {
	ctx := context.Background()
	s := datatest.NewStorage(t)
	groups := s.GetGroupRepository()

	require.NoError(t, groups.Create(ctx, &entity.Group{Title: "A", Slug: "same", Description: "-"}))
	err := groups.Create(ctx, &entity.Group{Title: "B", Slug: "same", Description: "-"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	list, err := groups.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCommentsAreListedOldestFirst(t *testing.T) {
	ctx := context.Background()
	s := datatest.NewStorage(t)
	author := newUser(t, s, "author")
	post := newPost(t, s, author, "post", nil)
	comments := s.GetCommentRepository()

	for _, text := range []string{"first", "second", "third"} {
		require.NoError(t, comments.Create(ctx, &entity.Comment{PostID: post.ID, AuthorUUID: author.UUID, Text: text}))
	}

	list, err := comments.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "first", list[0].Text)
	assert.Equal(t, "third", list[2].Text)
	assert.Equal(t, "author", list[0].Author.Username)
}

func TestFollowIsUniquePerPair(t *testing.T) {
	ctx := context.Background()
	s := datatest.NewStorage(t)
	reader := newUser(t, s, "reader")
	author := newUser(t, s, "author")
	follows := s.GetFollowRepository()

	created, err := follows.Create(ctx, reader.UUID, author.UUID)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = follows.Create(ctx, reader.UUID, author.UUID)
	require.NoError(t, err)
	assert.False(t, created)

	edges, err := follows.ListByUser(ctx, reader.UUID)
	require.NoError(t, err)
	assert.Len(t, edges, 1)

	existed, err := follows.Delete(ctx, reader.UUID, author.UUID)
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = follows.Delete(ctx, reader.UUID, author.UUID)
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestConcurrentFollowsStoreOneEdge(t *testing.T) {
	ctx := context.Background()
	const writers = 8
	s := datatest.NewFileStorage(t, writers)
	reader := newUser(t, s, "reader")
	author := newUser(t, s, "author")
	follows := s.GetFollowRepository()

	var created int32
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			ok, err := follows.Create(ctx, reader.UUID, author.UUID)
			assert.NoError(t, err)
			if ok {
				atomic.AddInt32(&created, 1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&created), "exactly one writer stores the edge")
	edges, err := follows.ListByUser(ctx, reader.UUID)
	require.NoError(t, err)
	assert.Len(t, edges, 1)
}

func TestFollowedAuthorsFeed(t *testing.T) {
	ctx := context.Background()
	s := datatest.NewStorage(t)
	reader := newUser(t, s, "reader")
	followed := newUser(t, s, "followed")
	stranger := newUser(t, s, "stranger")

	wanted := newPost(t, s, followed, "from followed", nil)
	newPost(t, s, stranger, "from stranger", nil)
	newPost(t, s, reader, "own post", nil)

	_, err := s.GetFollowRepository().Create(ctx, reader.UUID, followed.UUID)
	require.NoError(t, err)

	posts, total, err := s.GetPostRepository().ListByFollowedAuthors(ctx, reader.UUID, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, []uint64{wanted.ID}, ids(posts))

	posts, total, err = s.GetPostRepository().ListByFollowedAuthors(ctx, stranger.UUID, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, posts)

	edges, err := s.GetFollowRepository().ListByUser(ctx, reader.UUID)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, "followed", edges[0].Author.Username)
}
