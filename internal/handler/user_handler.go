/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package handler

import (
	"net/http"

	"yatube/internal/nlog"
	"yatube/internal/service"
	"yatube/internal/view"

	"github.com/gorilla/mux"
)

// UserHandler serves author profiles and the follow toggles on them.
type UserHandler struct {
	responder
	feeds   service.FeedService
	follows service.FollowService
}

func NewUserHandler(feeds service.FeedService, follows service.FollowService, renderer *view.PageRenderer, logger nlog.Logger) *UserHandler {
	return &UserHandler{
		responder: responder{renderer: renderer, logger: logger},
		feeds:     feeds,
		follows:   follows,
	}
}

func (u *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	current := viewer(r)

	feed, err := u.feeds.ProfileFeed(r.Context(), username, pageIndex(r), current)
	if err != nil {
		u.fail(w, r, err)
		return
	}

	data := newPageData(r)
	data["Author"] = feed.Author
	data["PostCount"] = feed.PostCount
	data["Following"] = feed.IsFollowing
	data["IsSelf"] = current != nil && current.UUID == feed.Author.UUID
	data["Page"] = feed.Page
	data["ShowAuthor"] = false
	data["ShowGroup"] = true
	u.render(w, http.StatusOK, "profile.html", data)
}

func (u *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	if err := u.follows.Follow(r.Context(), viewer(r), username); err != nil {
		u.fail(w, r, err)
		return
	}
	http.Redirect(w, r, profileURL(username), http.StatusFound)
}

func (u *UserHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	if err := u.follows.Unfollow(r.Context(), viewer(r), username); err != nil {
		u.fail(w, r, err)
		return
	}
	http.Redirect(w, r, profileURL(username), http.StatusFound)
}
