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

type GroupHandler struct {
	responder
	feeds service.FeedService
}

func NewGroupHandler(feeds service.FeedService, renderer *view.PageRenderer, logger nlog.Logger) *GroupHandler {
	return &GroupHandler{
		responder: responder{renderer: renderer, logger: logger},
		feeds:     feeds,
	}
}

func (g *GroupHandler) GroupPosts(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	feed, err := g.feeds.GroupFeed(r.Context(), slug, pageIndex(r))
	if err != nil {
		g.fail(w, r, err)
		return
	}

	data := newPageData(r)
	data["Group"] = feed.Group
	data["Page"] = feed.Page
	data["ShowAuthor"] = true
	data["ShowGroup"] = false
	g.render(w, http.StatusOK, "group_list.html", data)
}
