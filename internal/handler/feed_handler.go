/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package handler

import (
	"html/template"
	"net/http"

	"yatube/internal/nlog"
	"yatube/internal/service"
	"yatube/internal/view"
)

// FeedHandler serves the global feed and the followed-authors feed.
type FeedHandler struct {
	responder
	feeds   service.FeedService
	follows service.FollowService
}

func NewFeedHandler(feeds service.FeedService, follows service.FollowService, renderer *view.PageRenderer, logger nlog.Logger) *FeedHandler {
	return &FeedHandler{
		responder: responder{renderer: renderer, logger: logger},
		feeds:     feeds,
		follows:   follows,
	}
}

// Index serves the global feed. The post list is cached per path and query;
// the surrounding page is rendered for the current viewer on every request.
func (h *FeedHandler) Index(w http.ResponseWriter, r *http.Request) {
	render := func(page service.PostPage) ([]byte, error) {
		return h.renderer.RenderFragment("index.html", "post_list", pageData{
			"Page":       page,
			"ShowAuthor": true,
			"ShowGroup":  true,
		})
	}

	list, err := h.feeds.CachedGlobalFeed(r.Context(), r.URL.RequestURI(), pageIndex(r), render)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	data := newPageData(r)
	data["PostList"] = template.HTML(list)
	h.render(w, http.StatusOK, "index.html", data)
}

func (h *FeedHandler) FollowIndex(w http.ResponseWriter, r *http.Request) {
	page, err := h.feeds.FollowedFeed(r.Context(), viewer(r), pageIndex(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	following, err := h.follows.Following(r.Context(), viewer(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	data := newPageData(r)
	data["Following"] = following
	data["Page"] = page
	data["ShowAuthor"] = true
	data["ShowGroup"] = true
	h.render(w, http.StatusOK, "follow.html", data)
}
