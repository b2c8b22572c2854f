/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package handler

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"yatube/internal/apperr"
	"yatube/internal/entity"
	"yatube/internal/middleware"
	"yatube/internal/nlog"
	"yatube/internal/pagination"
	"yatube/internal/view"

	"github.com/gorilla/mux"
)

type pageData map[string]interface{}

// newPageData seeds every page with the viewer and the current year.
func newPageData(r *http.Request) pageData {
	return pageData{
		"Viewer": middleware.CurrentUser(r.Context()),
		"Year":   time.Now().Year(),
		"Path":   r.URL.Path,
	}
}

// responder renders pages and maps service errors to responses.
type responder struct {
	renderer *view.PageRenderer
	logger   nlog.Logger
}

func (h *responder) Logf(format string, v ...any) {
	h.logger.Logf(format, v...)
}

// render executes the page into memory first so that a template error can
// still become a clean 500.
func (h *responder) render(w http.ResponseWriter, status int, name string, data pageData) {
	var buf bytes.Buffer
	if err := h.renderer.RenderTemplate(&buf, name, data); err != nil {
		h.Logf("Could not render %s {%v}", name, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (h *responder) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusNotFound, "404.html", newPageData(r))
}

// fail turns a service error into a response. Forbidden writes are
// redirected by their handlers before reaching here.
func (h *responder) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case apperr.IsNotFound(err):
		h.NotFound(w, r)
	case apperr.IsUnauthorized(err):
		http.Redirect(w, r, middleware.LoginURL(r), http.StatusFound)
	case apperr.IsForbidden(err):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case apperr.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.Logf("Request %s %s failed {%v}", r.Method, r.URL.RequestURI(), err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func viewer(r *http.Request) *entity.User {
	return middleware.CurrentUser(r.Context())
}

func pageIndex(r *http.Request) int {
	return pagination.ParseIndex(r.URL.Query().Get(pagination.QueryParam))
}

// postID reads the {id} route variable; anything but a positive integer
// cannot name a post.
func postID(r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func profileURL(username string) string {
	return "/profile/" + username + "/"
}

func postURL(id uint64) string {
	return "/posts/" + strconv.FormatUint(id, 10) + "/"
}
