/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"yatube/internal/apperr"
	"yatube/internal/entity"
	"yatube/internal/nlog"
	"yatube/internal/service"
	"yatube/internal/view"
)

const maxUploadBytes = 10 << 20

// postForm echoes submitted values back into create_post.html.
type postForm struct {
	Text  string
	Group string
}

type PostHandler struct {
	responder
	posts  service.PostService
	groups service.GroupService
}

func NewPostHandler(posts service.PostService, groups service.GroupService, renderer *view.PageRenderer, logger nlog.Logger) *PostHandler {
	return &PostHandler{
		responder: responder{renderer: renderer, logger: logger},
		posts:     posts,
		groups:    groups,
	}
}

func (p *PostHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		p.NotFound(w, r)
		return
	}

	detail, err := p.posts.Detail(r.Context(), id)
	if err != nil {
		p.fail(w, r, err)
		return
	}

	current := viewer(r)
	data := newPageData(r)
	data["Post"] = detail.Post
	data["AuthorPostCount"] = detail.AuthorPostCount
	data["Comments"] = detail.Comments
	data["CommentCount"] = detail.CommentCount()
	data["IsAuthor"] = current != nil && current.UUID == detail.Post.AuthorUUID
	p.render(w, http.StatusOK, "post_detail.html", data)
}

func (p *PostHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, action string, isEdit bool, form postForm, errs map[string]string) {
	groups, err := p.groups.List(r.Context())
	if err != nil {
		p.fail(w, r, err)
		return
	}
	data := newPageData(r)
	data["Action"] = action
	data["IsEdit"] = isEdit
	data["Form"] = form
	data["Errors"] = errs
	data["Groups"] = groups
	p.render(w, status, "create_post.html", data)
}

// readPostForm parses either a multipart or an urlencoded body. The
// returned closer releases the uploaded file, if any.
func readPostForm(r *http.Request) (service.PostInput, postForm, func(), error) {
	noop := func() {}
	var in service.PostInput

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return in, postForm{}, noop, apperr.NewValidationError("image", "Upload is too large or malformed")
		}
	} else if err := r.ParseForm(); err != nil {
		return in, postForm{}, noop, apperr.NewValidationError("text", "Malformed form")
	}

	form := postForm{Text: r.FormValue("text"), Group: strings.TrimSpace(r.FormValue("group"))}
	in.Text = form.Text
	if form.Group != "" {
		id, err := strconv.ParseUint(form.Group, 10, 64)
		if err != nil {
			return in, form, noop, apperr.NewValidationError("group", "Unknown group")
		}
		in.GroupID = &id
	}

	closer := noop
	if r.MultipartForm != nil {
		file, header, err := r.FormFile("image")
		switch {
		case err == nil:
			in.Image = file
			in.ImageName = header.Filename
			closer = func() { file.Close() }
		case errors.Is(err, http.ErrMissingFile):
		default:
			return in, form, noop, apperr.NewValidationError("image", "Could not read the uploaded image")
		}
	}
	return in, form, closer, nil
}

func validationErrors(err error) (map[string]string, bool) {
	v, ok := apperr.AsValidation(err)
	if !ok {
		return nil, false
	}
	return map[string]string{v.Field: v.Message}, true
}

func (p *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		p.renderForm(w, r, http.StatusOK, "/create/", false, postForm{}, map[string]string{})
		return
	}

	current := viewer(r)
	in, form, closeUpload, err := readPostForm(r)
	defer closeUpload()
	if err == nil {
		_, err = p.posts.Create(r.Context(), current, in)
	}
	if errs, ok := validationErrors(err); ok {
		p.renderForm(w, r, http.StatusBadRequest, "/create/", false, form, errs)
		return
	}
	if err != nil {
		p.fail(w, r, err)
		return
	}
	http.Redirect(w, r, profileURL(current.Username), http.StatusFound)
}

// Edit redirects everyone but the author to the post page.
func (p *PostHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		p.NotFound(w, r)
		return
	}
	current := viewer(r)
	action := postURL(id) + "edit/"

	if r.Method == http.MethodGet {
		post, err := p.posts.Get(r.Context(), id)
		if err != nil {
			p.fail(w, r, err)
			return
		}
		if !isAuthor(current, post) {
			http.Redirect(w, r, postURL(id), http.StatusFound)
			return
		}
		form := postForm{Text: post.Text}
		if post.GroupID != nil {
			form.Group = strconv.FormatUint(*post.GroupID, 10)
		}
		p.renderForm(w, r, http.StatusOK, action, true, form, map[string]string{})
		return
	}

	in, form, closeUpload, err := readPostForm(r)
	defer closeUpload()
	if err == nil {
		_, err = p.posts.Edit(r.Context(), current, id, in)
	}
	if apperr.IsForbidden(err) {
		http.Redirect(w, r, postURL(id), http.StatusFound)
		return
	}
	if errs, ok := validationErrors(err); ok {
		p.renderForm(w, r, http.StatusBadRequest, action, true, form, errs)
		return
	}
	if err != nil {
		p.fail(w, r, err)
		return
	}
	http.Redirect(w, r, postURL(id), http.StatusFound)
}

func (p *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		p.NotFound(w, r)
		return
	}
	current := viewer(r)

	_, err := p.posts.Delete(r.Context(), current, id)
	if apperr.IsForbidden(err) {
		http.Redirect(w, r, postURL(id), http.StatusFound)
		return
	}
	if err != nil {
		p.fail(w, r, err)
		return
	}
	http.Redirect(w, r, profileURL(current.Username), http.StatusFound)
}

// AddComment always lands back on the post; an empty comment is dropped.
func (p *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		p.NotFound(w, r)
		return
	}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, postURL(id), http.StatusFound)
			return
		}
		_, err := p.posts.AddComment(r.Context(), viewer(r), id, r.FormValue("text"))
		if err != nil && !apperr.IsValidation(err) {
			p.fail(w, r, err)
			return
		}
	} else if _, err := p.posts.Get(r.Context(), id); err != nil {
		p.fail(w, r, err)
		return
	}
	http.Redirect(w, r, postURL(id), http.StatusFound)
}

func isAuthor(u *entity.User, post *entity.Post) bool {
	return u != nil && post != nil && u.UUID == post.AuthorUUID
}

