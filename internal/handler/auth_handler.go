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
	"strings"

	"yatube/internal/apperr"
	"yatube/internal/middleware"
	"yatube/internal/nlog"
	"yatube/internal/service"
	"yatube/internal/view"

	"github.com/gorilla/sessions"
)

type signupForm struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
}

type AuthHandler struct {
	responder
	authService service.AuthService
	cookieStore sessions.Store
}

func NewAuthHandler(authService service.AuthService, cookieStore sessions.Store, renderer *view.PageRenderer, logger nlog.Logger) *AuthHandler {
	return &AuthHandler{
		responder:   responder{renderer: renderer, logger: logger},
		authService: authService,
		cookieStore: cookieStore,
	}
}

// safeNext keeps only local paths, so a crafted next cannot send the user
// to another site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return "/"
	}
	return next
}

func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, userUUID string) error {
	session, _ := h.cookieStore.Get(r, middleware.SessionName)
	session.Values[middleware.SessionUserKey] = userUUID
	return session.Save(r, w)
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		data := newPageData(r)
		data["Form"] = signupForm{}
		data["Errors"] = map[string]string{}
		h.render(w, http.StatusOK, "signup.html", data)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error occurred while parsing the form", http.StatusBadRequest)
		return
	}

	form := signupForm{
		Username:  r.FormValue("username"),
		FirstName: r.FormValue("first_name"),
		LastName:  r.FormValue("last_name"),
		Email:     r.FormValue("email"),
	}
	user, err := h.authService.Register(r.Context(), service.SignupInput{
		Username:        form.Username,
		FirstName:       form.FirstName,
		LastName:        form.LastName,
		Email:           form.Email,
		Password:        r.FormValue("password"),
		PasswordConfirm: r.FormValue("password_confirm"),
	})
	if v, ok := apperr.AsValidation(err); ok {
		data := newPageData(r)
		data["Form"] = form
		data["Errors"] = map[string]string{v.Field: v.Message}
		h.render(w, http.StatusBadRequest, "signup.html", data)
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.startSession(w, r, user.UUID); err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		data := newPageData(r)
		data["Next"] = safeNext(r.URL.Query().Get("next"))
		data["Username"] = ""
		data["Error"] = ""
		h.render(w, http.StatusOK, "login.html", data)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}
	username := r.FormValue("username")
	next := safeNext(r.FormValue("next"))

	user, err := h.authService.Login(r.Context(), username, r.FormValue("password"))
	if apperr.IsUnauthorized(err) {
		data := newPageData(r)
		data["Next"] = next
		data["Username"] = username
		data["Error"] = "Wrong username or password"
		h.render(w, http.StatusUnauthorized, "login.html", data)
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.startSession(w, r, user.UUID); err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, next, http.StatusFound)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.cookieStore.Get(r, middleware.SessionName)
	delete(session.Values, middleware.SessionUserKey)
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
