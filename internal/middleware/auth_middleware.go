/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package middleware

import (
	"context"
	"net/http"
	"net/url"

	"yatube/internal/entity"
	"yatube/internal/nlog"
	"yatube/internal/service"

	"github.com/gorilla/sessions"
)

const (
	SessionName = "auth-session"
	// SessionUserKey holds the signed-in user's UUID.
	SessionUserKey = "user_uuid"
	LoginPath      = "/auth/login/"
)

type contextKey int

const userKey contextKey = iota

// WithUser stores the signed-in user in ctx.
func WithUser(ctx context.Context, u *entity.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// CurrentUser returns the signed-in user, or nil for anonymous requests.
func CurrentUser(ctx context.Context) *entity.User {
	u, _ := ctx.Value(userKey).(*entity.User)
	return u
}

// LoginURL is the sign-in route carrying the originally requested path.
func LoginURL(r *http.Request) string {
	return LoginPath + "?next=" + url.QueryEscape(r.URL.RequestURI())
}

// Identify resolves the session cookie into a user for every request. A
// broken cookie or a vanished user makes the request anonymous.
func Identify(store sessions.Store, users service.UserService, logger nlog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, SessionName)
			if err != nil {
				logger.Logf("Discarding unreadable session {%v}", err)
				next.ServeHTTP(w, r)
				return
			}
			userUUID, ok := session.Values[SessionUserKey].(string)
			if !ok || userUUID == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetByUUID(r.Context(), userUUID)
			if err != nil {
				logger.Logf("Session user %s could not be loaded {%v}", userUUID, err)
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireLogin redirects anonymous requests to the sign-in page, with next
// set to the requested path.
func RequireLogin(next func(w http.ResponseWriter, r *http.Request)) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r.Context()) == nil {
			http.Redirect(w, r, LoginURL(r), http.StatusFound)
			return
		}
		next(w, r)
	}
}
