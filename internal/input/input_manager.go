/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package input

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"yatube/internal/handler"
	"yatube/internal/middleware"
	"yatube/internal/nlog"
	"yatube/internal/service"
	"yatube/internal/view"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
)

type IptConfig struct {
	ServerPort   uint16
	ReadTimeout  int64
	WriteTimeout int64
}

// Dependencies is everything the router needs to serve the site.
type Dependencies struct {
	Feeds   service.FeedService
	Posts   service.PostService
	Groups  service.GroupService
	Follows service.FollowService
	Auth    service.AuthService
	Users   service.UserService

	Renderer *view.PageRenderer
	Sessions sessions.Store

	// MediaPrefix and MediaRoot serve locally stored images; MediaRoot is
	// empty when images live in a remote bucket.
	MediaPrefix string
	MediaRoot   string

	Logger       nlog.Logger // handlers
	AccessLogger nlog.Logger // one line per request
}

type InputManager struct { // Manages HTTP input
	running atomic.Bool
	paused  atomic.Bool

	logger nlog.Logger
	server *http.Server
	deps   *Dependencies

	stopFromOutsideChan chan struct{}
	doneFromInsideChan  chan struct{}
	stopOnce            atomic.Bool
}

func NewInputManager() *InputManager {
	return &InputManager{
		running:             atomic.Bool{},
		paused:              atomic.Bool{},
		stopFromOutsideChan: make(chan struct{}),
		doneFromInsideChan:  make(chan struct{}),
	}
}

func (i *InputManager) IsReady() bool {
	return i.logger != nil && i.deps != nil
}

func (i *InputManager) IsRunning() bool {
	return i.running.Load()
}

func (i *InputManager) SetLogger(l nlog.Logger) {
	i.logger = l
}

func (i *InputManager) SetDependencies(d *Dependencies) {
	i.deps = d
}

func (i *InputManager) Logf(format string, a ...any) {
	i.logger.Logf(format, a...)
}

func (i *InputManager) SetPause(paused bool) {
	i.paused.Store(paused)
}

func (i *InputManager) IsPaused() bool {
	return i.paused.Load()
}

// PauseMiddleware answers 503 while the manager is paused, e.g. while it
// drains on shutdown.
func (i *InputManager) PauseMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if i.IsPaused() {
			w.Header().Set("Retry-After", "5")
			http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Handler builds the full router wrapped by the pause switch.
func (i *InputManager) Handler() (http.Handler, error) {
	if !i.IsReady() {
		return nil, fmt.Errorf("The Input manager is not ready... Missing components")
	}
	return i.PauseMiddleware(NewRouter(i.deps)), nil
}

// Run serves HTTP until ctx is cancelled or Stop is called.
func (i *InputManager) Run(ctx context.Context, cfg *IptConfig) error {
	i.Logf("Input service started...")

	h, err := i.Handler()
	if err != nil {
		return err
	}

	i.server = &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:        h,
		ReadTimeout:    time.Duration(cfg.ReadTimeout * int64(time.Second)),
		WriteTimeout:   time.Duration(cfg.WriteTimeout * int64(time.Second)),
		MaxHeaderBytes: 1 << 20,
	}

	listener, err := net.Listen("tcp", i.server.Addr)
	if err != nil {
		i.Logf("FATAL: HTTP Server error{%v}\n", err)
		return err
	}

	go func() {
		select {
		case <-ctx.Done():
			i.Logf("Received stop signal. Shutting down...")
		case <-i.stopFromOutsideChan:
			i.Logf("Server was asked to stop. Shutting down...")
		}
		i.SetPause(true)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := i.server.Shutdown(shutdownCtx); err != nil {
			i.Logf("Error during shutdown... %v\n", err)
		}
		close(i.doneFromInsideChan)
	}()

	i.Logf("Http server started on port {%d}", cfg.ServerPort)
	i.running.Store(true)
	defer i.running.Store(false)

	if err := i.server.Serve(listener); err != http.ErrServerClosed {
		i.Logf("FATAL: HTTP Server error{%v}\n", err)
		return err
	}
	<-i.doneFromInsideChan
	return nil
}

func (i *InputManager) Stop() {
	if !i.stopOnce.CompareAndSwap(false, true) {
		return
	}
	close(i.stopFromOutsideChan)
	<-i.doneFromInsideChan
	i.running.Store(false)
}

// NewRouter wires every route of the site.
func NewRouter(d *Dependencies) http.Handler {
	feedHandler := handler.NewFeedHandler(d.Feeds, d.Follows, d.Renderer, d.Logger)
	groupHandler := handler.NewGroupHandler(d.Feeds, d.Renderer, d.Logger)
	userHandler := handler.NewUserHandler(d.Feeds, d.Follows, d.Renderer, d.Logger)
	postHandler := handler.NewPostHandler(d.Posts, d.Groups, d.Renderer, d.Logger)
	authHandler := handler.NewAuthHandler(d.Auth, d.Sessions, d.Renderer, d.Logger)

	logRequests := middleware.RequestLogger(d.AccessLogger)
	identify := middleware.Identify(d.Sessions, d.Users, d.Logger)
	login := middleware.RequireLogin

	r := mux.NewRouter().StrictSlash(true)
	r.Use(logRequests, identify)

	// Feeds
	r.HandleFunc("/", feedHandler.Index).Methods("GET")
	r.HandleFunc("/group/{slug}/", groupHandler.GroupPosts).Methods("GET")
	r.HandleFunc("/profile/{username}/", userHandler.Profile).Methods("GET")
	r.HandleFunc("/follow/", login(feedHandler.FollowIndex)).Methods("GET")

	// Follow graph
	r.HandleFunc("/profile/{username}/follow", login(userHandler.Follow)).Methods("GET", "POST")
	r.HandleFunc("/profile/{username}/unfollow", login(userHandler.Unfollow)).Methods("GET", "POST")

	// Posts
	r.HandleFunc("/create/", login(postHandler.Create)).Methods("GET", "POST")
	r.HandleFunc("/posts/{id}/", postHandler.Detail).Methods("GET")
	r.HandleFunc("/posts/{id}/edit/", login(postHandler.Edit)).Methods("GET", "POST")
	r.HandleFunc("/posts/{id}/delete/", login(postHandler.Delete)).Methods("POST")
	r.HandleFunc("/posts/{id}/comment/", login(postHandler.AddComment)).Methods("GET", "POST")

	// Authentication routes
	r.HandleFunc("/auth/signup/", authHandler.Signup).Methods("GET", "POST")
	r.HandleFunc("/auth/login/", authHandler.Login).Methods("GET", "POST")
	r.HandleFunc("/auth/logout/", authHandler.Logout).Methods("GET", "POST")

	if d.MediaRoot != "" && d.MediaPrefix != "" {
		prefix := "/" + strings.Trim(d.MediaPrefix, "/") + "/"
		files := http.StripPrefix(prefix, http.FileServer(http.Dir(d.MediaRoot)))
		r.PathPrefix(prefix).Handler(noDirectoryListing(files, feedHandler.NotFound)).Methods("GET", "HEAD")
	}

	r.NotFoundHandler = logRequests(identify(http.HandlerFunc(feedHandler.NotFound)))
	return r
}

func noDirectoryListing(next http.Handler, notFound http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			notFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
