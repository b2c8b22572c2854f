/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"yatube/internal"
	"yatube/internal/blob"
	"yatube/internal/cache"
	"yatube/internal/data"
	"yatube/internal/health"
	"yatube/internal/input"
	"yatube/internal/nlog"
	"yatube/internal/service"
	"yatube/internal/view"

	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
)

var LogTopics = []string{
	"main",
	"http",
	"input",
	"feed",
	"post",
	"follow",
	"group",
	"auth",
	"user",
	"health",
}

func registerLogTopics(l *nlog.AppLogger, topics []string) map[string]nlog.Logger {
	loggers := make(map[string]nlog.Logger, len(topics))
	for _, topic := range topics {
		loggers[topic] = l.RegisterSubsystem(topic)
	}
	return loggers
}

func newResponseCache(ctx context.Context, cfg *internal.Config, logger nlog.Logger) (cache.ResponseCache, error) {
	if cfg.RedisAddr == "" {
		logger.Logf("Using the in-process response cache")
		return cache.NewMemoryCache(), nil
	}
	logger.Logf("Using the redis response cache at %s", cfg.RedisAddr)
	return cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, "yatube:feed")
}

func newBlobStore(cfg *internal.Config, logger nlog.Logger) (blob.BlobStore, string, error) {
	if cfg.S3Bucket != "" {
		logger.Logf("Storing images in bucket %s", cfg.S3Bucket)
		store, err := blob.NewS3Store(cfg.S3Bucket, cfg.S3Region)
		return store, "", err
	}
	root := cfg.ResolvePath(cfg.MediaDirectory)
	logger.Logf("Storing images under %s", root)
	store, err := blob.NewLocalStore(root, cfg.MediaURLPrefix)
	return store, root, err
}

func newSessionStore(cfg *internal.Config) (*sessions.CookieStore, error) {
	if len(cfg.SecretKey) < 32 {
		return nil, fmt.Errorf("secret-key must be at least 32 bytes long")
	}
	store := sessions.NewCookieStore([]byte(cfg.SecretKey))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(7 * 24 * time.Hour.Seconds()),
	}
	return store, nil
}

func run(ctx context.Context, cfg *internal.Config) error {
	appLogger, err := nlog.NewAppLogger(nlog.Options{
		Enabled: cfg.EnableLogging,
		Level:   cfg.LogLevel,
		JSON:    cfg.LogJSON,
		File:    cfg.LogFile,
	})
	if err != nil {
		return errors.Wrap(err, "create logger")
	}
	defer appLogger.CloseAll()
	logs := registerLogTopics(appLogger, LogTopics)
	mainLog := logs["main"]

	healthServer := health.NewHealthServer(logs["health"])

	db, err := data.OpenDatabase(cfg.DBDriver, cfg.DBName)
	if err != nil {
		return err
	}
	storage, err := data.NewStorageManager(db)
	if err != nil {
		return err
	}
	defer storage.Close()
	mainLog.Logf("Storage ready {%s}", cfg.DBDriver)

	responseCache, err := newResponseCache(ctx, cfg, mainLog)
	if err != nil {
		return err
	}
	if closer, ok := responseCache.(io.Closer); ok {
		defer closer.Close()
	}
	blobs, mediaRoot, err := newBlobStore(cfg, mainLog)
	if err != nil {
		return err
	}
	cookieStore, err := newSessionStore(cfg)
	if err != nil {
		return err
	}

	templates, err := internal.RetrieveWebTemplates(cfg.ResolvePath(cfg.TemplateDirectory))
	if err != nil {
		return err
	}
	renderer, err := view.NewPageRenderer(templates, view.Funcs(blobs.URL))
	if err != nil {
		return errors.Wrap(err, "parse templates")
	}

	users := storage.GetUserRepository()
	feeds := service.NewFeedService(storage.GetPostRepository(), storage.GetGroupRepository(), users, storage.GetFollowRepository(), responseCache, cfg.CacheTTLDuration(), logs["feed"])

	inputManager := input.NewInputManager()
	inputManager.SetLogger(logs["input"])
	inputManager.SetDependencies(&input.Dependencies{
		Feeds:        feeds,
		Posts:        service.NewPostService(storage.GetPostRepository(), storage.GetGroupRepository(), storage.GetCommentRepository(), blobs, feeds, logs["post"]),
		Groups:       service.NewGroupService(storage.GetGroupRepository(), feeds, logs["group"]),
		Follows:      service.NewFollowService(users, storage.GetFollowRepository(), logs["follow"]),
		Auth:         service.NewAuthService(users, logs["auth"]),
		Users:        service.NewUserService(users, logs["user"]),
		Renderer:     renderer,
		Sessions:     cookieStore,
		MediaPrefix:  cfg.MediaURLPrefix,
		MediaRoot:    mediaRoot,
		Logger:       logs["input"],
		AccessLogger: logs["http"],
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := healthServer.Run(ctx, cfg.HealthServerPort); err != nil {
			mainLog.Logf("Health server stopped {%v}", err)
		}
	}()

	if err := storage.Ping(); err == nil {
		healthServer.SetServing(true)
	}

	err = inputManager.Run(ctx, &input.IptConfig{
		ServerPort:   cfg.HTTPServerPort,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	healthServer.Stop()
	wg.Wait()

	mainLog.Logf("Shutting off...")
	return err
}

func main() {
	configDir := flag.String("config", ".", "folder holding the .cfg file and optional .env files")
	flag.Parse()

	cfg, err := internal.LoadConfig(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not load configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
