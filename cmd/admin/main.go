/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Command admin manages groups from the command line:
//
//	admin -config . group-create -title "Cats" -description "All about cats" [-slug cats]
//	admin -config . group-delete -slug cats
//	admin -config . group-list
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"yatube/internal"
	"yatube/internal/cache"
	"yatube/internal/data"
	"yatube/internal/nlog"
	"yatube/internal/service"
)

type stdoutLogger struct{}

func (stdoutLogger) Logf(format string, v ...any) {
	fmt.Printf(format+"\n", v...)
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: admin [-config dir] group-create|group-delete|group-list [flags]\n")
	os.Exit(2)
}

// openGroups wires the group service against the configured store. Group
// deletion must drop the shared feed cache when redis is configured.
func openGroups(ctx context.Context, cfg *internal.Config, logger nlog.Logger) (service.GroupService, func(), error) {
	db, err := data.OpenDatabase(cfg.DBDriver, cfg.DBName)
	if err != nil {
		return nil, nil, err
	}
	storage, err := data.NewStorageManager(db)
	if err != nil {
		return nil, nil, err
	}

	var responseCache cache.ResponseCache = cache.NewMemoryCache()
	closers := []io.Closer{storage}
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, "yatube:feed")
		if err != nil {
			storage.Close()
			return nil, nil, err
		}
		responseCache = redisCache
		closers = append(closers, redisCache)
	}

	feeds := service.NewFeedService(storage.GetPostRepository(), storage.GetGroupRepository(), storage.GetUserRepository(), storage.GetFollowRepository(), responseCache, cfg.CacheTTLDuration(), logger)
	groups := service.NewGroupService(storage.GetGroupRepository(), feeds, logger)
	return groups, func() {
		for _, c := range closers {
			c.Close()
		}
	}, nil
}

func runCommand(ctx context.Context, groups service.GroupService, out io.Writer, command string, args []string) error {
	switch command {
	case "group-create":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		title := fs.String("title", "", "group title")
		description := fs.String("description", "", "group description")
		slug := fs.String("slug", "", "url slug, derived from the title when empty")
		fs.Parse(args)

		group, err := groups.Create(ctx, *title, *description, *slug)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "created group %q at /group/%s/\n", group.Title, group.Slug)

	case "group-delete":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		slug := fs.String("slug", "", "slug of the group to delete")
		fs.Parse(args)

		if err := groups.Delete(ctx, *slug); err != nil {
			return err
		}
		fmt.Fprintf(out, "deleted group %s\n", *slug)

	case "group-list":
		list, err := groups.List(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SLUG\tTITLE\tDESCRIPTION")
		for _, g := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\n", g.Slug, g.Title, g.Description)
		}
		w.Flush()

	default:
		return fmt.Errorf("unknown command %q", command)
	}
	return nil
}

func main() {
	configDir := flag.String("config", ".", "folder holding the .cfg file and optional .env files")
	verbose := flag.Bool("v", false, "log every step")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
	}

	cfg, err := internal.LoadConfig(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not load configuration: %v\n", err)
		os.Exit(1)
	}

	var logger nlog.Logger = nlog.Discard{}
	if *verbose {
		logger = stdoutLogger{}
	}

	ctx := context.Background()
	groups, closeAll, err := openGroups(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer closeAll()

	if err := runCommand(ctx, groups, os.Stdout, flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		closeAll()
		os.Exit(1)
	}
}
