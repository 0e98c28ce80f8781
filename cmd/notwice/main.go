package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/notwice/pkg/browser"
	"github.com/umputun/notwice/pkg/config"
	"github.com/umputun/notwice/pkg/identity"
	"github.com/umputun/notwice/pkg/seen"
	"github.com/umputun/notwice/pkg/storage"
	"github.com/umputun/notwice/pkg/visibility"
	"github.com/umputun/notwice/server"
)

// Opts with all CLI options
type Opts struct {
	Config   string `short:"c" long:"config" env:"NOTWICE_CONFIG" description:"configuration file, built-in defaults if empty"`
	Show     bool   `long:"show" description:"print tracked posts summary and exit"`
	Clear    bool   `long:"clear" description:"clear all tracked posts and exit"`
	Headless bool   `long:"headless" env:"NOTWICE_HEADLESS" description:"run chrome without a window"`
	URL      string `short:"u" long:"url" env:"NOTWICE_URL" description:"start url, overrides config"`
	Listen   string `short:"l" long:"listen" env:"NOTWICE_LISTEN" description:"operator api listen address, overrides config"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts, os.Stdin, os.Stdout)
	cancel()
	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

// run loads configuration and the seen posts, then either performs an operator
// action (show, clear) or watches the timeline until ctx is done or the browser is closed
func run(ctx context.Context, opts Opts, in io.Reader, out io.Writer) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyOverrides(cfg, opts)

	if err := makeStateDirs(cfg); err != nil {
		return fmt.Errorf("failed to prepare state directory: %w", err)
	}

	backend, err := storage.Open(ctx, storageConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Printf("[WARN] failed to close storage: %v", err)
		}
	}()

	store := seen.New(backend, seen.Options{
		Key:           cfg.Seen.StorageKey,
		MaxEntries:    cfg.Seen.MaxEntries,
		PermalinkBase: cfg.Feed.PermalinkBase,
	})
	store.Load(ctx)

	switch {
	case opts.Show:
		printSummary(out, store.Summarize())
		return nil
	case opts.Clear:
		return clearSeen(ctx, store, promptConfirmer{in: in, out: out}, out)
	}

	log.Printf("[INFO] starting notwice %s, tracked posts: %d", revision, store.Len())
	return watch(ctx, cfg, store, opts.Debug)
}

// watch runs the browser session, the controller, console actions and the optional api server
func watch(ctx context.Context, cfg *config.Config, store *seen.Store, debug bool) error {
	sess, err := browser.Start(ctx, browser.Config{
		StartURL:      cfg.Browser.StartURL,
		Headless:      cfg.Browser.Headless,
		ExecPath:      cfg.Browser.ExecPath,
		UserDataDir:   cfg.Browser.UserDataDir,
		Timeout:       cfg.Browser.Timeout,
		ItemSelector:  cfg.Feed.ItemSelector,
		ProcessedAttr: cfg.Feed.ProcessedAttr,
		Threshold:     cfg.Feed.VisibilityThreshold,
	})
	if err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer func() {
		if err := sess.Close(); err != nil {
			log.Printf("[WARN] %v", err)
		}
	}()
	log.Printf("[INFO] type xNotTwice.show() in the page console to see tracked posts or xNotTwice.clear() to clear them")

	ctrl := visibility.NewController(sess, store, identity.New(), visibility.Options{
		Threshold: cfg.Feed.VisibilityThreshold,
		Debounce:  cfg.Feed.Debounce,
		Timeline: visibility.TimelineMatcher{
			Paths:    cfg.Feed.TimelinePaths,
			Suffixes: cfg.Feed.TimelineSuffixes,
		},
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return ctrl.Run(gctx, sess.Events()) })
	g.Go(func() error { return handleActions(gctx, sess, store) })
	g.Go(func() error {
		select {
		case <-sess.Done():
			log.Printf("[INFO] browser closed")
			cancel()
		case <-gctx.Done():
		}
		return nil
	})
	if cfg.Server.Listen != "" {
		srv := server.New(cfg, store, revision, debug)
		g.Go(func() error { return srv.Run(gctx) })
	}

	err = g.Wait()

	st := ctrl.Stats()
	log.Printf("[INFO] session stats: passes=%d, hidden=%d, watched=%d, recorded=%d, skipped=%d, route changes=%d, tracked=%d",
		st.Passes, st.Hidden, st.Watched, st.Recorded, st.Skipped, st.RouteChanges, store.Len())
	return err
}

// console is the page side of operator actions
type console interface {
	Actions() <-chan browser.Action
	Print(ctx context.Context, lines []string) error
	Confirm(ctx context.Context, prompt string) (bool, error)
}

type summaryClearer interface {
	Summarize() seen.Summary
	Clear(ctx context.Context, c seen.Confirmer) (bool, error)
}

// handleActions serves xNotTwice.show() and xNotTwice.clear() called in the page console
func handleActions(ctx context.Context, c console, store summaryClearer) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case action := <-c.Actions():
			var lines []string
			switch action {
			case browser.ActionShow:
				lines = strings.Split(strings.TrimRight(store.Summarize().String(), "\n"), "\n")
			case browser.ActionClear:
				cleared, err := store.Clear(ctx, c)
				switch {
				case err != nil:
					log.Printf("[WARN] failed to clear tracked posts: %v", err)
					lines = []string{"Error clearing tracked posts: " + err.Error()}
				case cleared:
					log.Printf("[INFO] cleared all tracked posts from page console")
					lines = []string{"Cleared all tracked posts"}
				}
			}
			if len(lines) == 0 {
				continue
			}
			if err := c.Print(ctx, lines); err != nil {
				log.Printf("[WARN] can't print to page console: %v", err)
			}
		}
	}
}

// printSummary writes the tracked posts report for --show
func printSummary(out io.Writer, sum seen.Summary) {
	bold := color.New(color.Bold)
	link := color.New(color.FgCyan)
	_, _ = bold.Fprintf(out, "Total tracked posts: %d\n", sum.Total)
	_, _ = fmt.Fprintf(out, "Storage used: %.2f KB\n", sum.KiB())
	_, _ = bold.Fprintln(out, "Most recent posts:")
	for i, u := range sum.Recent {
		_, _ = fmt.Fprintf(out, "%d. %s\n", i+1, link.Sprint(u))
	}
}

// clearSeen implements --clear
func clearSeen(ctx context.Context, store summaryClearer, confirm seen.Confirmer, out io.Writer) error {
	cleared, err := store.Clear(ctx, confirm)
	if err != nil {
		return fmt.Errorf("failed to clear tracked posts: %w", err)
	}
	if !cleared {
		_, _ = fmt.Fprintln(out, "Nothing cleared")
		return nil
	}
	_, _ = fmt.Fprintln(out, "Cleared all tracked posts")
	return nil
}

// promptConfirmer asks a y/N question on the terminal
type promptConfirmer struct {
	in  io.Reader
	out io.Writer
}

// Confirm implements seen.Confirmer, anything but y or yes is a decline
func (p promptConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	_, _ = fmt.Fprintf(p.out, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func applyOverrides(cfg *config.Config, opts Opts) {
	if opts.Headless {
		cfg.Browser.Headless = true
	}
	if opts.URL != "" {
		cfg.Browser.StartURL = opts.URL
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
}

func storageConfig(cfg *config.Config) storage.Config {
	return storage.Config{
		Type:            storage.Type(cfg.Storage.Type),
		DSN:             cfg.Storage.DSN,
		MaxOpenConns:    cfg.Storage.MaxOpenConns,
		MaxIdleConns:    cfg.Storage.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Storage.ConnMaxLifetime) * time.Second,
		Redis: storage.RedisConfig{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
			Prefix:   cfg.Storage.Redis.Prefix,
		},
	}
}

// makeStateDirs creates directories for the sqlite file and the chrome profile
func makeStateDirs(cfg *config.Config) error {
	dirs := []string{cfg.Browser.UserDataDir}
	if cfg.Storage.Type == string(storage.TypeSQLite) {
		if path := sqlitePath(cfg.Storage.DSN); path != "" {
			dirs = append(dirs, filepath.Dir(path))
		}
	}
	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("make %s: %w", dir, err)
		}
	}
	return nil
}

// sqlitePath extracts the file path from a sqlite dsn, empty for in-memory databases
func sqlitePath(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return ""
	}
	return path
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
