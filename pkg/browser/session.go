// Package browser runs a Chromium tab through chromedp with the page bridge
// installed. Session implements the page side of feed classification and
// turns bridge notifications into controller events and console actions.
package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/inspector"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/go-pkgz/lgr"

	"github.com/umputun/notwice/pkg/visibility"
)

// defaults
const (
	DefaultStartURL      = "https://x.com/home"
	DefaultItemSelector  = `article[data-testid="tweet"]`
	DefaultProcessedAttr = "data-processed"
	DefaultTimeout       = 30 * time.Second
	defaultEventBuffer   = 256
)

// Config defines browser session parameters
type Config struct {
	StartURL      string
	Headless      bool
	ExecPath      string        // chrome binary, empty to look it up
	UserDataDir   string        // profile directory, keeps the login between runs
	Timeout       time.Duration // navigation and page command timeout
	ItemSelector  string
	ProcessedAttr string
	Threshold     float64
	EventBuffer   int
}

func (c Config) withDefaults() Config {
	if c.StartURL == "" {
		c.StartURL = DefaultStartURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.ItemSelector == "" {
		c.ItemSelector = DefaultItemSelector
	}
	if c.ProcessedAttr == "" {
		c.ProcessedAttr = DefaultProcessedAttr
	}
	if c.Threshold <= 0 || c.Threshold > 1 {
		c.Threshold = 0.5
	}
	if c.EventBuffer <= 0 {
		c.EventBuffer = defaultEventBuffer
	}
	return c
}

// Session is a running browser tab with the bridge installed
type Session struct {
	cfg         Config
	ctx         context.Context // chromedp tab context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc

	events   chan visibility.Event
	actions  chan Action
	done     chan struct{}
	doneOnce sync.Once
}

func newSession(cfg Config) *Session {
	cfg = cfg.withDefaults()
	return &Session{
		cfg:         cfg,
		ctx:         context.Background(),
		cancel:      func() {},
		allocCancel: func() {},
		events:      make(chan visibility.Event, cfg.EventBuffer),
		actions:     make(chan Action, 1),
		done:        make(chan struct{}),
	}
}

// Start launches the browser, installs the bridge for every new document and
// opens the start url
func Start(ctx context.Context, cfg Config) (*Session, error) {
	s := newSession(cfg)
	cfg = s.cfg

	script, err := renderScript(bridgeConfig{
		Binding:       bindingName,
		ItemSelector:  cfg.ItemSelector,
		ProcessedAttr: cfg.ProcessedAttr,
		KeyAttr:       keyAttr,
		Threshold:     cfg.Threshold,
	})
	if err != nil {
		return nil, err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.Flag("headless", cfg.Headless),
	)
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}
	if cfg.UserDataDir != "" {
		opts = append(opts, chromedp.UserDataDir(cfg.UserDataDir))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	tabCtx, cancel := chromedp.NewContext(allocCtx, chromedp.WithErrorf(func(format string, args ...any) {
		lgr.Printf("[DEBUG] chromedp: "+format, args...)
	}))
	s.ctx, s.cancel, s.allocCancel = tabCtx, cancel, allocCancel

	chromedp.ListenTarget(tabCtx, s.onTargetEvent)

	// the first run allocates the browser, it must use the tab context itself
	if err := chromedp.Run(tabCtx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("start browser: %w", err)
	}

	setupCtx, setupCancel := context.WithTimeout(tabCtx, cfg.Timeout)
	defer setupCancel()
	err = chromedp.Run(setupCtx,
		runtime.AddBinding(bindingName),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(script).Do(ctx)
			return err
		}),
		chromedp.Navigate(cfg.StartURL),
	)
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("open %s: %w", cfg.StartURL, err)
	}

	go func() {
		<-tabCtx.Done()
		s.finish()
	}()

	lgr.Printf("[INFO] browser started, url=%s, headless=%v, profile=%q", cfg.StartURL, cfg.Headless, cfg.UserDataDir)
	return s, nil
}

// Events returns page events for the controller
func (s *Session) Events() <-chan visibility.Event { return s.events }

// Actions returns console actions requested from the page
func (s *Session) Actions() <-chan Action { return s.actions }

// Done is closed when the tab is gone
func (s *Session) Done() <-chan struct{} { return s.done }

// Close shuts the browser down
func (s *Session) Close() error {
	err := chromedp.Cancel(s.ctx)
	s.cancel()
	s.allocCancel()
	s.finish()
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, chromedp.ErrInvalidContext) {
		return fmt.Errorf("close browser: %w", err)
	}
	return nil
}

func (s *Session) finish() {
	s.doneOnce.Do(func() { close(s.done) })
}

// onTargetEvent runs on the chromedp event goroutine and must not block
func (s *Session) onTargetEvent(ev any) {
	switch ev := ev.(type) {
	case *runtime.EventBindingCalled:
		if ev.Name != bindingName {
			return
		}
		s.dispatch(ev.Payload)
	case *inspector.EventDetached:
		lgr.Printf("[INFO] browser tab detached, %s", ev.Reason)
		s.finish()
	}
}

func (s *Session) dispatch(payload string) {
	msg, err := parseMessage(payload)
	if err != nil {
		lgr.Printf("[WARN] ignored bridge message: %v", err)
		return
	}

	switch msg.Type {
	case "mutation":
		// any later mutation triggers the same full scan
		select {
		case s.events <- visibility.Event{Kind: visibility.EventMutation, URL: msg.URL}:
		default:
			lgr.Printf("[DEBUG] event buffer full, mutation dropped")
		}
	case "intersection":
		ev := visibility.Event{Kind: visibility.EventIntersection, Key: msg.Key, Ratio: msg.Ratio}
		select {
		case s.events <- ev:
		default:
			go func() {
				select {
				case s.events <- ev:
				case <-s.done:
				}
			}()
		}
	case "action":
		select {
		case s.actions <- msg.Action:
		default:
			lgr.Printf("[WARN] console action %s ignored, previous action still running", msg.Action)
		}
	}
}
