package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/go-pkgz/lgr"

	"github.com/umputun/notwice/pkg/visibility"
)

// ErrItemGone is returned when a feed item is no longer in the document
var ErrItemGone = errors.New("item is not in the document")

// Location returns the current page url
func (s *Session) Location(ctx context.Context) (string, error) {
	var loc string
	if err := s.eval(ctx, "window.location.href", &loc, s.cfg.Timeout); err != nil {
		return "", fmt.Errorf("get location: %w", err)
	}
	return loc, nil
}

// PendingItems returns feed items without the processed marker
func (s *Session) PendingItems(ctx context.Context) ([]visibility.FeedItem, error) {
	expr, err := call("pending")
	if err != nil {
		return nil, err
	}
	var items []visibility.FeedItem
	if err := s.eval(ctx, expr, &items, s.cfg.Timeout); err != nil {
		return nil, fmt.Errorf("get pending items: %w", err)
	}
	return items, nil
}

// ResetProcessed removes the processed marker from every element
func (s *Session) ResetProcessed(ctx context.Context) error {
	expr, err := call("reset")
	if err != nil {
		return err
	}
	var n int
	if err := s.eval(ctx, expr, &n, s.cfg.Timeout); err != nil {
		return fmt.Errorf("reset processed: %w", err)
	}
	lgr.Printf("[DEBUG] cleared processed marker on %d items", n)
	return nil
}

// MarkProcessed sets the processed marker on the item
func (s *Session) MarkProcessed(ctx context.Context, key string) error {
	return s.keyed(ctx, "mark", key)
}

// Hide collapses the item
func (s *Session) Hide(ctx context.Context, key string) error {
	return s.keyed(ctx, "hide", key)
}

// Watch starts reporting visibility of the item
func (s *Session) Watch(ctx context.Context, key string) error {
	return s.keyed(ctx, "watch", key)
}

// Unwatch stops reporting visibility of the item
func (s *Session) Unwatch(ctx context.Context, key string) error {
	return s.keyed(ctx, "unwatch", key)
}

// Print writes lines to the page console
func (s *Session) Print(ctx context.Context, lines []string) error {
	expr, err := call("print", lines)
	if err != nil {
		return err
	}
	var ok bool
	if err := s.eval(ctx, expr, &ok, s.cfg.Timeout); err != nil {
		return fmt.Errorf("print to console: %w", err)
	}
	return nil
}

// Confirm asks the user with a page dialog and waits for the answer
func (s *Session) Confirm(ctx context.Context, prompt string) (bool, error) {
	if s.cfg.Headless {
		return false, errors.New("confirmation dialog is not available in headless mode")
	}
	data, err := json.Marshal(prompt)
	if err != nil {
		return false, fmt.Errorf("marshal prompt: %w", err)
	}
	var ok bool
	if err := s.eval(ctx, fmt.Sprintf("window.confirm(%s)", data), &ok, 0); err != nil {
		return false, fmt.Errorf("confirm dialog: %w", err)
	}
	return ok, nil
}

func (s *Session) keyed(ctx context.Context, method, key string) error {
	expr, err := call(method, key)
	if err != nil {
		return err
	}
	var found bool
	if err := s.eval(ctx, expr, &found, s.cfg.Timeout); err != nil {
		return fmt.Errorf("%s item %s: %w", method, key, err)
	}
	if !found {
		return fmt.Errorf("%s item %s: %w", method, key, ErrItemGone)
	}
	return nil
}

// eval runs expr in the tab, bounded by timeout (0 for none) and by the caller's ctx
func (s *Session) eval(ctx context.Context, expr string, res any, timeout time.Duration) error {
	var runCtx context.Context
	var cancel context.CancelFunc
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(s.ctx, timeout)
	} else {
		runCtx, cancel = context.WithCancel(s.ctx)
	}
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, chromedp.Evaluate(expr, res))
}
