// Package visibility classifies rendered feed items: items already seen are
// collapsed right away, unseen items are watched until they are visible enough
// to count as seen, then recorded. All controller state is owned by the
// goroutine running Run, events are handled one at a time.
package visibility

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
)

//go:generate moq -out mocks/page.go -pkg mocks -skip-ensure -fmt goimports . Page SeenSet

// IntersectionObserver may report a ratio a hair under the threshold it just crossed
const ratioTolerance = 0.001

// FeedItem is a rendered feed item not yet classified in the current route
type FeedItem struct {
	Key  string `json:"key"`  // page-assigned handle of the element
	HTML string `json:"html"` // outer markup of the element
}

// Page is the host page as seen by the controller
type Page interface {
	Location(ctx context.Context) (string, error)
	PendingItems(ctx context.Context) ([]FeedItem, error)
	ResetProcessed(ctx context.Context) error
	MarkProcessed(ctx context.Context, key string) error
	Hide(ctx context.Context, key string) error
	Watch(ctx context.Context, key string) error
	Unwatch(ctx context.Context, key string) error
}

// SeenSet is the subset of the seen store used for classification
type SeenSet interface {
	Contains(id string) bool
	Record(ctx context.Context, id string) bool
}

// Extractor derives a content id from item markup
type Extractor interface {
	FromHTML(markup string) (string, bool)
}

// EventKind enumerates page events
type EventKind int

// event kinds
const (
	EventMutation EventKind = iota
	EventIntersection
)

func (k EventKind) String() string {
	switch k {
	case EventMutation:
		return "mutation"
	case EventIntersection:
		return "intersection"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Event is a notification from the page
type Event struct {
	Kind  EventKind
	URL   string  // location at the time of a mutation
	Key   string  // item handle for intersections
	Ratio float64 // visible fraction for intersections
}

// Options configures a Controller
type Options struct {
	Threshold float64       // visible fraction to count an item as seen
	Debounce  time.Duration // coalescing window for mutation-triggered passes, 0 for immediate
	Timeline  TimelineMatcher
}

// Stats counts controller activity
type Stats struct {
	Passes       int
	Hidden       int
	Watched      int
	Recorded     int
	Skipped      int
	RouteChanges int
}

// Controller drives classification of feed items
type Controller struct {
	page      Page
	seen      SeenSet
	extractor Extractor
	opts      Options

	lastURL string
	watched map[string]string // item key -> content id
	stats   Stats
}

// NewController makes a controller, zero threshold defaults to 0.5
func NewController(page Page, seen SeenSet, extractor Extractor, opts Options) *Controller {
	if opts.Threshold <= 0 || opts.Threshold > 1 {
		opts.Threshold = 0.5
	}
	if len(opts.Timeline.Paths) == 0 && len(opts.Timeline.Suffixes) == 0 {
		opts.Timeline = DefaultTimeline()
	}
	return &Controller{
		page:      page,
		seen:      seen,
		extractor: extractor,
		opts:      opts,
		watched:   map[string]string{},
	}
}

// Run reads the current location, makes the initial pass and then handles events
// until ctx is done or events is closed. Mutations arriving within the debounce
// window are coalesced into one pass.
func (c *Controller) Run(ctx context.Context, events <-chan Event) error {
	if loc, err := c.page.Location(ctx); err != nil {
		lgr.Printf("[WARN] can't get page location: %v", err)
	} else {
		c.lastURL = loc
	}
	c.reconcile(ctx)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case ev, ok := <-events:
			if !ok {
				timer.Stop()
				return nil
			}
			switch ev.Kind {
			case EventMutation:
				c.HandleMutation(ctx, ev.URL)
				if c.opts.Debounce <= 0 {
					c.reconcile(ctx)
					continue
				}
				if !pending {
					timer.Reset(c.opts.Debounce)
					pending = true
				}
			case EventIntersection:
				c.HandleIntersection(ctx, ev.Key, ev.Ratio)
			default:
				lgr.Printf("[DEBUG] ignored event %s", ev.Kind)
			}
		case <-timer.C:
			pending = false
			c.reconcile(ctx)
		}
	}
}

func (c *Controller) reconcile(ctx context.Context) {
	if err := c.Reconcile(ctx); err != nil {
		lgr.Printf("[WARN] reconcile failed: %v", err)
	}
}

// HandleMutation tracks the location, clearing processed markers when the route changed.
// Locations of embedded documents (about:blank, srcdoc, blob, data) are never a route.
func (c *Controller) HandleMutation(ctx context.Context, location string) {
	if location == "" || location == c.lastURL || embeddedLocation(location) {
		return
	}
	lgr.Printf("[DEBUG] route changed %q -> %q", c.lastURL, location)
	c.lastURL = location
	c.stats.RouteChanges++
	if err := c.page.ResetProcessed(ctx); err != nil {
		lgr.Printf("[WARN] can't reset processed items: %v", err)
	}
}

func embeddedLocation(location string) bool {
	switch {
	case strings.HasPrefix(location, "about:"), strings.HasPrefix(location, "blob:"),
		strings.HasPrefix(location, "data:"), strings.HasPrefix(location, "javascript:"):
		return true
	}
	return false
}

// Reconcile classifies every item not yet processed in the current route.
// Does nothing outside timeline views or before the location is known.
func (c *Controller) Reconcile(ctx context.Context) error {
	if c.lastURL == "" || !c.opts.Timeline.Match(c.lastURL) {
		return nil
	}
	c.stats.Passes++

	items, err := c.page.PendingItems(ctx)
	if err != nil {
		return fmt.Errorf("list pending items: %w", err)
	}

	for _, item := range items {
		id, ok := c.extractor.FromHTML(item.HTML)
		if !ok {
			c.stats.Skipped++
			continue
		}

		if err := c.page.MarkProcessed(ctx, item.Key); err != nil {
			lgr.Printf("[WARN] can't mark item %s: %v", item.Key, err)
			continue
		}

		if c.seen.Contains(id) {
			delete(c.watched, item.Key)
			if err := c.page.Hide(ctx, item.Key); err != nil {
				lgr.Printf("[WARN] can't hide post %s: %v", id, err)
				continue
			}
			c.stats.Hidden++
			continue
		}

		if err := c.page.Watch(ctx, item.Key); err != nil {
			lgr.Printf("[WARN] can't watch post %s: %v", id, err)
			continue
		}
		c.watched[item.Key] = id
		c.stats.Watched++
	}
	return nil
}

// HandleIntersection records a watched item once its visible ratio reaches the
// threshold and stops watching it. Later reports for the same item are ignored.
func (c *Controller) HandleIntersection(ctx context.Context, key string, ratio float64) {
	id, ok := c.watched[key]
	if !ok {
		return
	}
	if ratio+ratioTolerance < c.opts.Threshold {
		return
	}

	delete(c.watched, key)
	if c.seen.Record(ctx, id) {
		c.stats.Recorded++
		lgr.Printf("[DEBUG] seen post %s", id)
	}
	if err := c.page.Unwatch(ctx, key); err != nil {
		lgr.Printf("[WARN] can't unwatch item %s: %v", key, err)
	}
}

// Watching returns the number of items currently watched
func (c *Controller) Watching() int {
	return len(c.watched)
}

// Stats returns activity counters, read it only after Run returned
func (c *Controller) Stats() Stats {
	return c.stats
}
