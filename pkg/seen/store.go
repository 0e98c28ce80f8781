// Package seen keeps the ordered, capped set of content identifiers the user
// has already scrolled past. The in-memory list is authoritative for the session;
// every change is written through to the durable backend as one JSON blob.
package seen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/notwice/pkg/identity"
)

//go:generate moq -out mocks/kv.go -pkg mocks -skip-ensure -fmt goimports . KV Confirmer

// defaults
const (
	DefaultKey        = "seenPosts"
	DefaultMaxEntries = 100000
	DefaultBase       = "https://x.com"
	recentCount       = 10
)

// KV is a durable string-keyed blob store
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Confirmer asks the user a blocking yes/no question
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// Options configures a Store
type Options struct {
	Key           string // storage key holding the blob
	MaxEntries    int    // cap, oldest entries are dropped beyond it
	PermalinkBase string // base url for summary links
}

// Store is the seen-set. Safe for concurrent use.
type Store struct {
	kv   KV
	opts Options

	mu    sync.Mutex
	ids   []string
	index map[string]struct{}
}

// New makes an empty store, call Load to read persisted state
func New(kv KV, opts Options) *Store {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = DefaultMaxEntries
	}
	if opts.PermalinkBase == "" {
		opts.PermalinkBase = DefaultBase
	}
	return &Store{kv: kv, opts: opts, ids: []string{}, index: map[string]struct{}{}}
}

// Load reads the persisted blob and replaces in-memory state with it.
// Missing or malformed data results in an empty set, errors are logged only.
func (s *Store) Load(ctx context.Context) []string {
	ids := s.read(ctx)
	if len(ids) > s.opts.MaxEntries {
		lgr.Printf("[INFO] %d seen posts over the limit of %d, oldest dropped", len(ids)-s.opts.MaxEntries, s.opts.MaxEntries)
		ids = ids[len(ids)-s.opts.MaxEntries:]
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = ids
	s.index = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s.index[id] = struct{}{}
	}
	lgr.Printf("[DEBUG] loaded %d seen posts from %q", len(ids), s.opts.Key)
	return append([]string(nil), s.ids...)
}

func (s *Store) read(ctx context.Context) []string {
	blob, err := s.kv.Get(ctx, s.opts.Key)
	if err != nil {
		lgr.Printf("[WARN] error loading seen posts: %v", err)
		return []string{}
	}
	if strings.TrimSpace(blob) == "" {
		return []string{}
	}
	var ids []string
	if err := json.Unmarshal([]byte(blob), &ids); err != nil {
		lgr.Printf("[WARN] error loading seen posts, malformed data: %v", err)
		return []string{}
	}
	if ids == nil {
		return []string{}
	}
	return ids
}

// Contains reports whether id was recorded
func (s *Store) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.index[id]
	return ok
}

// Record appends id unless already present, trims to the cap and persists.
// Returns true if the set changed. Persist failures are logged, never returned.
func (s *Store) Record(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[id]; ok {
		return false
	}
	s.ids = append(s.ids, id)
	s.index[id] = struct{}{}

	if over := len(s.ids) - s.opts.MaxEntries; over > 0 {
		for _, dropped := range s.ids[:over] {
			delete(s.index, dropped)
		}
		s.ids = append([]string(nil), s.ids[over:]...)
	}

	if err := s.persist(ctx); err != nil {
		lgr.Printf("[WARN] error saving seen posts: %v", err)
	}
	return true
}

// persist writes the full list, must be called with lock held
func (s *Store) persist(ctx context.Context) error {
	blob, err := json.Marshal(s.ids)
	if err != nil {
		return fmt.Errorf("marshal seen posts: %w", err)
	}
	if err := s.kv.Set(ctx, s.opts.Key, string(blob)); err != nil {
		return fmt.Errorf("persist seen posts: %w", err)
	}
	return nil
}

// Clear removes all tracked posts after the confirmer agrees.
// Returns false without changes if declined. In-memory state is reset on
// confirmation even if deleting the persisted blob fails.
func (s *Store) Clear(ctx context.Context, confirm Confirmer) (bool, error) {
	ok, err := confirm.Confirm(ctx, "Are you sure you want to clear all tracked posts?")
	if err != nil {
		return false, fmt.Errorf("confirm clear: %w", err)
	}
	if !ok {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = []string{}
	s.index = map[string]struct{}{}
	if err := s.kv.Delete(ctx, s.opts.Key); err != nil {
		return true, fmt.Errorf("delete seen posts: %w", err)
	}
	lgr.Printf("[INFO] cleared all tracked posts")
	return true, nil
}

// Len returns the number of tracked posts
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// IDs returns a copy of tracked ids, oldest first
func (s *Store) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.ids...)
}

// Summarize reports count, storage footprint and the most recent posts
func (s *Store) Summarize() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := Summary{Total: len(s.ids), Recent: []string{}}
	if blob, err := json.Marshal(s.ids); err == nil {
		res.StorageBytes = len(blob)
	}
	for i := len(s.ids) - 1; i >= 0 && len(res.Recent) < recentCount; i-- {
		res.Recent = append(res.Recent, identity.Permalink(s.opts.PermalinkBase, s.ids[i]))
	}
	return res
}

// Summary is a human-oriented report of the seen-set
type Summary struct {
	Total        int      `json:"total"`
	StorageBytes int      `json:"storage_bytes"`
	Recent       []string `json:"recent"` // permalinks, newest first
}

// KiB returns the storage footprint in kibibytes
func (s Summary) KiB() float64 {
	return float64(s.StorageBytes) / 1024
}

// String renders the report the way the console action prints it
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total tracked posts: %d\n", s.Total)
	fmt.Fprintf(&b, "Storage used: %.2f KB\n", s.KiB())
	b.WriteString("Most recent posts:\n")
	for i, u := range s.Recent {
		fmt.Fprintf(&b, "%d. %s\n", i+1, u)
	}
	return b.String()
}
