package browser

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/notwice/pkg/visibility"
)

const testFeed = `<!doctype html><html><body><main>
<article data-testid="tweet"><a href="/alice/status/100">1h</a><p>first</p></article>
<article data-testid="tweet"><a href="/bob/status/200">2h</a><p>second</p></article>
</main></body></html>`

// requires a local chrome, enabled with NOTWICE_CHROME_TEST=1
func TestSession_WithChrome(t *testing.T) {
	if os.Getenv("NOTWICE_CHROME_TEST") == "" {
		t.Skip("set NOTWICE_CHROME_TEST=1 to run browser tests")
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, testFeed)
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	s, err := Start(ctx, Config{StartURL: ts.URL + "/home", Headless: true, Timeout: 10 * time.Second})
	require.NoError(t, err)
	defer s.Close()

	loc, err := s.Location(ctx)
	require.NoError(t, err)
	assert.Equal(t, ts.URL+"/home", loc)

	items, err := s.PendingItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Contains(t, items[0].HTML, "/alice/status/100")

	require.NoError(t, s.MarkProcessed(ctx, items[0].Key))
	require.NoError(t, s.Hide(ctx, items[0].Key))
	items2, err := s.PendingItems(ctx)
	require.NoError(t, err)
	require.Len(t, items2, 1)
	assert.Equal(t, items[1].Key, items2[0].Key)

	require.NoError(t, s.Watch(ctx, items[1].Key))
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev := <-s.Events():
			if ev.Kind == visibility.EventIntersection {
				assert.Equal(t, items[1].Key, ev.Key)
				assert.GreaterOrEqual(t, ev.Ratio, 0.5)
				require.NoError(t, s.Unwatch(ctx, ev.Key))
				require.NoError(t, s.ResetProcessed(ctx))
				pending, err := s.PendingItems(ctx)
				require.NoError(t, err)
				assert.Len(t, pending, 2)
				require.ErrorIs(t, s.Hide(ctx, "missing"), ErrItemGone)
				require.NoError(t, s.Print(ctx, []string{"Total tracked posts: 0"}))
				return
			}
		case <-deadline:
			t.Fatal("no intersection event")
		}
	}
}
