package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractor_FromHTML(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		wantID string
		wantOK bool
	}{
		{
			name: "direct link before quoted link",
			markup: `<article data-testid="tweet">
				<a href="/alice/status/12345">3h</a>
				<div role="link"><a href="/bob/status/99999">quoted</a></div>
			</article>`,
			wantID: "12345", wantOK: true,
		},
		{
			name:   "absolute href",
			markup: `<article><a href="https://x.com/alice/status/777">now</a></article>`,
			wantID: "777", wantOK: true,
		},
		{
			name: "query links skipped",
			markup: `<article>
				<a href="/alice/status/111?ref=share">share</a>
				<a href="/alice/status/222">3h</a>
			</article>`,
			wantID: "222", wantOK: true,
		},
		{
			name:   "photo link counts as direct",
			markup: `<article><a href="/alice/status/333/photo/1">img</a></article>`,
			wantID: "333", wantOK: true,
		},
		{
			name:   "analytics link without digits",
			markup: `<article><a href="/alice/status/">broken</a><a href="/alice">profile</a></article>`,
			wantOK: false,
		},
		{
			name:   "no links",
			markup: `<article><span>promoted</span></article>`,
			wantOK: false,
		},
		{
			name:   "empty markup",
			markup: "  ",
			wantOK: false,
		},
	}

	e := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := e.FromHTML(tt.markup)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestExtractor_FromHrefs(t *testing.T) {
	e := New()

	id, ok := e.FromHrefs([]string{"/home", "/alice/status/12345", "/bob/status/99999"})
	assert.True(t, ok)
	assert.Equal(t, "12345", id)

	id, ok = e.FromHrefs([]string{"https://x.com/i/web/status/777"})
	assert.True(t, ok, "multi-segment owner")
	assert.Equal(t, "777", id)

	id, ok = e.FromHrefs([]string{"/i/status/888/photo/1"})
	assert.True(t, ok)
	assert.Equal(t, "888", id)

	id, ok = e.FromHrefs([]string{"/alice/status/5/status/6"})
	assert.True(t, ok, "first status segment wins")
	assert.Equal(t, "5", id)

	_, ok = e.FromHrefs([]string{"/status/1", "/alice/status/", "/i/web/status/12a"})
	assert.False(t, ok)

	_, ok = e.FromHrefs([]string{"/explore", "/bob/statuses/1"})
	assert.False(t, ok)

	_, ok = e.FromHrefs(nil)
	assert.False(t, ok)
}

func TestPermalink(t *testing.T) {
	assert.Equal(t, "https://x.com/i/status/42", Permalink("https://x.com", "42"))
	assert.Equal(t, "https://x.com/i/status/42", Permalink("https://x.com/", "42"))
}

func TestIsID(t *testing.T) {
	assert.True(t, IsID("1234567890"))
	assert.False(t, IsID(""))
	assert.False(t, IsID("12a4"))
	assert.False(t, IsID("-1"))
}
