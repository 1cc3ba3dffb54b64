// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

func newTestLimiter(perMin, burst int) (*Limiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}

	l := New(Options{PerMinute: perMin, Burst: burst, TTL: time.Hour, PassIPs: []string{"10.9.0.0/16"}})
	l.now = clock.Now

	return l, clock
}

func TestAllowBurstThenRefill(t *testing.T) {
	t.Parallel()

	l, clock := newTestLimiter(6, 3)

	for i := range 3 {
		ok, _ := l.Allow("a")
		require.True(t, ok, "request %d within burst", i)
	}

	ok, retry := l.Allow("a")
	assert.False(t, ok)
	assert.InDelta(t, 10, retry.Seconds(), 0.01)
	assert.Equal(t, 0, l.Remaining("a"))

	// a denied request does not consume a token
	clock.Advance(10 * time.Second)

	ok, _ = l.Allow("a")
	assert.True(t, ok)

	ok, _ = l.Allow("a")
	assert.False(t, ok)
}

func TestAllowSeparatesClients(t *testing.T) {
	t.Parallel()

	l, _ := newTestLimiter(1, 1)

	ok, _ := l.Allow("a")
	require.True(t, ok)

	ok, _ = l.Allow("a")
	require.False(t, ok)

	ok, _ = l.Allow("b")
	assert.True(t, ok)
	assert.Equal(t, 2, l.Clients())
}

func TestNewClampsOptions(t *testing.T) {
	t.Parallel()

	l := New(Options{})
	assert.Equal(t, 1, l.opts.PerMinute)
	assert.Equal(t, 1, l.opts.Burst)
	assert.Equal(t, 10*time.Minute, l.opts.TTL)
}

func serve(l *Limiter, method, target, remoteAddr string) *httptest.ResponseRecorder {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusSeeOther)
	})

	req := httptest.NewRequest(method, target, strings.NewReader("username=a&password=b"))
	req.RemoteAddr = remoteAddr

	rec := httptest.NewRecorder()
	l.Evaluate(rec, req, next)

	return rec
}

func TestEvaluateLimitsLoginPosts(t *testing.T) {
	t.Parallel()

	l, _ := newTestLimiter(1, 2)

	for range 2 {
		rec := serve(l, http.MethodPost, "/login", "203.0.113.1:1000")
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "2", rec.Header().Get(HeaderRateLimitLimit))
	}

	rec := serve(l, http.MethodPost, "/login", "203.0.113.1:1001")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Equal(t, "0", rec.Header().Get(HeaderRateLimitRemaining))
	assert.Contains(t, rec.Body.String(), "Too many login attempts")
	assert.Contains(t, rec.Body.String(), "<login-view>")

	// another client is unaffected
	rec = serve(l, http.MethodPost, "/login", "198.51.100.1:1000")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestEvaluateIgnoresOtherRoutes(t *testing.T) {
	t.Parallel()

	l, _ := newTestLimiter(1, 1)

	for range 5 {
		assert.Equal(t, http.StatusSeeOther, serve(l, http.MethodGet, "/login", "203.0.113.1:1000").Code)
		assert.Equal(t, http.StatusSeeOther, serve(l, http.MethodPost, "/logout", "203.0.113.1:1000").Code)
	}

	assert.Equal(t, 0, l.Clients())
}

func TestEvaluateSkipsPassListedClients(t *testing.T) {
	t.Parallel()

	l, _ := newTestLimiter(1, 1)

	for range 5 {
		assert.Equal(t, http.StatusSeeOther, serve(l, http.MethodPost, "/login", "10.9.1.2:1000").Code)
	}
}
