// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"math"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"codeberg.org/vabber/vabber/config"
)

// Options configures a Limiter.
type Options struct {
	// PerMinute is the sustained number of requests per client and minute.
	PerMinute int
	Burst     int
	// TTL is how long an idle client bucket is kept.
	TTL time.Duration
	// PassIPs lists addresses or CIDRs that are never limited.
	PassIPs []string
}

// OptionsFromConfig reads Options from config.Global.Limiter.
func OptionsFromConfig() Options {
	return Options{
		PerMinute: config.Global.Limiter.PerMin,
		Burst:     config.Global.Limiter.Burst,
		TTL:       config.Global.Limiter.TTL,
		PassIPs:   config.Global.Limiter.PassIPs,
	}
}

// Limiter hands out one token bucket per client network.
type Limiter struct {
	opts    Options
	limit   rate.Limit
	buckets *cache.Cache
	// mu serialises bucket creation so concurrent first requests share one bucket.
	mu sync.Mutex

	// now is replaced in tests.
	now func() time.Time
}

// New returns a Limiter. Non-positive rates and bursts are raised to one.
func New(opts Options) *Limiter {
	if opts.PerMinute < 1 {
		opts.PerMinute = 1
	}

	if opts.Burst < 1 {
		opts.Burst = 1
	}

	if opts.TTL <= 0 {
		opts.TTL = 10 * time.Minute
	}

	return &Limiter{
		opts:    opts,
		limit:   rate.Every(time.Minute / time.Duration(opts.PerMinute)),
		buckets: cache.New(opts.TTL, opts.TTL),
		now:     time.Now,
	}
}

// Allow consumes a token for key.
//
// When the bucket is empty it returns false and the time until the next token.
func (l *Limiter) Allow(key string) (bool, time.Duration) {
	bucket := l.bucket(key)
	now := l.now()

	reservation := bucket.ReserveN(now, 1)
	if !reservation.OK() {
		return false, time.Minute
	}

	delay := reservation.DelayFrom(now)
	if delay > 0 {
		reservation.CancelAt(now)

		return false, delay
	}

	return true, 0
}

// Remaining returns the whole tokens currently left for key.
func (l *Limiter) Remaining(key string) int {
	tokens := l.bucket(key).TokensAt(l.now())
	if tokens < 0 {
		return 0
	}

	return int(math.Floor(tokens))
}

// Clients returns the number of tracked client buckets.
func (l *Limiter) Clients() int {
	return l.buckets.ItemCount()
}

// bucket returns the bucket for key, creating it on first use.
// Every access restarts the bucket's expiry.
func (l *Limiter) bucket(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if v, found := l.buckets.Get(key); found {
		if b, ok := v.(*rate.Limiter); ok {
			l.buckets.SetDefault(key, b)

			return b
		}
	}

	b := rate.NewLimiter(l.limit, l.opts.Burst)
	l.buckets.SetDefault(key, b)

	return b
}
