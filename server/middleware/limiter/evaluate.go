// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"codeberg.org/vabber/vabber/core/audit"
	"codeberg.org/vabber/vabber/i18n"
	"codeberg.org/vabber/vabber/views"
)

// Rate limiting header names.
//
// ref: https://www.ietf.org/archive/id/draft-polli-ratelimit-headers-02.html
const (
	HeaderRateLimitLimit     = "RateLimit-Limit"
	HeaderRateLimitRemaining = "RateLimit-Remaining"
	HeaderRateLimitReset     = "RateLimit-Reset"
)

// guardedRoutes are the "METHOD /path" pairs the limiter applies to.
var guardedRoutes = map[string]bool{
	http.MethodPost + " /login": true,
}

func isGuarded(r *http.Request) bool {
	return guardedRoutes[r.Method+" "+r.URL.Path]
}

// Evaluate is the limiter middleware.
//
// Requests to guarded routes consume a token from the client's bucket.
// Clients out of tokens get the login page back with status 429.
func (l *Limiter) Evaluate(w http.ResponseWriter, r *http.Request, next http.Handler) {
	if !isGuarded(r) {
		next.ServeHTTP(w, r)

		return
	}

	key, ip := clientKey(r)
	if ip != nil && ipMatchesList(ip, l.opts.PassIPs) {
		next.ServeHTTP(w, r)

		return
	}

	allowed, retryAfter := l.Allow(key)

	w.Header().Set(HeaderRateLimitLimit, strconv.Itoa(l.opts.Burst))
	w.Header().Set(HeaderRateLimitRemaining, strconv.Itoa(l.Remaining(key)))

	if allowed {
		next.ServeHTTP(w, r)

		return
	}

	seconds := strconv.Itoa(max(1, int(retryAfter.Round(time.Second)/time.Second)))

	log.Warn().
		Str("network", key).
		Dur("retry_after", retryAfter).
		Msg("Login rate limit exceeded")

	audit.RecordLogin(audit.LoginLimited)

	tooManyRequests(w, r, seconds)
}

func tooManyRequests(w http.ResponseWriter, r *http.Request, retryAfterSeconds string) {
	w.Header().Set("Retry-After", retryAfterSeconds)
	w.Header().Set(HeaderRateLimitReset, retryAfterSeconds)
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusTooManyRequests)

	page := views.LoginPage(views.LoginPageData{
		Error: i18n.Tr(r.Context(), "Too many login attempts. Try again in a minute."),
	})

	if err := page.Render(r.Context(), w); err != nil {
		log.Err(err).Msg("Failed to render rate limit page")
	}
}
