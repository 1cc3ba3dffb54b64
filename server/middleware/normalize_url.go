// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"strings"
)

// NormalizeURL is a middleware that removes trailing slashes from URLs (except root).
//
// Only GET and HEAD requests are redirected; a redirected POST would lose its body.
func NormalizeURL(w http.ResponseWriter, r *http.Request, next http.Handler) {
	if hasTrailingSlash(r) && (r.Method == http.MethodGet || r.Method == http.MethodHead) {
		removeTrailingSlash(w, r)

		return
	}

	next.ServeHTTP(w, r)
}

// hasTrailingSlash checks if a request path has a trailing slash (except root).
func hasTrailingSlash(r *http.Request) bool {
	return r.URL.Path != "/" && strings.HasSuffix(r.URL.Path, "/")
}

// removeTrailingSlash removes trailing slashes and redirects.
func removeTrailingSlash(w http.ResponseWriter, r *http.Request) {
	target := *r.URL

	target.Path = strings.TrimRight(target.Path, "/")
	if target.Path == "" {
		target.Path = "/"
	}

	// Only the path and query are kept, so the redirect cannot leave this host.
	location := target.Path
	if target.RawQuery != "" {
		location += "?" + target.RawQuery
	}

	http.Redirect(w, r, location, http.StatusPermanentRedirect)
}
