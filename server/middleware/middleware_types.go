// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import "net/http"

type Middleware func(w http.ResponseWriter, r *http.Request, next http.Handler)

func Wrap(m Middleware, next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m(w, r, next)
	}
}

// FromHandler adapts a standard handler-wrapping function, such as a
// library's middleware constructor, to a Middleware.
func FromHandler(wrap func(http.Handler) http.Handler) Middleware {
	return func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		wrap(next).ServeHTTP(w, r)
	}
}
