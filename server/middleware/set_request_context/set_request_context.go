// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package set_request_context

import (
	"net/http"

	"codeberg.org/vabber/vabber/server/middleware"
	"codeberg.org/vabber/vabber/server/request_context"
	"codeberg.org/vabber/vabber/server/template/commondata"
)

// WithRequestContext returns a middleware that attaches a RequestContext to each HTTP request.
//
// lookupUser fills the logged-in user; it may be nil.
func WithRequestContext(lookupUser commondata.UserLookup) middleware.Middleware {
	return func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		next.ServeHTTP(w, r.WithContext(request_context.WithRequestContext(r.Context(), r, lookupUser)))
	}
}
