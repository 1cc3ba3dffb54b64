// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package commondata

import (
	"context"
	"net/http"

	"codeberg.org/vabber/vabber/server/utils"
)

// PageCommonData holds common variables accessible in templates and handlers.
//
// It is automatically populated for each request and attached to the
// request_context.RequestContext.
//
// Usage:
//
//	rc := request_context.FromRequest(r)
//	cd := rc.CommonData
//	// Now you can access fields like cd.CurrentPath, cd.LoggedIn, etc.
type PageCommonData struct {
	// BaseURL is the origin URL (scheme + host) of the current request.
	BaseURL string

	// CurrentPath is the URL path from request (e.g., "/c/music").
	CurrentPath string

	// CurrentPathWithParams is the full request URI including query parameters.
	CurrentPathWithParams string

	// LoggedIn is true if the session carries a user.
	LoggedIn bool

	// Username of the logged-in user, empty otherwise.
	Username string

	// Queries is the URL query parameters (first value only for each key).
	Queries map[string]string

	// IsSecure is true if the request reached us over HTTPS.
	IsSecure bool
}

// UserLookup returns the logged-in user name for a request context.
type UserLookup func(ctx context.Context) (string, bool)

// PopulatePageCommonData fills the PageCommonData struct from the request.
func PopulatePageCommonData(r *http.Request, data *PageCommonData, lookupUser UserLookup) {
	data.BaseURL = utils.GetOriginFromRequest(r)
	data.CurrentPath = r.URL.Path
	data.CurrentPathWithParams = r.URL.RequestURI()
	data.IsSecure = utils.IsConnectionSecure(r)

	if lookupUser != nil {
		data.Username, data.LoggedIn = lookupUser(r.Context())
	}

	data.Queries = make(map[string]string)

	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			data.Queries[k] = v[0]
		}
	}
}
