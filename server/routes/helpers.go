// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"fmt"
	"net/http"
	"strings"

	"codeberg.org/vabber/vabber/config"
)

// stylesheets are preloaded on every full page.
var stylesheets = []string{"/css/utility.css", "/css/app.css"}

// makePreloadLink returns a Link header fragment to preload a resource with high priority.
//
// We return a string instead of writing the header immediately so we can merge everything into one Link header later.
func makePreloadLink(url, as string) string {
	return fmt.Sprintf("<%s>; rel=\"preload\"; as=\"%s\"; fetchpriority=\"high\"", url, as)
}

// preloadPageAssets writes a single Link header preloading the shared stylesheets.
func preloadPageAssets(w http.ResponseWriter) {
	links := make([]string, 0, len(stylesheets))

	for _, href := range stylesheets {
		if id := config.Global.Instance.FileServerCacheID; id != "" {
			href += "?v=" + id
		}

		links = append(links, makePreloadLink(href, "style"))
	}

	w.Header().Set("Link", strings.Join(links, ", "))
}

func noStore(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
}
