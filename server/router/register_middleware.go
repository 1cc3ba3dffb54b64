// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"codeberg.org/vabber/vabber/config"
	"codeberg.org/vabber/vabber/core/session"
	"codeberg.org/vabber/vabber/server/middleware"
	"codeberg.org/vabber/vabber/server/middleware/limiter"
	"codeberg.org/vabber/vabber/server/middleware/set_request_context"
	"codeberg.org/vabber/vabber/server/routes"
)

// RegisterMiddleware installs the middleware chain. lim may be nil when the
// limiter is disabled.
func (router *Router) RegisterMiddleware(sessions *session.Manager, lim *limiter.Limiter) {
	// the first middleware is the most outer / first executed one
	router.Use(middleware.WithServerTiming)
	router.Use(middleware.NormalizeURL) // handle trailing slashes

	if config.Global.Response.Compression {
		router.Use(middleware.Compress)
	}

	router.Use(middleware.FromHandler(sessions.LoadAndSave))                   // the request context reads the user
	router.Use(set_request_context.WithRequestContext(routes.CurrentUsername)) // needed for everything else
	router.Use(middleware.SetResponseHeaders)                                  // all pages need this

	if lim != nil {
		router.Use(lim.Evaluate)
	}
}
