// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"net/http"
	"net/http/pprof"
	"runtime/trace"
	"strings"
	"time"

	"codeberg.org/vabber/vabber/assets"
	"codeberg.org/vabber/vabber/config"
	"codeberg.org/vabber/vabber/core/audit"
	"codeberg.org/vabber/vabber/server/middleware"
	"codeberg.org/vabber/vabber/server/routes"
)

// DefineRoutes sets up all the routes for the application.
func (router *Router) DefineRoutes() {
	fileServerHandler := fileServer()

	// Patterns ending in "/" are prefix matches.
	router.Handle("GET /img/", fileServerHandler)
	router.Handle("GET /css/", fileServerHandler)
	router.Handle("GET /public/", http.StripPrefix("/public", fileServerHandler))

	// Login routes
	router.HandleFunc("GET /login", middleware.CatchError(routes.LoginPage))
	router.HandleFunc("POST /login", middleware.CatchError(routes.LoginPOST))
	router.HandleFunc("POST /logout", middleware.CatchError(routes.LogoutPOST))

	// Pages behind login
	// /{$} matches only the root path
	router.HandleFunc("GET /{$}", middleware.CatchError(routes.IndexPage))
	router.HandleFunc("GET /c/{channel}", middleware.CatchError(routes.ChannelPage))
	router.HandleFunc("GET /about", middleware.CatchError(routes.AboutPage))
	router.HandleFunc("GET /faq", middleware.CatchError(routes.FAQPage))

	router.HandleFunc("GET /healthz", middleware.CatchError(routes.HealthCheck))

	if config.Global.Metrics.Enabled {
		router.Handle("GET /metrics", audit.MetricsHandler())
	}

	if config.Global.Development.InDevelopment {
		registerDebugRoutes(router)
	}

	// Everything else gets the themed 404 page.
	router.HandleFunc("/", middleware.CatchError(notFound))
}

func notFound(w http.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(http.StatusNotFound)

	return nil
}

// Serve static files from embedded assets.
func fileServer() http.HandlerFunc {
	fileServer := http.FileServer(http.FS(assets.FS))

	return func(w http.ResponseWriter, r *http.Request) {
		// Catalogues are embedded alongside the stylesheets but are not public,
		// and directories are never listed.
		if strings.HasPrefix(r.URL.Path, "/po/") || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)

			return
		}

		// Using a strong ETag for static files embedded via go:embed
		// ref: https://www.rfc-editor.org/rfc/rfc9110#weak.and.strong.validators
		//
		// Since go:embed requires rebuilding when files change, we use a per-instance
		// cache ID to ensure browsers fetch fresh content after any deployment.
		w.Header().Set("ETag", `"`+config.Global.Instance.FileServerCacheID+`"`)
		fileServer.ServeHTTP(w, r)
	}
}

var flightRecorder = trace.NewFlightRecorder(trace.FlightRecorderConfig{MinAge: time.Minute})

func registerDebugRoutes(router *Router) {
	// Already running when the routes are defined again, e.g. in tests.
	if !flightRecorder.Enabled() {
		if err := flightRecorder.Start(); err != nil {
			panic(err)
		}
	}

	router.HandleFunc("GET /debug/pprof/", pprof.Index)
	router.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	router.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	router.HandleFunc("GET /debug/pprof/trace", pprof.Trace)
	router.HandleFunc("GET /debug/flight", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = flightRecorder.WriteTo(w)
	})
}
