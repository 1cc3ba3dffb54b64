// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"codeberg.org/vabber/vabber/config"
	"codeberg.org/vabber/vabber/i18n"
)

// PageProps describes a full HTML document.
type PageProps struct {
	// Title is prefixed to the application name in <title>.
	Title string
	Body  templ.Component
}

// Page wraps a body in the document shell with the shared stylesheets.
func Page(props PageProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}

		hw.raw(`<!DOCTYPE html><html lang="`)
		hw.text(i18n.HTMLLang(ctx))
		hw.raw(`"><head><meta charset="utf-8">`)
		hw.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		hw.raw(`<title>`)
		hw.text(pageTitle(props.Title))
		hw.raw(`</title>`)
		hw.raw(`<link rel="icon" type="image/svg+xml" href="` + assetURL("/img/favicon.svg") + `">`)
		hw.raw(`<link rel="stylesheet" href="` + assetURL("/css/utility.css") + `">`)
		hw.raw(`<link rel="stylesheet" href="` + assetURL("/css/app.css") + `">`)
		hw.raw(`</head><body class="m-0">`)
		hw.component(ctx, props.Body)
		hw.raw(`</body></html>`)

		return hw.err
	})
}

func pageTitle(title string) string {
	app := config.Global.Instance.AppName
	if app == "" {
		app = "Vabber"
	}

	if title == "" {
		return app
	}

	return title + " - " + app
}

// assetURL appends the per-start cache identifier so browsers refetch assets after a restart.
func assetURL(path string) string {
	if id := config.Global.Instance.FileServerCacheID; id != "" {
		return path + "?v=" + templ.EscapeString(id)
	}

	return path
}
