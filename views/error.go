// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"codeberg.org/vabber/vabber/i18n"
)

// ErrorPageData is the data used to render the error page.
type ErrorPageData struct {
	StatusCode int
	// Message is shown below the heading. Leave empty to hide internals from users.
	Message   string
	RequestID string
}

// ErrorPage renders a standalone error document.
func ErrorPage(data ErrorPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := i18n.Tr(ctx, "Something went wrong")
		if data.StatusCode == http.StatusNotFound {
			title = i18n.Tr(ctx, "Page not found")
		}

		body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			hw := &htmlWriter{w: w}

			hw.raw(`<main class="flex flex-col items-center justify-center p-m">`)
			hw.raw(`<h1 class="text-l">`)
			hw.text(strconv.Itoa(data.StatusCode))
			hw.raw(` `)
			hw.text(title)
			hw.raw(`</h1>`)

			if data.Message != "" {
				hw.raw(`<p>`)
				hw.text(data.Message)
				hw.raw(`</p>`)
			}

			if data.RequestID != "" {
				hw.raw(`<p class="text-s text-secondary">Request ID: <code>`)
				hw.text(data.RequestID)
				hw.raw(`</code></p>`)
			}

			hw.raw(`<a href="/">`)
			hw.text(i18n.Tr(ctx, "Back to start"))
			hw.raw(`</a></main>`)

			return hw.err
		})

		return Page(PageProps{Title: title, Body: body}).Render(ctx, w)
	})
}
