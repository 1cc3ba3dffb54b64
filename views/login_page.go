// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"codeberg.org/vabber/vabber/i18n"
)

// LoginPageData is the data used to render the login page.
type LoginPageData struct {
	// Error is shown above the login view when non-empty.
	Error string
	View  *LoginView
}

// LoginPage renders the sign-in document around data.View.
func LoginPage(data LoginPageData) templ.Component {
	view := data.View
	if view == nil {
		view = NewLoginView()
	}

	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}

		if data.Error != "" {
			hw.raw(`<div class="login-error" role="alert">`)
			hw.text(data.Error)
			hw.raw(`</div>`)
		}

		hw.component(ctx, view)

		return hw.err
	})

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return Page(PageProps{Title: i18n.Tr(ctx, "Sign in"), Body: body}).Render(ctx, w)
	})
}
