// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"codeberg.org/vabber/vabber/config"
	"codeberg.org/vabber/vabber/i18n"
	"codeberg.org/vabber/vabber/views/element"
)

// LoginViewTag is the custom element name of LoginView.
const LoginViewTag = "login-view"

// Photo credit for the login background image.
const (
	imageAuthor = "Wegdekstreepje"
	imageURL    = "https://flickr.com/photos/wrack/28987657184"
)

// LoginView is the login screen.
//
// It renders into the light DOM so page-wide utility classes style it.
// The form posts username and password to the relative URL "login".
type LoginView struct {
	element.Base

	// Label is exposed as the host's label attribute. It does not change the content.
	Label *string
}

// NewLoginView returns a LoginView with no label.
func NewLoginView() *LoginView {
	return &LoginView{}
}

func (v *LoginView) Tag() string { return LoginViewTag }

func (v *LoginView) RenderRoot() element.RenderRoot { return element.LightRoot }

func (v *LoginView) HostAttributes() []element.Attr {
	if v.Label == nil {
		return nil
	}

	return []element.Attr{{Name: "label", Value: *v.Label}}
}

func (v *LoginView) ConnectedCallback(h *element.Host) {
	v.Base.ConnectedCallback(h)
}

// ButtonPressed handles clicks on the styled submit button. It does nothing.
func (v *LoginView) ButtonPressed(_ context.Context, _ element.Event) error {
	return nil
}

func (v *LoginView) Listeners() map[string]element.Listener {
	return map[string]element.Listener{
		"click": v.ButtonPressed,
	}
}

// Render writes the host tag and its content.
func (v *LoginView) Render(ctx context.Context, w io.Writer) error {
	return element.Render(v).Render(ctx, w)
}

func (v *LoginView) Content() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}

		hw.raw(`<div class="flex flex-grow login-view-wrapper items-center justify-center">`)
		hw.raw(`<div class="border border-contrast-20 flex flex-col rounded-m bg-base p-m">`)

		hw.raw(`<div>`)
		hw.text(i18n.Tr(ctx, "Use any user name"))
		hw.raw(`</div><div>`)
		hw.text(i18n.Tr(ctx, `and the password "{{.Password}}" to enter`, "Password", demoPassword()))
		hw.raw(`</div>`)

		hw.raw(`<form method="POST" action="login" class="flex flex-col">`)

		hw.raw(`<vaadin-text-field name="username" label="`)
		hw.text(i18n.Tr(ctx, "User code"))
		hw.raw(`" autocapitalize="none" autocorrect="off" spellcheck="false">`)
		hw.raw(`<input type="text" slot="input" name="username">`)
		hw.raw(`</vaadin-text-field>`)

		hw.raw(`<vaadin-password-field name="password" label="`)
		hw.text(i18n.Tr(ctx, "Password"))
		hw.raw(`" spellcheck="false">`)
		hw.raw(`<input type="password" slot="input" name="password">`)
		hw.raw(`</vaadin-password-field>`)

		submit := i18n.Tr(ctx, "Submit")

		hw.raw(`<button type="submit">`)
		hw.text(submit)
		hw.raw(`</button>`)
		hw.raw(`<vaadin-button theme="primary contained" role="button" data-event="click">`)
		hw.text(submit)
		hw.raw(`</vaadin-button>`)

		hw.raw(`</form></div></div>`)

		hw.raw(`<div class="image-attribution p-s">`)
		hw.text(i18n.Tr(ctx, "Image by"))
		hw.raw(` <a href="` + imageURL + `">` + imageAuthor + `</a></div>`)

		return hw.err
	})
}

func demoPassword() string {
	if p := config.Global.Auth.DemoPassword; p != "" {
		return p
	}

	return config.DefaultDemoPassword
}
