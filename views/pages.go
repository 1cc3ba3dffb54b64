// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"io"
	"time"

	"github.com/a-h/templ"

	"codeberg.org/vabber/vabber/core/channel"
	"codeberg.org/vabber/vabber/i18n"
)

// MainPageData is the data shared by every page inside the main layout.
type MainPageData struct {
	Username    string
	CurrentPath string
	LoggedInAt  time.Time
	// View is the mounted element the page is rendered into. A new one is
	// used when nil.
	View *MainView
}

func mainPage(data MainPageData, title string, body templ.Component) templ.Component {
	view := data.View
	if view == nil {
		view = &MainView{}
	}

	view.Username = data.Username
	view.Title = title
	view.CurrentPath = data.CurrentPath
	view.LoggedInAt = data.LoggedInAt
	view.Body = body

	return Page(PageProps{
		Title: title,
		Body:  view,
	})
}

func paragraphs(msgids ...string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}

		hw.raw(`<div class="p-m">`)

		for _, id := range msgids {
			hw.raw(`<p>`)
			hw.text(i18n.Tr(ctx, id))
			hw.raw(`</p>`)
		}

		hw.raw(`</div>`)

		return hw.err
	})
}

// HomePage is the landing page after login.
func HomePage(data MainPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return mainPage(data, i18n.Tr(ctx, "Welcome"),
			paragraphs("Pick a channel from the list to start chatting."),
		).Render(ctx, w)
	})
}

// ChannelPage shows a single channel.
func ChannelPage(data MainPageData, c channel.Channel) templ.Component {
	return mainPage(data, c.Title, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}

		hw.raw(`<div class="p-m">`)

		if c.Unread > 0 {
			hw.raw(`<p class="font-medium">`)
			hw.text(i18n.TrN(ctx, "{{.Count}} unread", "{{.Count}} unread", c.Unread, "Count", c.Unread))
			hw.raw(`</p>`)
		}

		hw.raw(`<p class="text-secondary">`)
		hw.text(i18n.Tr(ctx, "No messages yet."))
		hw.raw(`</p></div>`)

		return hw.err
	}))
}

// AboutPage explains how to use the application.
func AboutPage(data MainPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return mainPage(data, i18n.Tr(ctx, "Instructions"), paragraphs(
			"Channels are listed in the drawer on the left.",
			"Numbers next to a channel show how many messages you have not read yet.",
			"Use the button at the bottom of the drawer to log out.",
		)).Render(ctx, w)
	})
}

// FAQPage answers common questions.
func FAQPage(data MainPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return mainPage(data, i18n.Tr(ctx, "FAQ"), paragraphs(
			"Which password do I need? The demo password shown on the login page.",
			"Do I need an account? No, any user name works.",
		)).Render(ctx, w)
	})
}
