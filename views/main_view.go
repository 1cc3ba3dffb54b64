// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/a-h/templ"

	"codeberg.org/vabber/vabber/core/channel"
	"codeberg.org/vabber/vabber/i18n"
	"codeberg.org/vabber/vabber/views/element"
)

// MainViewTag is the custom element name of MainView.
const MainViewTag = "main-view"

// MainView is the application layout shown after login:
// a header with the page title, and a drawer with the channel navigation
// and the signed-in user.
type MainView struct {
	element.Base

	Username string
	// Title is shown in the header.
	Title string
	// CurrentPath marks the matching navigation entry as the current page.
	CurrentPath string
	// LoggedInAt is shown in the drawer footer when set.
	LoggedInAt time.Time
	Body       templ.Component
}

func (v *MainView) Tag() string { return MainViewTag }

func (v *MainView) RenderRoot() element.RenderRoot { return element.LightRoot }

func (v *MainView) Render(ctx context.Context, w io.Writer) error {
	return element.Render(v).Render(ctx, w)
}

func (v *MainView) Content() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}

		hw.raw(`<div class="main-layout">`)
		v.writeDrawer(ctx, hw)

		hw.raw(`<div class="main-layout-content">`)
		hw.raw(`<header class="main-layout-header bg-base border-b border-contrast-10 box-border flex h-xl px-m items-center w-full">`)
		hw.raw(`<a class="drawer-toggle text-secondary" href="#drawer" aria-controls="drawer">&#9776;</a>`)
		hw.raw(`<span class="text-s pe-s text-secondary" aria-hidden="true">#</span>`)
		hw.raw(`<h1 class="m-0 text-l flex-auto">`)
		hw.text(v.Title)
		hw.raw(`</h1></header>`)
		hw.raw(`<main>`)
		hw.component(ctx, v.Body)
		hw.raw(`</main></div></div>`)

		return hw.err
	})
}

func (v *MainView) writeDrawer(ctx context.Context, hw *htmlWriter) {
	hw.raw(`<div id="drawer" class="main-layout-drawer">`)
	hw.raw(`<header class="main-layout-drawer-header flex items-center h-xl px-m space-s border-b border-contrast-10 w-full box-border bg-contrast-10">`)
	hw.raw(`<h2 class="text-m m-0">`)
	hw.text(appName())
	hw.raw(`</h2></header>`)

	hw.raw(`<nav class="main-layout-drawer-nav w-full px-s box-border bg-contrast-10" aria-label="`)
	channels := i18n.Tr(ctx, "Channels")
	hw.text(channels)
	hw.raw(`"><h3 class="text-s text-secondary">`)
	hw.text(channels)
	hw.raw(`</h3>`)
	v.writeNavList(ctx, hw, channel.Directory, true)
	hw.raw(`</nav>`)

	hw.raw(`<footer class="main-layout-drawer-footer flex items-center px-m h-xl bg-contrast-20 w-full box-border">`)
	hw.raw(`<span class="avatar mr-xs" aria-hidden="true">`)
	hw.text(initial(v.Username))
	hw.raw(`</span><span class="flex flex-col flex-grow"><span class="font-medium text-s text-secondary">`)
	hw.text(v.Username)
	hw.raw(`</span>`)

	if !v.LoggedInAt.IsZero() {
		hw.raw(`<time class="text-xs text-tertiary" datetime="`)
		hw.text(v.LoggedInAt.UTC().Format(time.RFC3339))
		hw.raw(`">`)
		hw.text(i18n.Tr(ctx, "Signed in {{.Since}}", "Since", relativeTime(ctx, v.LoggedInAt)))
		hw.raw(`</time>`)
	}

	hw.raw(`</span>`)
	hw.raw(`<form method="POST" action="/logout"><button type="submit" class="text-secondary text-s">`)
	hw.text(i18n.Tr(ctx, "Log out"))
	hw.raw(`</button></form></footer></div>`)
}

func (v *MainView) writeNavList(ctx context.Context, hw *htmlWriter, items []channel.Channel, top bool) {
	hw.raw(`<ul>`)

	for _, item := range items {
		hw.raw(`<li><a href="`)
		hw.text(item.Path)
		hw.raw(`"`)

		if item.Path == v.CurrentPath && (len(item.Children) == 0 || !top) {
			hw.raw(` aria-current="page"`)
		}

		hw.raw(`><span class="icon text-secondary" data-icon="`)
		hw.text(item.Icon)
		hw.raw(`" aria-hidden="true"></span><span>`)

		if strings.HasPrefix(item.Path, "/c/") {
			hw.text(item.Title)
		} else {
			hw.text(i18n.Tr(ctx, item.Title))
		}

		hw.raw(`</span>`)

		if item.Unread > 0 {
			hw.raw(`<span class="badge" title="`)
			hw.text(i18n.TrN(ctx, "{{.Count}} unread", "{{.Count}} unread", item.Unread, "Count", item.Unread))
			hw.raw(`">`)
			hw.text(strconv.Itoa(item.Unread))
			hw.raw(`</span>`)
		}

		hw.raw(`</a>`)

		if len(item.Children) > 0 {
			v.writeNavList(ctx, hw, item.Children, false)
		}

		hw.raw(`</li>`)
	}

	hw.raw(`</ul>`)
}

// initial returns the upper-cased first letter of name for the avatar.
func initial(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 || r == utf8.RuneError {
		return "?"
	}

	return string(unicode.ToUpper(r))
}

func appName() string {
	return pageTitle("")
}
