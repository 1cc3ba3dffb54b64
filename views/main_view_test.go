// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package views

import (
	"net/http"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/vabber/vabber/core/channel"
)

func TestMainViewLayout(t *testing.T) {
	t.Parallel()

	v := &MainView{
		Username:    "alice",
		Title:       "music",
		CurrentPath: "/c/music",
		Body:        templ.Raw(`<p id="body">hello</p>`),
	}

	html := renderString(t, v)
	assert.NotContains(t, html, "<template")

	doc := parse(t, html)

	assert.Equal(t, "music", doc.Find("main-view header h1").Text())
	assert.Equal(t, "hello", doc.Find("main-view main #body").Text())
	assert.Equal(t, "Vabber", doc.Find(".main-layout-drawer-header h2").Text())

	nav := doc.Find("nav.main-layout-drawer-nav")
	assert.Equal(t, "Channels", nav.AttrOr("aria-label", ""))
	assert.Equal(t, 7, nav.Find("a").Length())

	current := nav.Find(`a[aria-current="page"]`)
	require.Equal(t, 1, current.Length())
	assert.Equal(t, "/c/music", current.AttrOr("href", ""))

	assert.Equal(t, "2", nav.Find(`a[href="/c/announcements"] .badge`).Text())
	assert.Equal(t, "2 unread", nav.Find(`a[href="/c/announcements"] .badge`).AttrOr("title", ""))
	assert.Equal(t, "5", nav.Find(`a[href="/c/music"] .badge`).Text())
	assert.Equal(t, 0, nav.Find(`a[href="/c/general"] .badge`).Length())
	assert.Equal(t, "4", nav.Find(`li li a[href="/about"] .badge`).Text())
	assert.Equal(t, 1, nav.Find(`li li a[href="/faq"]`).Length())

	footer := doc.Find(".main-layout-drawer-footer")
	assert.Equal(t, "A", footer.Find(".avatar").Text())
	assert.Contains(t, footer.Text(), "alice")

	logout := footer.Find("form")
	assert.Equal(t, "POST", logout.AttrOr("method", ""))
	assert.Equal(t, "/logout", logout.AttrOr("action", ""))
	assert.Equal(t, "Log out", logout.Find("button").Text())
}

func TestMainViewSectionIsCurrentOnlyAsChild(t *testing.T) {
	t.Parallel()

	doc := parse(t, renderString(t, &MainView{Username: "bob", CurrentPath: "/about"}))

	current := doc.Find(`a[aria-current="page"]`)
	require.Equal(t, 1, current.Length())
	assert.Contains(t, current.Text(), "Instructions")
}

func TestMainViewEscapesUsername(t *testing.T) {
	t.Parallel()

	html := renderString(t, &MainView{Username: "<script>x</script>"})
	assert.NotContains(t, html, "<script>")
}

func TestInitial(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "A", initial("alice"))
	assert.Equal(t, "Ü", initial("über"))
	assert.Equal(t, "?", initial(""))
}

func TestPages(t *testing.T) {
	t.Parallel()

	data := MainPageData{Username: "alice", CurrentPath: "/"}
	music, ok := channel.Find("music")
	require.True(t, ok)

	tests := []struct {
		name  string
		page  templ.Component
		title string
	}{
		{"home", HomePage(data), "Welcome"},
		{"channel", ChannelPage(data, music), "music"},
		{"about", AboutPage(data), "Instructions"},
		{"faq", FAQPage(data), "FAQ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := parse(t, renderString(t, tt.page))
			assert.Equal(t, tt.title, doc.Find("main-view header h1").Text())
			assert.Equal(t, tt.title+" - Vabber", doc.Find("title").Text())
			assert.Equal(t, 1, doc.Find(`link[rel="stylesheet"][href^="/css/utility.css"]`).Length())
		})
	}
}

func TestLoginPage(t *testing.T) {
	t.Parallel()

	doc := parse(t, renderString(t, LoginPage(LoginPageData{})))
	assert.Equal(t, "en", doc.Find("html").AttrOr("lang", ""))
	assert.Equal(t, "Sign in - Vabber", doc.Find("title").Text())
	assert.Equal(t, 0, doc.Find(".login-error").Length())
	assert.Equal(t, 1, doc.Find("body > login-view").Length())

	doc = parse(t, renderString(t, LoginPage(LoginPageData{Error: "Invalid user name or password."})))
	banner := doc.Find("body > .login-error")
	require.Equal(t, 1, banner.Length())
	assert.Equal(t, "Invalid user name or password.", banner.Text())
	assert.Equal(t, 0, doc.Find("login-view .login-error").Length(), "error banner stays outside the component")
}

func TestErrorPage(t *testing.T) {
	t.Parallel()

	doc := parse(t, renderString(t, ErrorPage(ErrorPageData{StatusCode: http.StatusNotFound, RequestID: "abc"})))
	assert.Equal(t, "404 Page not found", doc.Find("h1").Text())
	assert.Equal(t, "abc", doc.Find("code").Text())
	assert.Equal(t, "/", doc.Find("main a").AttrOr("href", ""))

	doc = parse(t, renderString(t, ErrorPage(ErrorPageData{StatusCode: http.StatusInternalServerError, Message: "boom"})))
	assert.Equal(t, "500 Something went wrong", doc.Find("h1").Text())
	assert.Equal(t, "boom", doc.Find("main p").First().Text())
}

func TestMainViewShowsSignInTime(t *testing.T) {
	fixed := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = time.Now })

	v := &MainView{Username: "alice", LoggedInAt: fixed.Add(-5 * time.Minute)}
	footer := parse(t, renderString(t, v)).Find(".main-layout-drawer-footer")

	signedIn := footer.Find("time")
	require.Equal(t, 1, signedIn.Length())
	assert.Equal(t, "2025-03-10T11:55:00Z", signedIn.AttrOr("datetime", ""))
	assert.Equal(t, "Signed in 5 minutes ago", signedIn.Text())

	v.LoggedInAt = time.Time{}
	assert.Equal(t, 0, parse(t, renderString(t, v)).Find(".main-layout-drawer-footer time").Length())
}
