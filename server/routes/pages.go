// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"

	"github.com/a-h/templ"

	"codeberg.org/vabber/vabber/core/channel"
	"codeberg.org/vabber/vabber/server/utils"
	"codeberg.org/vabber/vabber/views"
)

// mainPageData returns the layout data of the logged-in user.
func mainPageData(r *http.Request) (views.MainPageData, error) {
	user, err := requireUser(r)
	if err != nil {
		return views.MainPageData{}, err
	}

	return views.MainPageData{
		Username:    user.Name,
		CurrentPath: r.URL.Path,
		LoggedInAt:  Sessions.LoggedInAt(r.Context()),
	}, nil
}

// renderMainPage renders page into a freshly mounted MainView.
func renderMainPage(w http.ResponseWriter, r *http.Request, data views.MainPageData, page func(views.MainPageData) templ.Component) error {
	view, release, err := mountView[*views.MainView](views.MainViewTag)
	if err != nil {
		return err
	}
	defer release()

	data.View = view

	w.Header().Set("Cache-Control", "private, no-cache")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	preloadPageAssets(w)

	return page(data).Render(r.Context(), w)
}

// serveMainPage renders page for the logged-in user.
func serveMainPage(w http.ResponseWriter, r *http.Request, page func(views.MainPageData) templ.Component) error {
	data, err := mainPageData(r)
	if err != nil {
		return err
	}

	return renderMainPage(w, r, data, page)
}

// IndexPage is the handler for the / page.
func IndexPage(w http.ResponseWriter, r *http.Request) error {
	return serveMainPage(w, r, views.HomePage)
}

// ChannelPage is the handler for the /c/{channel} pages.
func ChannelPage(w http.ResponseWriter, r *http.Request) error {
	data, err := mainPageData(r)
	if err != nil {
		return err
	}

	c, ok := channel.Find(utils.GetPathVar(r, "channel"))
	if !ok {
		w.WriteHeader(http.StatusNotFound)

		return nil
	}

	return renderMainPage(w, r, data, func(data views.MainPageData) templ.Component {
		return views.ChannelPage(data, c)
	})
}

// AboutPage is the handler for the /about page.
func AboutPage(w http.ResponseWriter, r *http.Request) error {
	return serveMainPage(w, r, views.AboutPage)
}

// FAQPage is the handler for the /faq page.
func FAQPage(w http.ResponseWriter, r *http.Request) error {
	return serveMainPage(w, r, views.FAQPage)
}

// HealthCheck reports that the server is up.
func HealthCheck(w http.ResponseWriter, _ *http.Request) error {
	noStore(w)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	_, err := w.Write([]byte("ok"))

	return err
}
