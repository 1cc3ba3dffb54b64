// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"codeberg.org/vabber/vabber/config"
	"codeberg.org/vabber/vabber/server/request_context"
	"codeberg.org/vabber/vabber/views"
)

// ErrorPage renders an error page.
//
// Error details are only shown in development mode.
func ErrorPage(w http.ResponseWriter, r *http.Request) {
	rc := request_context.FromRequest(r)

	pageData := views.ErrorPageData{
		StatusCode: rc.StatusCode,
		RequestID:  rc.RequestID,
	}

	if config.Global.Development.InDevelopment && rc.RequestError != nil {
		pageData.Message = rc.RequestError.Error()
	}

	if err := views.ErrorPage(pageData).Render(r.Context(), w); err != nil {
		log.Err(err).Msg("Failed to render error page")
	}
}
