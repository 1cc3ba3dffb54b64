// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"errors"
	"maps"
	"net/http"
	"net/http/httptest"

	"github.com/rs/zerolog/log"

	"codeberg.org/vabber/vabber/config"
	"codeberg.org/vabber/vabber/core/audit"
	"codeberg.org/vabber/vabber/server/request_context"
	"codeberg.org/vabber/vabber/server/routes"
)

// CatchError wraps HTTP handlers that return an error, providing centralized error handling,
// response buffering, and request logging.
//
// The handler's output is buffered using an httptest.ResponseRecorder and any
// error it returns is stored in the request context. After the handler runs:
//   - A routes.UnauthorizedError becomes a 303 See Other to routes.LoginPath.
//   - Any other error without an HTTP error status (status < 400) is treated as
//     an unhandled internal error. The buffered response is discarded and a
//     500 page is rendered.
//   - A 404 Not Found is also replaced with the generic error page.
//   - In all other cases the buffered response is written to the client.
//
// Finally, it logs the completed request via the audit package.
func CatchError(handler func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := request_context.FromRequest(r)

		span := audit.Span{
			Destination: audit.ToUser,
			RequestID:   ctx.RequestID,
			Method:      r.Method,
			URL:         r.URL.String(),
			Route:       r.Pattern,
			User:        ctx.CommonData.Username,
		}

		_ = span.Begin(r.Context())
		defer span.End()

		recorder := httptest.NewRecorder()

		err := handler(recorder, r)

		ctx.RequestError = err

		var unauthErr *routes.UnauthorizedError
		switch {
		case errors.As(ctx.RequestError, &unauthErr):
			// The handler already stored the return path in the session.
			ctx.StatusCode = http.StatusSeeOther

			w.Header().Set("Cache-Control", "no-store")
			http.Redirect(w, r, routes.LoginPath, ctx.StatusCode)

		case (ctx.RequestError != nil && recorder.Code < http.StatusBadRequest) || (recorder.Code == http.StatusNotFound):
			if recorder.Code == http.StatusNotFound {
				ctx.StatusCode = http.StatusNotFound
			} else {
				ctx.StatusCode = http.StatusInternalServerError
			}

			// Headers must be in place before WriteHeader.
			w.Header().Set("Cache-Control", "no-store")
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(ctx.StatusCode)
			routes.ErrorPage(w, r)

		default:
			if recorder.Code == 0 {
				recorder.Code = http.StatusOK
			}

			ctx.StatusCode = recorder.Code
			span.Size = recorder.Body.Len()

			maps.Copy(w.Header(), recorder.Header())
			w.WriteHeader(recorder.Code)

			if _, err := recorder.Body.WriteTo(w); err != nil {
				log.Err(err).Msg("Failed to write response body")
			}
		}

		span.End()
		span.StatusCode = ctx.StatusCode
		span.Error = ctx.RequestError

		if !config.Global.ShouldSkipServerLogging(r.URL.Path) {
			span.Log()
		}
	}
}
