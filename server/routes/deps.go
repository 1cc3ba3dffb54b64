// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"context"
	"net/http"

	"codeberg.org/vabber/vabber/core/auth"
	"codeberg.org/vabber/vabber/core/session"
)

var (
	// Sessions stores logged-in users. Set by Init.
	Sessions *session.Manager
	// Authenticator checks login credentials. Set by Init.
	Authenticator *auth.Authenticator
)

// Init sets the collaborators the handlers use.
func Init(sessions *session.Manager, authenticator *auth.Authenticator) {
	Sessions = sessions
	Authenticator = authenticator
}

// CurrentUsername reports the logged-in user of ctx.
// It matches commondata.UserLookup.
func CurrentUsername(ctx context.Context) (string, bool) {
	if Sessions == nil {
		return "", false
	}

	user, err := Sessions.Current(ctx)
	if err != nil {
		return "", false
	}

	return user.Name, true
}

// requireUser returns the logged-in user, or remembers the requested page
// and returns an UnauthorizedError.
func requireUser(r *http.Request) (auth.User, error) {
	user, err := Sessions.Current(r.Context())
	if err == nil {
		return user, nil
	}

	returnPath := r.URL.RequestURI()
	Sessions.SaveReturnPath(r.Context(), returnPath)

	return auth.User{}, NewUnauthorizedError(returnPath)
}
