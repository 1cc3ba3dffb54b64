// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"codeberg.org/vabber/vabber/config"
	"codeberg.org/vabber/vabber/core/audit"
	"codeberg.org/vabber/vabber/core/auth"
	"codeberg.org/vabber/vabber/i18n"
	"codeberg.org/vabber/vabber/server/utils"
	"codeberg.org/vabber/vabber/views"
)

// Messages shown above the login view after a failed attempt.
const (
	msgMissingCredentials = "Please enter a user name and a password."
	msgInvalidCredentials = "Invalid user name or password."
)

// loginErrorPath is where failed attempts are sent.
const loginErrorPath = LoginPath + "?error"

// LoginPage renders the sign-in page.
//
// Logged-in users are sent to the start page. A "return" query parameter is
// remembered as the page to open after login.
func LoginPage(w http.ResponseWriter, r *http.Request) error {
	noStore(w)

	if Sessions.IsLoggedIn(r.Context()) {
		utils.SeeOther(w, r, "/")

		return nil
	}

	if returnPath := utils.SanitizeReturnPath(utils.GetQueryParam(r, "return")); returnPath != "" {
		Sessions.SaveReturnPath(r.Context(), returnPath)
	}

	var errMsg string
	if utils.HasQueryParam(r, "error") {
		msgid := Sessions.PopFlash(r.Context())
		if msgid == "" {
			msgid = msgInvalidCredentials
		}

		errMsg = i18n.Tr(r.Context(), msgid)
	}

	view, release, err := mountView[*views.LoginView](views.LoginViewTag)
	if err != nil {
		return err
	}
	defer release()

	label := i18n.Tr(r.Context(), "Sign in")
	view.Label = &label

	preloadPageAssets(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	return views.LoginPage(views.LoginPageData{Error: errMsg, View: view}).Render(r.Context(), w)
}

// LoginPOST handles the login form submission.
func LoginPOST(w http.ResponseWriter, r *http.Request) error {
	noStore(w)

	ctx := r.Context()

	if config.Global.Session.SecureCookie && !utils.IsConnectionSecure(r) {
		log.Warn().
			Msg("Login over plain HTTP while secure session cookies are enabled; the browser will drop the session cookie")
	}

	user, err := Authenticator.Authenticate(utils.GetFormValue(r, "username"), utils.GetFormValue(r, "password"))

	switch {
	case errors.Is(err, auth.ErrMissingCredentials):
		audit.RecordLogin(audit.LoginMissing)
		Sessions.SetFlash(ctx, msgMissingCredentials)
		utils.SeeOther(w, r, loginErrorPath)

		return nil

	case errors.Is(err, auth.ErrInvalidCredentials):
		audit.RecordLogin(audit.LoginRejected)
		log.Info().
			Str("user", utils.GetFormValue(r, "username")).
			Msg("Login rejected")
		Sessions.SetFlash(ctx, msgInvalidCredentials)
		utils.SeeOther(w, r, loginErrorPath)

		return nil

	case err != nil:
		return fmt.Errorf("authenticating user: %w", err)
	}

	if err := Sessions.Login(ctx, user); err != nil {
		return err
	}

	audit.RecordLogin(audit.LoginSucceeded)
	log.Info().
		Str("user", user.Name).
		Msg("User logged in")

	utils.SeeOther(w, r, Sessions.PopReturnPath(ctx, "/"))

	return nil
}

// LogoutPOST ends the session and returns to the start page.
func LogoutPOST(w http.ResponseWriter, r *http.Request) error {
	noStore(w)

	name, loggedIn := CurrentUsername(r.Context())

	if err := Sessions.Logout(r.Context()); err != nil {
		return err
	}

	if loggedIn {
		audit.RecordLogout()
		log.Info().
			Str("user", name).
			Msg("User logged out")
	}

	utils.SeeOther(w, r, "/")

	return nil
}
