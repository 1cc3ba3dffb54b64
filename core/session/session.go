// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package session keeps logged-in users in server-side sessions.

Session data lives in an in-memory store; the browser only holds the
session token cookie.
*/
package session

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"

	"codeberg.org/vabber/vabber/config"
	"codeberg.org/vabber/vabber/core/auth"
)

const (
	keyUsername   = "username"
	keyRoles      = "roles"
	keyLoggedInAt = "loggedInAt"
	keyReturnPath = "returnPath"
	keyFlash      = "flash"
)

// Session values are gob-encoded by scs; every non-builtin type put into
// a session must be registered.
//
//nolint:gochecknoinits // gob registration must happen before the first commit
func init() {
	gob.Register(time.Time{})
}

// ErrNoUser is returned by Current when the session has no logged-in user.
var ErrNoUser = errors.New("no user logged in")

// Options configures a Manager.
type Options struct {
	CookieName   string
	Lifetime     time.Duration
	IdleTimeout  time.Duration
	SecureCookie bool
}

// OptionsFromConfig reads Options from config.Global.Session.
func OptionsFromConfig() Options {
	return Options{
		CookieName:   config.Global.Session.CookieName,
		Lifetime:     config.Global.Session.Lifetime,
		IdleTimeout:  config.Global.Session.IdleTimeout,
		SecureCookie: config.Global.Session.SecureCookie,
	}
}

// Manager wraps an scs.SessionManager with user-centric helpers.
type Manager struct {
	*scs.SessionManager
}

// NewManager returns a Manager backed by an in-memory store.
func NewManager(opts Options) *Manager {
	sm := scs.New()
	sm.Store = memstore.New()

	if opts.Lifetime > 0 {
		sm.Lifetime = opts.Lifetime
	}

	if opts.IdleTimeout > 0 {
		sm.IdleTimeout = opts.IdleTimeout
	}

	if opts.CookieName != "" {
		sm.Cookie.Name = opts.CookieName
	}

	sm.Cookie.Path = "/"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = opts.SecureCookie

	return &Manager{SessionManager: sm}
}

// Login stores user in the session.
//
// The session token is renewed first so a token issued before login cannot be reused.
func (m *Manager) Login(ctx context.Context, user auth.User) error {
	if err := m.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}

	m.Put(ctx, keyUsername, user.Name)
	m.Put(ctx, keyRoles, strings.Join(user.Roles, ","))
	m.Put(ctx, keyLoggedInAt, time.Now().UTC())

	return nil
}

// Current returns the logged-in user.
func (m *Manager) Current(ctx context.Context) (auth.User, error) {
	name := m.GetString(ctx, keyUsername)
	if name == "" {
		return auth.User{}, ErrNoUser
	}

	var roles []string
	if raw := m.GetString(ctx, keyRoles); raw != "" {
		roles = strings.Split(raw, ",")
	}

	return auth.User{Name: name, Roles: roles}, nil
}

// LoggedInAt returns when the current user logged in, or the zero time.
func (m *Manager) LoggedInAt(ctx context.Context) time.Time {
	return m.GetTime(ctx, keyLoggedInAt)
}

// IsLoggedIn reports whether the session carries a user.
func (m *Manager) IsLoggedIn(ctx context.Context) bool {
	return m.GetString(ctx, keyUsername) != ""
}

// Logout destroys the session.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.Destroy(ctx); err != nil {
		return fmt.Errorf("destroying session: %w", err)
	}

	return nil
}

// SaveReturnPath remembers where to send the user after login.
//
// Only local absolute paths are stored; anything else is ignored.
func (m *Manager) SaveReturnPath(ctx context.Context, path string) {
	if !IsLocalPath(path) {
		return
	}

	m.Put(ctx, keyReturnPath, path)
}

// PopReturnPath returns and forgets the saved return path, or fallback when none is saved.
func (m *Manager) PopReturnPath(ctx context.Context, fallback string) string {
	path := m.PopString(ctx, keyReturnPath)
	if !IsLocalPath(path) {
		return fallback
	}

	return path
}

// SetFlash stores a one-shot message for the next page.
func (m *Manager) SetFlash(ctx context.Context, msg string) {
	m.Put(ctx, keyFlash, msg)
}

// PopFlash returns and forgets the flash message.
func (m *Manager) PopFlash(ctx context.Context) string {
	return m.PopString(ctx, keyFlash)
}

// IsLocalPath reports whether path points to this site.
//
// It must start with a single slash and carry neither scheme nor host,
// which rules out "//evil.example" and "/\evil.example".
func IsLocalPath(path string) bool {
	if path == "" || path[0] != '/' {
		return false
	}

	if strings.HasPrefix(path, "//") || strings.HasPrefix(path, "/\\") {
		return false
	}

	u, err := url.Parse(path)
	if err != nil {
		return false
	}

	return u.Scheme == "" && u.Host == ""
}
