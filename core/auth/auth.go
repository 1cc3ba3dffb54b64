// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package auth checks login credentials.

Any non-blank user name is accepted together with the shared demo password.
The password is compared against a bcrypt hash, never in plain text.
*/
package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"codeberg.org/vabber/vabber/config"
)

// RoleAdmin is granted to every authenticated user.
const RoleAdmin = "admin"

var (
	// ErrMissingCredentials is returned when the user name or the password is blank.
	ErrMissingCredentials = errors.New("missing user name or password")
	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("invalid user name or password")
)

// User is an authenticated principal.
type User struct {
	Name  string
	Roles []string
}

// HasRole reports whether the user holds role.
func (u User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}

	return false
}

// Authenticator verifies credentials against a single bcrypt hash.
type Authenticator struct {
	hash []byte
}

// New returns an Authenticator for the given bcrypt hash.
func New(passwordHash string) (*Authenticator, error) {
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, fmt.Errorf("invalid password hash: %w", err)
	}

	return &Authenticator{hash: []byte(passwordHash)}, nil
}

// FromConfig returns an Authenticator using config.Global.Auth.PasswordHash.
func FromConfig() (*Authenticator, error) {
	return New(config.Global.Auth.PasswordHash)
}

// Authenticate returns the user for username if password matches.
//
// The user name is trimmed of surrounding whitespace; the password is used as given.
func (a *Authenticator) Authenticate(username, password string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return User{}, ErrMissingCredentials
	}

	err := bcrypt.CompareHashAndPassword(a.hash, []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return User{}, ErrInvalidCredentials
	}

	if err != nil {
		return User{}, fmt.Errorf("comparing password hash: %w", err)
	}

	return User{Name: username, Roles: []string{RoleAdmin}}, nil
}
