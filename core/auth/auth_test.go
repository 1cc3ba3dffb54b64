// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthenticator(t *testing.T) *Authenticator {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("foo"), bcrypt.MinCost)
	require.NoError(t, err)

	a, err := New(string(hash))
	require.NoError(t, err)

	return a
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator(t)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
		wantName string
	}{
		{name: "any user name", username: "alice", password: "foo", wantName: "alice"},
		{name: "trimmed user name", username: "  bob ", password: "foo", wantName: "bob"},
		{name: "unicode user name", username: "Jürgen", password: "foo", wantName: "Jürgen"},
		{name: "wrong password", username: "alice", password: "bar", wantErr: ErrInvalidCredentials},
		{name: "password is case sensitive", username: "alice", password: "FOO", wantErr: ErrInvalidCredentials},
		{name: "blank user name", username: "   ", password: "foo", wantErr: ErrMissingCredentials},
		{name: "empty password", username: "alice", password: "", wantErr: ErrMissingCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			user, err := a.Authenticate(tt.username, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, user.Name)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, user.Name)
			assert.True(t, user.HasRole(RoleAdmin))
		})
	}
}

func TestNewRejectsInvalidHash(t *testing.T) {
	t.Parallel()

	_, err := New("not-a-bcrypt-hash")
	require.Error(t, err)
}

func TestUserHasRole(t *testing.T) {
	t.Parallel()

	u := User{Name: "alice", Roles: []string{RoleAdmin}}
	assert.True(t, u.HasRole("admin"))
	assert.False(t, u.HasRole("user"))
	assert.False(t, User{}.HasRole("admin"))
}
