// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package utils

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeReturnPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"/", "/"},
		{" /c/music ", "/c/music"},
		{"/about?x=1", "/about?x=1"},
		{"", ""},
		{"about", ""},
		{"//evil.example", ""},
		{"/\\evil.example", ""},
		{"https://evil.example/", ""},
		{"/redirect?to=https://evil.example", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SanitizeReturnPath(tt.in))
		})
	}
}

func TestQueryHelpers(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/login?error&lang=de", nil)

	assert.True(t, HasQueryParam(r, "error"))
	assert.False(t, HasQueryParam(r, "return"))
	assert.Empty(t, GetQueryParam(r, "error"))
	assert.Equal(t, "de", GetQueryParam(r, "lang"))
	assert.Equal(t, "/", GetQueryParam(r, "return", "/"))
}

func TestGetFormValueIgnoresQuery(t *testing.T) {
	t.Parallel()

	form := url.Values{"username": {"alice"}}
	r := httptest.NewRequest(http.MethodPost, "/login?password=fromquery", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	assert.Equal(t, "alice", GetFormValue(r, "username"))
	assert.Empty(t, GetFormValue(r, "password"))
	assert.Equal(t, "x", GetFormValue(r, "password", "x"))
}

func TestIsConnectionSecure(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "203.0.113.1:1000"
	assert.False(t, IsConnectionSecure(r))

	r.Header.Set("X-Forwarded-Proto", "https")
	assert.False(t, IsConnectionSecure(r), "public peers cannot claim https")

	r.RemoteAddr = "10.0.0.2:1000"
	assert.True(t, IsConnectionSecure(r))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.TLS = &tls.ConnectionState{}
	assert.True(t, IsConnectionSecure(r))
}

func TestGetOriginFromRequest(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "http://example.com/x", nil)
	assert.Equal(t, "http://example.com", GetOriginFromRequest(r))

	r.Header.Set("X-Forwarded-Proto", "https")
	assert.Equal(t, "https://example.com", GetOriginFromRequest(r))
}
