// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderPOT(t *testing.T) {
	t.Parallel()

	refs := map[key][]ref{
		{id: "Sign in"}: {
			{file: "views/login_view.go", line: 90},
			{file: "server/routes/login.go", line: 58},
			{file: "views/login_view.go", line: 90},
		},
		{id: "{{.Count}} unread", plural: "{{.Count}} unread"}: {
			{file: "views/main_view.go", line: 120},
		},
		{id: "About"}: {
			{file: "core/channel/channel.go", line: 30},
		},
	}

	created := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	pot := renderPOT(refs, "v0.3.0", created)

	assert.Contains(t, pot, `"Project-Id-Version: Vabber v0.3.0\n"`)
	assert.Contains(t, pot, `"POT-Creation-Date: 2025-03-10 12:00+0000\n"`)

	assert.Contains(t, pot, "#: server/routes/login.go:58 views/login_view.go:90\nmsgid \"Sign in\"\nmsgstr \"\"\n")
	assert.Contains(t, pot, "msgid \"{{.Count}} unread\"\nmsgid_plural \"{{.Count}} unread\"\nmsgstr[0] \"\"\nmsgstr[1] \"\"\n")

	about := strings.Index(pot, `msgid "About"`)
	signIn := strings.Index(pot, `msgid "Sign in"`)
	assert.Less(t, about, signIn, "entries are sorted by msgid")
}

func TestStripCreationDate(t *testing.T) {
	t.Parallel()

	a := renderPOT(nil, "dev", time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))
	b := renderPOT(nil, "dev", time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))

	assert.NotEqual(t, a, b)
	assert.Equal(t, string(stripCreationDate([]byte(a))), string(stripCreationDate([]byte(b))))
}
