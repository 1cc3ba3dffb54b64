// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package idgen

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

// entropyBytes is the number of random bytes appended to the time prefix.
const entropyBytes = 4

// Make returns a short sortable ID: an HHMMSS time prefix followed by
// base64url-encoded random bytes. It is used for request IDs and the
// static file cache ID.
func Make() string {
	return MakeAt(time.Now())
}

// MakeAt is Make with an explicit clock value.
func MakeAt(t time.Time) string {
	var entropy [entropyBytes]byte

	// crypto/rand.Read never returns an error on supported platforms.
	_, _ = rand.Read(entropy[:])

	return timePrefix(t) + base64.RawURLEncoding.EncodeToString(entropy[:])
}

func timePrefix(t time.Time) string {
	return t.UTC().Format("150405")
}
