// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package audit records what the server does: one log line and one
Server-Timing metric per request, plus prometheus counters for requests
and login attempts.
*/
package audit

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetDefaultLogger provides a readable log output format on startup,
// before the configuration has been loaded.
func SetDefaultLogger() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}
