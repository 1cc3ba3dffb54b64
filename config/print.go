// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

const redactedValue = "[redacted]"

// Redacted returns a shallow copy of cfg with secrets replaced.
func (cfg *ServerConfig) Redacted() ServerConfig {
	printable := *cfg

	if printable.Auth.PasswordHash != "" {
		printable.Auth.PasswordHash = redactedValue
	}

	return printable
}

func (cfg *ServerConfig) print() {
	log.Info().
		Str("version", BuildVersion).
		Str("revision", cfg.Build.Revision()).
		Str("cacheid", cfg.Instance.FileServerCacheID).
		Msgf("Starting %s", cfg.Instance.AppName)

	printable := cfg.Redacted()

	configYAML, err := printable.ToYAML()
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal config to YAML for printing")

		return
	}

	log.Info().Msg("Application configuration:")
	fmt.Fprintln(os.Stderr, string(configYAML))
}
