// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "flag"

// parseCommandLineArgs defines and parses flags, returning the value of the "config" flag.
func parseCommandLineArgs() string {
	if f := flag.Lookup("config"); f != nil {
		if !flag.Parsed() {
			flag.Parse()
		}

		return f.Value.String()
	}

	configFilePath := flag.String("config", "./config.yaml", "Path to a Vabber configuration file in YAML format.")

	if !flag.Parsed() {
		flag.Parse()
	}

	return *configFilePath
}
