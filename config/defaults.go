// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "time"

const (
	// Default session lifetime in hours.
	defaultSessionLifetimeHours = 12
	// Default session idle timeout in minutes.
	defaultSessionIdleMinutes = 30

	// Default login attempts per client and minute.
	defaultLoginsPerMinute = 10
	// Default burst of login attempts.
	defaultLoginBurst = 5
	// Default lifetime of an idle limiter entry in minutes.
	defaultLimiterTTLMinutes = 10

	// DefaultBcryptCost is used when hashing the demo password at startup.
	DefaultBcryptCost = 10

	// DefaultDemoPassword is the shared login password unless configured otherwise.
	DefaultDemoPassword = "foo"
)

// SetDefaults populates the configuration with default values.
func (cfg *ServerConfig) SetDefaults() {
	cfg.Basic.Host = "localhost"
	cfg.Basic.Port = "8080"

	cfg.Auth.DemoPassword = DefaultDemoPassword
	cfg.Auth.PasswordHash = ""
	cfg.Auth.BcryptCost = DefaultBcryptCost

	cfg.Session.CookieName = "vabber_session"
	cfg.Session.Lifetime = defaultSessionLifetimeHours * time.Hour
	cfg.Session.IdleTimeout = defaultSessionIdleMinutes * time.Minute
	cfg.Session.SecureCookie = false

	cfg.Limiter.Enabled = true
	cfg.Limiter.PerMin = defaultLoginsPerMinute
	cfg.Limiter.Burst = defaultLoginBurst
	cfg.Limiter.TTL = defaultLimiterTTLMinutes * time.Minute

	cfg.Metrics.Enabled = true

	cfg.Response.Compression = true

	cfg.Instance.AppName = "Vabber"
	cfg.Instance.RepoURL = "https://codeberg.org/vabber/vabber"

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"

	cfg.Internationalization.StrictMissingKeys = false
}
