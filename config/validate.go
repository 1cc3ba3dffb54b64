// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/user"
	"regexp"
	"strconv"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// validation errors.
var (
	errUnixSocketWithHostPort       = errors.New("unix socket configured - cannot specify Host and Port simultaneously")
	errUnixSocketInvalidPermissions = errors.New("invalid Basic.UnixSocketPermissions value")
	errUnixSocketUserDoesNotExist   = errors.New("user does not exist")
	errUnixSocketGroupDoesNotExist  = errors.New("group does not exist")
	errNoPassword                   = errors.New("auth.demoPassword or auth.passwordHash is required")
	errInvalidPasswordHash          = errors.New("auth.passwordHash is not a bcrypt hash")
	errPasswordHashMismatch         = errors.New("auth.passwordHash does not match auth.demoPassword")
	errInvalidBcryptCost            = errors.New("auth.bcryptCost is out of range")
	errEmptyCookieName              = errors.New("session.cookieName cannot be empty")
	errInvalidSessionLifetime       = errors.New("session.lifetime must be positive")
	errInvalidLimiterRate           = errors.New("limiter.loginsPerMinute and limiter.burst must be positive")
	errInvalidLimiterTTL            = errors.New("limiter.ttl must be positive")
	errInvalidLogLevel              = errors.New("invalid log.logLevel")
	errInvalidLogFormat             = errors.New("invalid log.logFormat")
	errInvalidRepoURL               = errors.New("instance.repoUrl must be an absolute URL")
)

var (
	fileModeOctalRegexp  = regexp.MustCompile(`^0?[0-7]{3}$`)
	fileModeStringRegexp = regexp.MustCompile(`^(?:[r-][w-][x-]){3}$`)
	digitsRegexp         = regexp.MustCompile(`^[0-9]+$`)
)

// validateAndSet validates the server configuration and populates derived fields.
func (cfg *ServerConfig) validateAndSet() error {
	if err := cfg.validateListener(); err != nil {
		return err
	}

	if err := cfg.validateAuth(); err != nil {
		return err
	}

	if cfg.Session.CookieName == "" {
		return errEmptyCookieName
	}

	if cfg.Session.Lifetime <= 0 {
		return errInvalidSessionLifetime
	}

	if cfg.Limiter.Enabled {
		if cfg.Limiter.PerMin <= 0 || cfg.Limiter.Burst <= 0 {
			return errInvalidLimiterRate
		}

		if cfg.Limiter.TTL <= 0 {
			return errInvalidLimiterTTL
		}
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.Log.Level)
	}

	switch cfg.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: %q", errInvalidLogFormat, cfg.Log.Format)
	}

	if cfg.Instance.RepoURL != "" {
		u, err := url.Parse(cfg.Instance.RepoURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: %q", errInvalidRepoURL, cfg.Instance.RepoURL)
		}
	}

	return nil
}

func (cfg *ServerConfig) validateListener() error {
	if cfg.Basic.UnixSocket == "" {
		if cfg.Basic.Host == "" {
			cfg.Basic.Host = "localhost"
			log.Info().
				Str("host", cfg.Basic.Host).
				Msg("Binding to default host")
		}

		if cfg.Basic.Port == "" {
			cfg.Basic.Port = "8080"
			log.Info().
				Str("port", cfg.Basic.Port).
				Msg("Using default port")
		}

		return nil
	}

	if cfg.Basic.Host != "" || cfg.Basic.Port != "" {
		return errUnixSocketWithHostPort
	}

	mode, err := parseFileMode(cfg.Basic.RawUnixSocketPermissions)
	if err != nil {
		return err
	}

	cfg.Basic.UnixSocketPermissions = mode

	if name := cfg.Basic.UnixSocketUser; name != "" && !userExists(name) {
		return errUnixSocketUserDoesNotExist
	}

	if name := cfg.Basic.UnixSocketGroup; name != "" && !groupExists(name) {
		return errUnixSocketGroupDoesNotExist
	}

	return nil
}

// userExists looks name up as a numeric uid or a user name.
func userExists(name string) bool {
	var err error
	if digitsRegexp.MatchString(name) {
		_, err = user.LookupId(name)
	} else {
		_, err = user.Lookup(name)
	}

	return err == nil
}

// groupExists looks name up as a numeric gid or a group name.
func groupExists(name string) bool {
	var err error
	if digitsRegexp.MatchString(name) {
		_, err = user.LookupGroupId(name)
	} else {
		_, err = user.LookupGroup(name)
	}

	return err == nil
}

// parseFileMode accepts "", octal ("660", "0660") or symbolic ("rw-rw----") permissions.
func parseFileMode(raw string) (os.FileMode, error) {
	const defaultSocketMode = 0o666

	switch {
	case raw == "":
		return defaultSocketMode, nil
	case fileModeOctalRegexp.MatchString(raw):
		mode, _ := strconv.ParseUint(raw, 8, 32)

		return os.FileMode(mode), nil
	case fileModeStringRegexp.MatchString(raw):
		var mode os.FileMode

		// rwxrwxrwx maps to bits 8..0
		const highestBit = 8

		for i, c := range raw {
			if c != '-' {
				mode |= 1 << (highestBit - i)
			}
		}

		return mode, nil
	default:
		return 0, errUnixSocketInvalidPermissions
	}
}

// validateAuth derives Auth.PasswordHash from Auth.DemoPassword when needed
// and checks that the two agree when both are set.
func (cfg *ServerConfig) validateAuth() error {
	if cfg.Auth.BcryptCost < bcrypt.MinCost || cfg.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: %d", errInvalidBcryptCost, cfg.Auth.BcryptCost)
	}

	switch {
	case cfg.Auth.PasswordHash == "" && cfg.Auth.DemoPassword == "":
		return errNoPassword
	case cfg.Auth.PasswordHash == "":
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Auth.DemoPassword), cfg.Auth.BcryptCost)
		if err != nil {
			return fmt.Errorf("failed to hash auth.demoPassword: %w", err)
		}

		cfg.Auth.PasswordHash = string(hash)

		return nil
	}

	if _, err := bcrypt.Cost([]byte(cfg.Auth.PasswordHash)); err != nil {
		return fmt.Errorf("%w: %w", errInvalidPasswordHash, err)
	}

	if cfg.Auth.DemoPassword != "" {
		err := bcrypt.CompareHashAndPassword([]byte(cfg.Auth.PasswordHash), []byte(cfg.Auth.DemoPassword))
		if err != nil {
			return errPasswordHashMismatch
		}
	}

	return nil
}
