// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"

	"codeberg.org/vabber/vabber/core/idgen"
)

// Global exposes the server configuration.
var Global ServerConfig

// ServerConfig holds the application configuration.
type ServerConfig struct {
	Build buildInfo `yaml:"-"`

	Basic struct {
		Host                     string      `env:"VABBER_HOST,overwrite" yaml:"host"`
		Port                     string      `env:"VABBER_PORT,overwrite" yaml:"port"`
		UnixSocket               string      `env:"VABBER_UNIXSOCKET" yaml:"unixSocket"`
		RawUnixSocketPermissions string      `env:"VABBER_UNIXSOCKET_PERMISSIONS" yaml:"unixSocketPermissions"`
		UnixSocketPermissions    os.FileMode `yaml:"-"`
		UnixSocketUser           string      `env:"VABBER_UNIXSOCKET_USER" yaml:"unixSocketUser"`
		UnixSocketGroup          string      `env:"VABBER_UNIXSOCKET_GROUP" yaml:"unixSocketGroup"`
	} `yaml:"basic"`

	Auth struct {
		// DemoPassword is the shared password every user name logs in with.
		// It is also shown in the login hint.
		DemoPassword string `env:"VABBER_DEMO_PASSWORD,overwrite" yaml:"demoPassword"`
		// PasswordHash is a bcrypt hash of DemoPassword. Derived at startup when empty.
		PasswordHash string `env:"VABBER_PASSWORD_HASH,overwrite" yaml:"passwordHash"`
		BcryptCost   int    `env:"VABBER_BCRYPT_COST,overwrite" yaml:"bcryptCost"`
	} `yaml:"auth"`

	Session struct {
		CookieName   string        `env:"VABBER_SESSION_COOKIE,overwrite" yaml:"cookieName"`
		Lifetime     time.Duration `env:"VABBER_SESSION_LIFETIME,overwrite" yaml:"lifetime"`
		IdleTimeout  time.Duration `env:"VABBER_SESSION_IDLE_TIMEOUT,overwrite" yaml:"idleTimeout"`
		SecureCookie bool          `env:"VABBER_SESSION_SECURE_COOKIE,overwrite" yaml:"secureCookie"`
	} `yaml:"session"`

	Limiter struct {
		Enabled bool          `env:"VABBER_LIMITER,overwrite" yaml:"enabled"`
		PerMin  int           `env:"VABBER_LIMITER_LOGINS_PER_MINUTE,overwrite" yaml:"loginsPerMinute"`
		Burst   int           `env:"VABBER_LIMITER_BURST,overwrite" yaml:"burst"`
		TTL     time.Duration `env:"VABBER_LIMITER_TTL,overwrite" yaml:"ttl"`
		// PassIPs lists addresses or CIDRs that are never limited.
		PassIPs []string      `env:"VABBER_LIMITER_PASS_IPS,overwrite" yaml:"passIPs"`
	} `yaml:"limiter"`

	Metrics struct {
		Enabled bool `env:"VABBER_METRICS,overwrite" yaml:"enabled"`
	} `yaml:"metrics"`

	Response struct {
		Compression bool `env:"VABBER_COMPRESSION,overwrite" yaml:"compression"`
	} `yaml:"response"`

	Instance struct {
		AppName           string `env:"VABBER_APP_NAME,overwrite" yaml:"appName"`
		StartingTime      string `yaml:"-"`
		FileServerCacheID string `yaml:"-"`
		RepoURL           string `env:"VABBER_REPO_URL,overwrite" yaml:"repoUrl"`
	} `yaml:"instance"`

	Development struct {
		InDevelopment bool `env:"VABBER_DEV" yaml:"inDevelopment"`
	} `yaml:"development"`

	Log struct {
		Level   string   `env:"VABBER_LOG_LEVEL,overwrite" yaml:"logLevel"`
		Outputs []string `env:"VABBER_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"VABBER_LOG_FORMAT,overwrite" yaml:"logFormat"`
	} `yaml:"log"`

	Internationalization struct {
		// Strict mode for missing keys.
		//
		// When enabled, missing keys are logged (deduplicated per locale+key) and
		// visibly wrapped using markers.
		StrictMissingKeys bool `env:"VABBER_STRICT_MISSING_KEYS" yaml:"strictMissingKeys"`
	} `yaml:"internationalization"`
}

// LoadConfig loads the configuration from various sources.
//
// Precedence, lowest first: defaults, YAML file, .env file, environment.
func (cfg *ServerConfig) LoadConfig() error {
	configFilePath := resolveConfigFilePath(parseCommandLineArgs())

	cfg.SetDefaults()

	cfg.Build.load()

	cfg.Instance.FileServerCacheID = idgen.Make()
	cfg.Instance.StartingTime = time.Now().UTC().Format("2006-01-02 15:04")

	if err := cfg.readYAML(configFilePath); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := useDotEnv(); err != nil {
		return fmt.Errorf("error using .env file: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validateAndSet(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	cfg.setupAudit()

	cfg.print()

	// Heuristically check for containerized environment and warn if host is not a wildcard address.
	if isContainerized() && cfg.Basic.UnixSocket == "" && cfg.Basic.Host != "0.0.0.0" && cfg.Basic.Host != "::" {
		log.Warn().
			Str("host", cfg.Basic.Host).
			Msg("Running in a containerized environment but host is not a wildcard address (e.g., '0.0.0.0' or '::'). This may prevent the service from being accessible outside the container.")
	}

	return nil
}

// resolveConfigFilePath picks the config file path:
//  1. command-line flag (-config), if set explicitly
//  2. environment variable VABBER_CONFIGFILE
//  3. the flag default, falling back to ./config.yml when ./config.yaml is absent
func resolveConfigFilePath(flagValue string) string {
	flagSet := false

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			flagSet = true
		}
	})

	if flagSet {
		return flagValue
	}

	if envVar := os.Getenv("VABBER_CONFIGFILE"); envVar != "" {
		return envVar
	}

	if _, err := os.Stat(flagValue); os.IsNotExist(err) {
		const ymlPath = "./config.yml"
		if _, statErr := os.Stat(ymlPath); statErr == nil {
			return ymlPath
		}
	}

	return flagValue
}

var staticSkippedPathPrefixes = []string{"/css/", "/img/", "/public/", "/metrics", "/healthz"}

// ShouldSkipServerLogging determines if a request should bypass request logging.
func (cfg *ServerConfig) ShouldSkipServerLogging(path string) bool {
	if cfg.Development.InDevelopment {
		return false
	}

	for _, prefix := range staticSkippedPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}

// isContainerized checks for common indicators of a containerized environment.
//
// This is a heuristic and may not be 100% accurate.
func isContainerized() bool {
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true
	}

	for _, marker := range []string{"/.dockerenv", "/.containerenv"} {
		if _, err := os.Stat(marker); err == nil {
			return true
		}
	}

	// #nosec G304 -- well-known system file, read for heuristics only.
	cgroup, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return false
	}

	content := string(cgroup)

	for _, keyword := range []string{"docker", "kubepods", "containerd", "lxc", "crio", ".machine"} {
		if strings.Contains(content, keyword) {
			return true
		}
	}

	return false
}

// GetDurationEncoderOption returns a YAML encoder option that marshals
// time.Duration into a human-readable string format (e.g., "30m", "1h").
func GetDurationEncoderOption() yaml.EncodeOption {
	return yaml.CustomMarshaler[time.Duration](
		func(d time.Duration) ([]byte, error) {
			return yaml.Marshal(d.String())
		},
	)
}
