// Package config builds the single, immutable configuration of a contract test run.
//
// Values come from, in increasing order of precedence: built-in defaults, an optional YAML file,
// environment variables, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL        = "http://localhost:8080"
	DefaultAdminUsername  = "admin"
	DefaultAdminPassword  = "admin123"
	DefaultMemberPassword = "member123"
)

// Environment variable names.
const (
	EnvBaseURL        = "BASE_URL"
	EnvAdminUsername  = "ADMIN_USERNAME"
	EnvAdminPassword  = "ADMIN_PASSWORD"
	EnvMemberPassword = "MEMBER_PASSWORD"
	EnvKeepData       = "KEEP_DATA"
)

// Config is the configuration of one run. It is built once at startup and passed by value.
type Config struct {
	BaseURL        string `yaml:"base_url"`
	AdminUsername  string `yaml:"admin_username"`
	AdminPassword  string `yaml:"admin_password"`
	MemberPassword string `yaml:"member_password"`
	// PreserveData skips the cleanup steps so the created account and log head can be inspected.
	PreserveData bool `yaml:"keep_data"`
}

// Overrides holds explicitly set values, such as command-line flags. Nil fields are not set.
type Overrides struct {
	BaseURL        *string
	AdminUsername  *string
	AdminPassword  *string
	MemberPassword *string
	PreserveData   *bool
}

// LookupFunc has the same signature as os.LookupEnv.
type LookupFunc func(key string) (string, bool)

func Default() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		AdminUsername:  DefaultAdminUsername,
		AdminPassword:  DefaultAdminPassword,
		MemberPassword: DefaultMemberPassword,
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped if path is empty), the
// environment as seen through lookup, and finally overrides.
func Load(path string, lookup LookupFunc, overrides Overrides) (Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadFile(cfg, path); err != nil {
			return Config{}, err
		}
	}
	if lookup != nil {
		cfg = FromEnv(cfg, lookup)
	}
	cfg = overrides.apply(cfg)
	return cfg.normalize()
}

// LoadFile overlays the YAML file at path onto base. Keys missing from the file keep the values
// from base.
func LoadFile(base Config, path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv overlays environment variables onto base. Unset variables keep the values from base.
func FromEnv(base Config, lookup LookupFunc) Config {
	cfg := base
	setString := func(key string, target *string) {
		if v, ok := lookup(key); ok {
			*target = v
		}
	}
	setString(EnvBaseURL, &cfg.BaseURL)
	setString(EnvAdminUsername, &cfg.AdminUsername)
	setString(EnvAdminPassword, &cfg.AdminPassword)
	setString(EnvMemberPassword, &cfg.MemberPassword)
	if v, ok := lookup(EnvKeepData); ok {
		cfg.PreserveData = IsTruthy(v)
	}
	return cfg
}

// IsTruthy reports whether an environment value means "on": 1, true, or yes, in any case.
func IsTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func (o Overrides) apply(cfg Config) Config {
	if o.BaseURL != nil {
		cfg.BaseURL = *o.BaseURL
	}
	if o.AdminUsername != nil {
		cfg.AdminUsername = *o.AdminUsername
	}
	if o.AdminPassword != nil {
		cfg.AdminPassword = *o.AdminPassword
	}
	if o.MemberPassword != nil {
		cfg.MemberPassword = *o.MemberPassword
	}
	if o.PreserveData != nil {
		cfg.PreserveData = *o.PreserveData
	}
	return cfg
}

func (c Config) normalize() (Config, error) {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		return Config{}, errors.New("base URL must not be empty")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return Config{}, fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Config{}, fmt.Errorf("invalid base URL %q: must be an absolute http or https URL", c.BaseURL)
	}
	if c.AdminUsername == "" {
		return Config{}, errors.New("admin username must not be empty")
	}
	return c, nil
}
