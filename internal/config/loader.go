package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// lookupFunc reads one variable; an empty value counts as unset.
type lookupFunc func(name string) (string, bool)

// Load reads configuration from environment variables.
// It applies defaults for unset values and validates the result.
// Every unparseable or missing variable is reported, not just the first.
func Load() (*Config, error) {
	return load(os.LookupEnv)
}

func load(lookup lookupFunc) (*Config, error) {
	cfg := &Config{}

	if errs := populate(reflect.ValueOf(cfg).Elem(), lookup); len(errs) > 0 {
		return nil, fmt.Errorf("config load:\n  - %s", strings.Join(errs, "\n  - "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// populate fills the tagged fields of v, recursing into section structs.
//
// Tags:
//   - env: primary variable name
//   - envAlt: fallback name, read when env is unset
//   - default: value used when both are unset
//   - required: "true" makes an unset variable an error
func populate(v reflect.Value, lookup lookupFunc) []string {
	var errs []string
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fv := v.Field(i)
		if !fv.CanSet() {
			continue
		}

		if field.Type.Kind() == reflect.Struct {
			errs = append(errs, populate(fv, lookup)...)
			continue
		}

		name := field.Tag.Get("env")
		if name == "" {
			continue
		}

		value, source := lookupTagged(lookup, name, field.Tag.Get("envAlt"))
		if value == "" {
			if field.Tag.Get("required") == "true" {
				errs = append(errs, fmt.Sprintf("required environment variable %s is not set", name))
				continue
			}
			value, source = field.Tag.Get("default"), name+" default"
		}
		if value == "" {
			continue
		}

		parsed, err := parseValue(field.Type, value)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid value for %s=%q: %v", source, value, err))
			continue
		}
		fv.Set(parsed)
	}

	return errs
}

// lookupTagged returns the first non-empty of name and alt, with the name it
// came from.
func lookupTagged(lookup lookupFunc, name, alt string) (string, string) {
	if v, ok := lookup(name); ok && v != "" {
		return v, name
	}
	if alt != "" {
		if v, ok := lookup(alt); ok && v != "" {
			return v, alt
		}
	}
	return "", name
}

var durationType = reflect.TypeOf(time.Duration(0))

// parseValue converts value to a reflect.Value of type t.
func parseValue(t reflect.Type, value string) (reflect.Value, error) {
	if t == durationType {
		d, err := time.ParseDuration(value)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid duration: %w", err)
		}
		return reflect.ValueOf(d), nil
	}

	out := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.String:
		out.SetString(value)

	case reflect.Int, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid integer: %w", err)
		}
		out.SetInt(n)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid boolean: %w", err)
		}
		out.SetBool(b)

	case reflect.Slice:
		if t.Elem().Kind() != reflect.String {
			return reflect.Value{}, fmt.Errorf("unsupported slice type: %s", t.Elem().Kind())
		}
		items, err := parseList(value)
		if err != nil {
			return reflect.Value{}, err
		}
		out.Set(reflect.ValueOf(items))

	default:
		return reflect.Value{}, fmt.Errorf("unsupported field type: %s", t.Kind())
	}

	return out, nil
}

// parseList splits a comma-separated list and trims each entry. Empty
// entries ("a,,b", a trailing comma) are rejected.
func parseList(value string) ([]string, error) {
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("empty list entry at position %d", i+1)
		}
		items = append(items, p)
	}
	return items, nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT (%d) must be 1-65535", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 {
		errs = append(errs, "SERVER_READ_TIMEOUT must be non-negative")
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "SERVER_SHUTDOWN_TIMEOUT must be positive")
	}

	// Sheet validation
	if c.Sheet.URL == "" {
		errs = append(errs, "SHEET_URL is required")
	} else if u, err := url.Parse(c.Sheet.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Sprintf("SHEET_URL (%q) must be an absolute http(s) URL", c.Sheet.URL))
	}
	if c.Sheet.FetchTimeout <= 0 {
		errs = append(errs, "SHEET_FETCH_TIMEOUT must be positive")
	}
	if c.Sheet.MaxBytes <= 0 {
		errs = append(errs, "SHEET_MAX_BYTES must be positive")
	}
	if c.Sheet.RefreshInterval < 0 {
		errs = append(errs, "SHEET_REFRESH_INTERVAL must be non-negative")
	}

	// Store validation
	switch strings.ToLower(c.Store.Backend) {
	case "file":
		if c.Store.Path == "" {
			errs = append(errs, "STORE_PATH is required for the file backend")
		}
	case "memory":
	case "postgres":
		if c.Store.DatabaseURL == "" {
			errs = append(errs, "DATABASE_URL is required for the postgres backend")
		}
		if c.Store.MaxConns <= 0 {
			errs = append(errs, "DB_MAX_CONNS must be positive")
		}
	case "redis":
		if c.Store.RedisURL == "" {
			errs = append(errs, "REDIS_URL is required for the redis backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("STORE_BACKEND (%q) must be one of: file, memory, postgres, redis", c.Store.Backend))
	}
	if c.Store.CartKey == "" || c.Store.TotalKey == "" {
		errs = append(errs, "STORE_CART_KEY and STORE_TOTAL_KEY must not be empty")
	} else if c.Store.CartKey == c.Store.TotalKey {
		errs = append(errs, "STORE_CART_KEY and STORE_TOTAL_KEY must differ")
	}

	// Rate limit validation
	if c.Rate.Enabled && c.Rate.RequestsPerMinute <= 0 {
		errs = append(errs, "RATE_LIMIT_REQUESTS_PER_MINUTE must be positive when rate limiting is enabled")
	}

	// Security validation
	if c.Security.RequireAPIKey && len(c.Security.APIKeys) == 0 {
		errs = append(errs, "REQUIRE_API_KEY is true but API_KEYS is empty; configure at least one API key or disable auth")
	}
	for _, cidr := range c.Security.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			errs = append(errs, fmt.Sprintf("TRUSTED_PROXIES entry %q is not a valid CIDR", cidr))
		}
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	// Metrics validation
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		errs = append(errs, fmt.Sprintf("METRICS_PATH (%q) must start with /", c.Metrics.Path))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a safe string representation of the config for logging.
// Connection strings and API keys are masked.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Server: {Host: %q, Port: %d}, ", c.Server.Host, c.Server.Port))
	b.WriteString(fmt.Sprintf("Sheet: {URL: %q, FetchTimeout: %s, RefreshInterval: %s}, ",
		c.Sheet.URL, c.Sheet.FetchTimeout, c.Sheet.RefreshInterval))
	b.WriteString(fmt.Sprintf("Store: {Backend: %q, Path: %q, DatabaseURL: %s, RedisURL: %s}, ",
		c.Store.Backend, c.Store.Path, mask(c.Store.DatabaseURL), mask(c.Store.RedisURL)))
	b.WriteString(fmt.Sprintf("Rate: {Enabled: %v, RequestsPerMinute: %d}, ",
		c.Rate.Enabled, c.Rate.RequestsPerMinute))
	b.WriteString(fmt.Sprintf("Security: {RequireAPIKey: %v, APIKeys: %d configured}, ",
		c.Security.RequireAPIKey, len(c.Security.APIKeys)))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}, ",
		c.Logging.Level, c.Logging.Format))
	b.WriteString(fmt.Sprintf("Metrics: {Enabled: %v, Path: %q}",
		c.Metrics.Enabled, c.Metrics.Path))
	b.WriteString("}")
	return b.String()
}

func mask(s string) string {
	if s == "" {
		return `""`
	}
	return "[MASKED]"
}
