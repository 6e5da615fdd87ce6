// Package config supplies polling configuration: the default schedule read
// from named settings, and YAML check files for the eventually CLI.
//
// The default schedule comes from two optional settings, each an integer
// number of milliseconds:
//
//	eventually.polling.interval.millis   (default 1000)
//	eventually.polling.duration.millis   (default 60000)
//
// [Environment] reads them from EVENTUALLY_POLLING_INTERVAL_MILLIS and
// EVENTUALLY_POLLING_DURATION_MILLIS.
//
// Example check file:
//
//	interval: 500ms
//	duration: 2m
//
//	checks:
//	  - name: API
//	    url: https://${API_HOST:-localhost:8080}/health
//	    timeout: 5s
//	    extractor: json:status
//	    expect: up
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// minInterval keeps check files from hammering an endpoint with busy polling.
const minInterval = 100 * time.Millisecond

// Config is the root of a check file.
//
// Interval and Duration are nil when the file leaves them out; see
// [Config.Schedule].
type Config struct {
	// Interval is the time between the starts of consecutive attempts.
	Interval *Duration `yaml:"interval"`

	// Duration is how long each check keeps retrying.
	Duration *Duration `yaml:"duration"`

	// Checks are waited for one after another, in file order.
	Checks []CheckConfig `yaml:"checks"`
}

// CheckConfig defines one endpoint to wait for.
type CheckConfig struct {
	// Name labels the check in output. Defaults to the URL.
	Name string `yaml:"name"`

	// URL supports ${VAR} and ${VAR:-default} substitution.
	URL string `yaml:"url"`

	// Method is GET, HEAD or POST. Defaults to GET.
	Method string `yaml:"method"`

	// Timeout bounds each request. Defaults to 10s.
	Timeout Duration `yaml:"timeout"`

	// Headers are sent with every request. Values support substitution.
	Headers map[string]string `yaml:"headers"`

	// Extractor determines how a response is read as a status.
	Extractor ExtractorConfig `yaml:"extractor"`

	// Expect is the status to wait for. Defaults to "up".
	Expect string `yaml:"expect"`
}

// ExtractorConfig specifies how a response is read as a status.
//
// It accepts a shorthand string:
//
//	extractor: json:data.status
//	extractor: contains:ok
//	extractor: http
//
// or a structured object:
//
//	extractor:
//	  type: regex
//	  pattern: '"state":\s*"(\w+)"'
//	  text: running
type ExtractorConfig struct {
	// Type is "default", "http", "json", "contains" or "regex".
	Type string

	// Path is the dot-separated JSON field (type json).
	Path string

	// Text is the substring to look for (type contains), or the capture
	// value that means up (type regex).
	Text string

	// Pattern is the regular expression with one capture group (type regex).
	Pattern string
}

// Duration wraps time.Duration for YAML unmarshalling from strings like "5s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// UnmarshalYAML implements yaml.Unmarshaler for ExtractorConfig.
func (e *ExtractorConfig) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		return e.parseShorthand(s)
	case yaml.MappingNode:
		// plain struct avoids recursing into this method
		var raw struct {
			Type    string `yaml:"type"`
			Path    string `yaml:"path"`
			Text    string `yaml:"text"`
			Pattern string `yaml:"pattern"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		*e = ExtractorConfig(raw)
		return nil
	default:
		return fmt.Errorf("extractor must be a string or object, got %v", node.Kind)
	}
}

// ParseExtractor parses the shorthand extractor form used in check files
// and on the command line.
func ParseExtractor(s string) (ExtractorConfig, error) {
	var e ExtractorConfig
	if err := e.parseShorthand(s); err != nil {
		return ExtractorConfig{}, err
	}
	return e, nil
}

// parseShorthand accepts "default", "http", "json:path" and "contains:text".
func (e *ExtractorConfig) parseShorthand(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if kind, value, ok := strings.Cut(s, ":"); ok {
		switch kind {
		case "json":
			e.Type, e.Path = kind, value
		case "contains":
			e.Type, e.Text = kind, value
		default:
			return fmt.Errorf("unknown extractor type %q", kind)
		}
		return nil
	}

	switch s {
	case "default", "http":
		e.Type = s
		return nil
	default:
		return fmt.Errorf("unknown extractor %q (expected 'default', 'http', 'json:path', or 'contains:text')", s)
	}
}

// envVarPattern matches ${VAR} and ${VAR:-default}.
// Group 1 is the name, group 2 the ":-default" part, group 3 the default.
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment values.
// An unset variable without a default is an error.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}
		sub := envVarPattern.FindStringSubmatch(match)
		name, hasDefault, fallback := sub[1], sub[2] != "", sub[3]

		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		if hasDefault {
			return fallback
		}
		firstErr = fmt.Errorf("environment variable %q is not set", name)
		return match
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a check file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses check file data, expands environment variables in URLs and
// header values, applies per-check defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate expands environment variables, applies per-check defaults and
// validates c. [Parse] calls it; callers building a Config by hand must
// call it themselves.
func (c *Config) Validate() error {
	return c.expandAndValidate()
}

func (c *Config) expandAndValidate() error {
	if c.Interval != nil && c.Interval.Duration() < minInterval {
		return fmt.Errorf("interval must be at least %s, got %s", minInterval, c.Interval.Duration())
	}
	if c.Duration != nil && c.Duration.Duration() < 0 {
		return fmt.Errorf("duration cannot be negative, got %s", c.Duration.Duration())
	}
	if len(c.Checks) == 0 {
		return errors.New("at least one check must be defined")
	}

	for i := range c.Checks {
		if err := c.Checks[i].expandAndValidate(); err != nil {
			return fmt.Errorf("checks[%d]: %w", i, err)
		}
	}
	return nil
}

func (ck *CheckConfig) expandAndValidate() error {
	if ck.URL == "" {
		return errors.New("url is required")
	}
	expanded, err := expandEnvVars(ck.URL)
	if err != nil {
		return fmt.Errorf("url: %w", err)
	}
	ck.URL = expanded

	parsed, err := url.Parse(ck.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", parsed.Scheme)
	}
	if ck.Name == "" {
		ck.Name = ck.URL
	}

	for k, v := range ck.Headers {
		expanded, err := expandEnvVars(v)
		if err != nil {
			return fmt.Errorf("headers[%s]: %w", k, err)
		}
		ck.Headers[k] = expanded
	}

	switch ck.Method {
	case "", "GET", "HEAD", "POST":
	default:
		return fmt.Errorf("method must be GET, HEAD, or POST, got %q", ck.Method)
	}

	if ck.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative, got %s", ck.Timeout.Duration())
	}

	switch strings.ToLower(strings.TrimSpace(ck.Expect)) {
	case "":
		ck.Expect = "up"
	case "up", "down", "degraded", "unknown":
		ck.Expect = strings.ToLower(strings.TrimSpace(ck.Expect))
	default:
		return fmt.Errorf("expect must be up, down, degraded, or unknown, got %q", ck.Expect)
	}

	return validateExtractor(ck.Extractor)
}

func validateExtractor(e ExtractorConfig) error {
	switch e.Type {
	case "", "default", "http":
		return nil
	case "json":
		if e.Path == "" {
			return errors.New("extractor type 'json' requires a path")
		}
	case "contains":
		if e.Text == "" {
			return errors.New("extractor type 'contains' requires text")
		}
	case "regex":
		if e.Pattern == "" || e.Text == "" {
			return errors.New("extractor type 'regex' requires a pattern and text")
		}
		if _, err := regexp.Compile(e.Pattern); err != nil {
			return fmt.Errorf("extractor pattern: %w", err)
		}
	default:
		return fmt.Errorf("unknown extractor type %q", e.Type)
	}
	return nil
}
