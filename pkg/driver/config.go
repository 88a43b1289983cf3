package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/Roybie/tigr/pkg/interpreter"
	"github.com/Roybie/tigr/pkg/runtime"
)

// DefaultLogLevel is used when the configuration does not name one.
const DefaultLogLevel = "warning"

// Config represents the parsed contents of a tigr configuration file.
type Config struct {
	Path         string
	LogLevel     string
	Trace        bool
	DumpEnv      bool
	MaxCallDepth int
	Natives      []string
	Globals      map[string]any
}

type configFile struct {
	LogLevel     string         `yaml:"log_level"`
	Trace        bool           `yaml:"trace"`
	DumpEnv      bool           `yaml:"dump_env"`
	MaxCallDepth int            `yaml:"max_call_depth"`
	Natives      []string       `yaml:"natives"`
	Globals      map[string]any `yaml:"globals"`
}

// ValidationError aggregates configuration validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{LogLevel: DefaultLogLevel}
}

// LoadConfig parses a YAML configuration file, returning a validated config.
// An empty path or a missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debugf("[%s]: no config at %s, using defaults", TAG, absPath)
			cfg := DefaultConfig()
			cfg.Path = absPath
			return cfg, nil
		}
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	cfg, err := ParseConfig(file)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", absPath, err)
	}
	cfg.Path = absPath
	log.Debugf("[%s]: loaded config from %s", TAG, absPath)
	return cfg, nil
}

// ParseConfig decodes and validates a configuration document. Unknown keys
// are rejected and an empty document yields the defaults.
func ParseConfig(r io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("parse: %w", err)
	}

	cfg := raw.toConfig()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (raw configFile) toConfig() *Config {
	cfg := &Config{
		LogLevel:     strings.TrimSpace(raw.LogLevel),
		Trace:        raw.Trace,
		DumpEnv:      raw.DumpEnv,
		MaxCallDepth: raw.MaxCallDepth,
		Natives:      raw.Natives,
		Globals:      raw.Globals,
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	return cfg
}

func (c *Config) validate() error {
	var errs ValidationError
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs.Issues = append(errs.Issues, fmt.Sprintf("log_level %q is not a valid level", c.LogLevel))
	}
	if c.MaxCallDepth < 0 {
		errs.Issues = append(errs.Issues, "max_call_depth must not be negative")
	}

	known := make(map[string]bool)
	for _, name := range interpreter.BuiltinNatives() {
		known[name] = true
	}
	seen := make(map[string]bool, len(c.Natives))
	for i, name := range c.Natives {
		switch {
		case name == "":
			errs.Issues = append(errs.Issues, fmt.Sprintf("natives[%d] must be a non-empty string", i))
		case !known[name]:
			errs.Issues = append(errs.Issues, fmt.Sprintf("natives[%d]: unknown native %q", i, name))
		case seen[name]:
			errs.Issues = append(errs.Issues, fmt.Sprintf("natives[%d]: %q listed twice", i, name))
		}
		seen[name] = true
	}

	for _, name := range sortedKeys(c.Globals) {
		if !validGlobalName(name) {
			errs.Issues = append(errs.Issues, fmt.Sprintf("globals: %q is not a valid identifier", name))
			continue
		}
		if _, err := ToValue(c.Globals[name]); err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("globals.%s: %v", name, err))
		}
	}

	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

func validGlobalName(name string) bool {
	if name == "" || name == "_" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case i > 0 && '0' <= r && r <= '9':
		default:
			return false
		}
	}
	return true
}

// ApplyLogLevels sets the configured level on the interpreter and driver
// loggers.
func (c *Config) ApplyLogLevels() error {
	if err := interpreter.SetLogLevel(c.LogLevel); err != nil {
		return err
	}
	return SetLogLevel(c.LogLevel)
}

// GlobalValues converts the configured globals to runtime values.
func (c *Config) GlobalValues() (map[string]runtime.Value, error) {
	values := make(map[string]runtime.Value, len(c.Globals))
	for _, name := range sortedKeys(c.Globals) {
		val, err := ToValue(c.Globals[name])
		if err != nil {
			return nil, fmt.Errorf("config: global %s: %w", name, err)
		}
		values[name] = val
	}
	return values, nil
}

// InterpreterOptions translates the configuration into interpreter options.
// Native output goes to out.
func (c *Config) InterpreterOptions(out io.Writer) ([]interpreter.Option, error) {
	opts := []interpreter.Option{
		interpreter.WithOutput(out),
		interpreter.WithTrace(c.Trace),
		interpreter.WithMaxCallDepth(c.MaxCallDepth),
	}
	if len(c.Natives) > 0 {
		opts = append(opts, interpreter.WithNatives(c.Natives...))
	}
	globals, err := c.GlobalValues()
	if err != nil {
		return nil, err
	}
	for _, name := range sortedKeys(globals) {
		opts = append(opts, interpreter.WithGlobal(name, globals[name]))
	}
	return opts, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
