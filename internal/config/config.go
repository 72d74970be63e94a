package config

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/fmcheck/internal/errors"
	"github.com/thoreinstein/fmcheck/internal/paths"
	"github.com/thoreinstein/fmcheck/internal/validator"
	"github.com/thoreinstein/fmcheck/pkg/fileutil"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "FMCHECK"

// DefaultExtensions are the file extensions collected from directories.
var DefaultExtensions = []string{".md", ".markdown"}

// Config represents the top-level configuration structure.
type Config struct {
	Settings Settings        `mapstructure:"settings" yaml:"settings"`
	Patterns []PatternConfig `mapstructure:"patterns" yaml:"patterns"`

	// Path is the file the configuration was loaded from.
	Path string `mapstructure:"-" yaml:"-"`
}

// Settings holds process-wide options.
type Settings struct {
	// Level is the minimum severity shown in reports.
	Level validator.Severity `mapstructure:"level" yaml:"level"`
	// FailFast stops checking a document at its first failing pattern.
	FailFast bool `mapstructure:"fail_fast" yaml:"fail_fast"`
	// Extensions are collected when a directory is given.
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`
}

// PatternConfig binds a glob pattern to a list of rules.
type PatternConfig struct {
	Name    string       `mapstructure:"name" yaml:"name"`
	Pattern string       `mapstructure:"pattern" yaml:"pattern"`
	Rules   []RuleConfig `mapstructure:"rules" yaml:"rules"`
}

// RuleConfig is the configuration of a single field rule. Severity fields
// are kept as strings so every invalid value can be reported by Validate.
type RuleConfig struct {
	FieldName      string `mapstructure:"field_name" yaml:"field_name"`
	CaseSensitive  bool   `mapstructure:"case_sensitive" yaml:"case_sensitive,omitempty"`
	Type           string `mapstructure:"type" yaml:"type,omitempty"`
	Default        any    `mapstructure:"default" yaml:"default,omitempty"`
	Level          string `mapstructure:"level" yaml:"level,omitempty"`
	IsMissing      string `mapstructure:"is_missing" yaml:"is_missing,omitempty"`
	IsNull         string `mapstructure:"is_null" yaml:"is_null,omitempty"`
	IsTypeMismatch string `mapstructure:"is_type_mismatch" yaml:"is_type_mismatch,omitempty"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before Load. Any state from a
// previous Init is discarded.
func Init() {
	viper.Reset()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("settings.level", validator.SeverityWarn.String())
	viper.SetDefault("settings.fail_fast", false)
	viper.SetDefault("settings.extensions", DefaultExtensions)
}

// Load reads the configuration file at path. If path is empty the default
// locations are searched and a missing file is an error, since a checker
// without rules has nothing to do.
func Load(path string) (*Config, error) {
	if path == "" {
		found, ok := paths.FindConfig(".")
		if !ok {
			return nil, &ConfigError{
				Err:      errors.ErrInvalidConfig,
				Problems: []error{errors.Wrapf(errors.ErrNotFound, "no config file (searched %s)", strings.Join(paths.ConfigCandidates("."), ", "))},
			}
		}
		path = found
	}

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: errors.ErrInvalidConfig, Problems: []error{err}}
	}

	raw, err := decodeRaw(path, data)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: errors.ErrInvalidConfig, Problems: []error{err}}
	}

	if err := viper.MergeConfigMap(raw); err != nil {
		return nil, &ConfigError{Path: path, Err: errors.ErrInvalidConfig, Problems: []error{err}}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := viper.Unmarshal(&cfg, hook); err != nil {
		return nil, &ConfigError{Path: path, Err: errors.ErrInvalidConfig, Problems: []error{errors.Wrap(err, "unmarshaling config")}}
	}
	cfg.Path = path

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, &ConfigError{Path: path, Err: errors.ErrInvalidConfig, Problems: errs}
	}

	return &cfg, nil
}

// decodeRaw parses the configuration document into a generic map.
func decodeRaw(path string, data []byte) (map[string]any, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		var raw map[string]any
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, "parsing TOML config")
		}
		if len(raw) == 0 {
			return nil, errors.New("config file is empty")
		}
		return raw, nil
	default:
		return decodeYAMLDocuments(data)
	}
}

// decodeYAMLDocuments merges the top-level keys of every document in data.
func decodeYAMLDocuments(data []byte) (map[string]any, error) {
	merged := make(map[string]any)
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var doc map[string]any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "parsing YAML config")
		}
		for k, v := range doc {
			merged[k] = v
		}
	}

	if len(merged) == 0 {
		return nil, errors.New("config file must contain a mapping")
	}
	return merged, nil
}

// Options converts the rule configuration to validator options. The level
// applies to every violation kind not given an explicit severity.
func (rc RuleConfig) Options() ([]validator.RuleOption, error) {
	fieldType, err := validator.ParseFieldType(rc.Type)
	if err != nil {
		return nil, err
	}

	level := validator.SeverityError
	if rc.Level != "" {
		if level, err = validator.ParseSeverity(rc.Level); err != nil {
			return nil, errors.Wrap(err, "level")
		}
	}

	opts := []validator.RuleOption{
		validator.CaseSensitive(rc.CaseSensitive),
		validator.WithType(fieldType),
		validator.WithDefault(rc.Default),
		validator.WithLevel(level),
	}

	overrides := []struct {
		key   string
		value string
		opt   func(validator.Severity) validator.RuleOption
	}{
		{"is_missing", rc.IsMissing, validator.WithMissingSeverity},
		{"is_null", rc.IsNull, validator.WithNullSeverity},
		{"is_type_mismatch", rc.IsTypeMismatch, validator.WithTypeSeverity},
	}
	for _, o := range overrides {
		if o.value == "" {
			continue
		}
		sev, err := validator.ParseSeverity(o.value)
		if err != nil {
			return nil, errors.Wrap(err, o.key)
		}
		opts = append(opts, o.opt(sev))
	}

	return opts, nil
}

// Rule builds the validator rule described by rc.
func (rc RuleConfig) Rule() (validator.Rule, error) {
	opts, err := rc.Options()
	if err != nil {
		return validator.Rule{}, err
	}
	return validator.NewRule(rc.FieldName, opts...)
}
