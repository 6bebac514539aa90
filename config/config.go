// Package config loads authid settings from YAML and the environment and
// turns them into codec options and a key source.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/zero-day-ai/authid"
	"github.com/zero-day-ai/authid/keysource"
	"github.com/zero-day-ai/authid/validation"
)

// Key source kinds.
const (
	SourceEnv   = "env"
	SourceFile  = "file"
	SourceRedis = "redis"
	SourceEtcd  = "etcd"
)

// DefaultKeyEnv is the variable read by the env key source when none is
// configured.
const DefaultKeyEnv = "AUTHID_KEY"

// Config represents an authid.yaml configuration file.
type Config struct {
	// Prefix controls the "truestamp" prefix on binary Ids.
	// Default: true
	Prefix *bool `yaml:"prefix,omitempty" env:"AUTHID_PREFIX"`

	// Key selects where the codec key comes from.
	Key KeyConfig `yaml:"key"`

	// Validation adds rules on top of the built-in field checks.
	Validation ValidationConfig `yaml:"validation,omitempty"`
}

// KeyConfig selects and configures the key source.
type KeyConfig struct {
	// Source is one of env, file, redis or etcd.
	// Default: env
	Source string `yaml:"source,omitempty" env:"AUTHID_KEY_SOURCE" validate:"omitempty,oneof=env file redis etcd"`

	// Encoding of the stored key: raw, hex or base64.
	// Default: raw
	Encoding string `yaml:"encoding,omitempty" env:"AUTHID_KEY_ENCODING" validate:"omitempty,oneof=raw hex base64"`

	// Env is the variable read by the env source.
	// Default: AUTHID_KEY
	Env string `yaml:"env,omitempty" env:"AUTHID_KEY_ENV"`

	// File is the path read by the file source.
	File string `yaml:"file,omitempty" env:"AUTHID_KEY_FILE"`

	Redis RedisConfig `yaml:"redis,omitempty"`
	Etcd  EtcdConfig  `yaml:"etcd,omitempty"`
}

// RedisConfig configures the redis key source.
type RedisConfig struct {
	URL string `yaml:"url,omitempty" env:"AUTHID_REDIS_URL" validate:"omitempty,url"`
	Key string `yaml:"key,omitempty" env:"AUTHID_REDIS_KEY"`

	// ConnectTimeout is a Go duration string.
	// Default: 5s
	ConnectTimeout string `yaml:"connect_timeout,omitempty"`
}

// EtcdConfig configures the etcd key source.
type EtcdConfig struct {
	Endpoints []string `yaml:"endpoints,omitempty" env:"AUTHID_ETCD_ENDPOINTS" envSeparator:"," validate:"dive,hostname_port"`
	Key       string   `yaml:"key,omitempty" env:"AUTHID_ETCD_KEY"`

	// DialTimeout is a Go duration string.
	// Default: 5s
	DialTimeout string `yaml:"dial_timeout,omitempty"`

	TLS *keysource.TLSConfig `yaml:"tls,omitempty"`
}

// ValidationConfig lists extra validators.
type ValidationConfig struct {
	// SchemaFile is a JSON Schema document checked against full records.
	SchemaFile string `yaml:"schema_file,omitempty"`

	// Rules are CEL expressions over the record's json fields.
	Rules []validation.Rule `yaml:"rules,omitempty" validate:"dive"`
}

// GetPrefix returns the configured prefix setting or true.
func (c *Config) GetPrefix() bool {
	if c == nil || c.Prefix == nil {
		return true
	}
	return *c.Prefix
}

// GetSource returns the configured key source kind or SourceEnv.
func (k *KeyConfig) GetSource() string {
	if k == nil || k.Source == "" {
		return SourceEnv
	}
	return k.Source
}

// GetEncoding returns the configured key encoding or raw.
func (k *KeyConfig) GetEncoding() keysource.Encoding {
	if k == nil || k.Encoding == "" {
		return keysource.EncodingRaw
	}
	return keysource.Encoding(k.Encoding)
}

// GetEnv returns the configured variable name or DefaultKeyEnv.
func (k *KeyConfig) GetEnv() string {
	if k == nil || k.Env == "" {
		return DefaultKeyEnv
	}
	return k.Env
}

// GetConnectTimeout parses the connect timeout string and returns a duration.
// Returns the default value if not set or invalid.
func (r *RedisConfig) GetConnectTimeout() time.Duration {
	return durationOr(r.ConnectTimeout, 5*time.Second)
}

// GetDialTimeout parses the dial timeout string and returns a duration.
// Returns the default value if not set or invalid.
func (e *EtcdConfig) GetDialTimeout() time.Duration {
	return durationOr(e.DialTimeout, 5*time.Second)
}

func durationOr(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// Load reads an authid.yaml file, applies environment overrides and
// validates the result. If path is a directory, it looks for authid.yaml or
// authid.yml in that directory.
func Load(path string) (*Config, error) {
	configPath, err := resolve(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return finish(&cfg)
}

// LoadFromEnv builds a Config from environment variables only.
func LoadFromEnv() (*Config, error) {
	return finish(&Config{})
}

func resolve(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat path: %w", err)
	}
	if !info.IsDir() {
		return path, nil
	}
	for _, name := range []string{"authid.yaml", "authid.yml"} {
		candidate := filepath.Join(path, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no authid.yaml or authid.yml found in %s", path)
}

func finish(cfg *Config) (*Config, error) {
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field formats and that the selected key source has what
// it needs.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return formatValidationError(err)
	}

	var problems []string
	k := &c.Key
	switch k.GetSource() {
	case SourceFile:
		if k.File == "" {
			problems = append(problems, "key.file is required for the file source")
		}
	case SourceRedis:
		if k.Redis.URL == "" {
			problems = append(problems, "key.redis.url is required for the redis source")
		}
		if k.Redis.Key == "" {
			problems = append(problems, "key.redis.key is required for the redis source")
		}
	case SourceEtcd:
		if len(k.Etcd.Endpoints) == 0 {
			problems = append(problems, "key.etcd.endpoints is required for the etcd source")
		}
		if k.Etcd.Key == "" {
			problems = append(problems, "key.etcd.key is required for the etcd source")
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	messages := []string{"configuration validation failed:"}
	for _, fe := range validationErrors {
		msg := fmt.Sprintf("  - field '%s' failed validation: %s", fe.Namespace(), fe.Tag())
		if fe.Param() != "" {
			msg += fmt.Sprintf(" (param: %s)", fe.Param())
		}
		messages = append(messages, msg)
	}
	return errors.New(strings.Join(messages, "\n"))
}

// CodecOptions returns the options for authid.NewCodec described by the
// configuration. extra options are appended.
func (c *Config) CodecOptions(extra ...authid.Option) ([]authid.Option, error) {
	opts := []authid.Option{authid.WithPrefix(c.GetPrefix())}

	if c.Validation.SchemaFile != "" {
		doc, err := os.ReadFile(c.Validation.SchemaFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema file: %w", err)
		}
		js, err := validation.NewJSONSchema(doc)
		if err != nil {
			return nil, err
		}
		opts = append(opts, authid.WithValidator(js))
	}

	if len(c.Validation.Rules) > 0 {
		rules, err := validation.NewCEL(c.Validation.Rules...)
		if err != nil {
			return nil, err
		}
		opts = append(opts, authid.WithValidator(rules))
	}

	return append(opts, extra...), nil
}

// NewCodec builds a codec from CodecOptions.
func (c *Config) NewCodec(extra ...authid.Option) (*authid.Codec, error) {
	opts, err := c.CodecOptions(extra...)
	if err != nil {
		return nil, err
	}
	return authid.NewCodec(opts...), nil
}

// KeySource builds the configured key source, wrapped with keysource.Traced.
// Sources holding connections should be released with keysource.CloseWithLog.
func (c *Config) KeySource() (keysource.Source, error) {
	k := &c.Key
	enc := k.GetEncoding()

	var src keysource.Source
	switch k.GetSource() {
	case SourceEnv:
		src = keysource.Env{Variable: k.GetEnv(), Encoding: enc}
	case SourceFile:
		src = keysource.File{Path: k.File, Encoding: enc}
	case SourceRedis:
		r, err := keysource.NewRedis(keysource.RedisOptions{
			URL:            k.Redis.URL,
			Key:            k.Redis.Key,
			Encoding:       enc,
			ConnectTimeout: k.Redis.GetConnectTimeout(),
		})
		if err != nil {
			return nil, err
		}
		src = r
	case SourceEtcd:
		e, err := keysource.NewEtcd(keysource.EtcdConfig{
			Endpoints:   k.Etcd.Endpoints,
			Key:         k.Etcd.Key,
			Encoding:    enc,
			DialTimeout: k.Etcd.GetDialTimeout(),
			TLS:         k.Etcd.TLS,
		})
		if err != nil {
			return nil, err
		}
		src = e
	default:
		return nil, fmt.Errorf("unknown key source %q", k.Source)
	}

	return keysource.Traced(src, nil, nil), nil
}
