// Package config loads flashgenie settings from defaults, an optional YAML
// file, and FLASHGENIE_* environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/alexisbeaulieu97/flashgenie/internal/ports"
	apperrors "github.com/alexisbeaulieu97/flashgenie/pkg/errors"
)

// EnvPrefix namespaces every environment override.
const EnvPrefix = "FLASHGENIE"

// FileName is the config file looked up in the config directory.
const FileName = "config.yaml"

// Config is the fully resolved application configuration.
type Config struct {
	Service ServiceConfig `mapstructure:"service"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// ServiceConfig locates and bounds the generation service.
type ServiceConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,http_url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"min=1s"`
	Breaker BreakerConfig `mapstructure:"breaker"`
}

// BreakerConfig tunes the circuit breaker around the service.
type BreakerConfig struct {
	MaxFailures uint32        `mapstructure:"max_failures" validate:"min=1"`
	OpenTimeout time.Duration `mapstructure:"open_timeout" validate:"min=1s"`
}

// StorageConfig selects the preference backend.
type StorageConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=file sqlite memory"`
	Path    string `mapstructure:"path"`
}

// LogConfig controls log verbosity and sinks.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
	// File receives logs while the terminal UI is running.
	File string `mapstructure:"file"`
}

// TracingConfig toggles OpenTelemetry export.
type TracingConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Exporter string `mapstructure:"exporter" validate:"oneof=noop stdout"`
}

// LoadOptions parameterise Load.
type LoadOptions struct {
	// Dir is the flashgenie config directory holding config.yaml and the
	// default preference and log files.
	Dir string
	// Path, when set, names an explicit config file which must exist.
	Path   string
	Logger ports.Logger
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// Load resolves configuration in precedence order defaults, file, env.
func Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	v := viper.New()
	setDefaults(v, opts.Dir)

	v.SetConfigType("yaml")
	explicit := opts.Path != ""
	if explicit {
		v.SetConfigFile(opts.Path)
	} else {
		v.AddConfigPath(opts.Dir)
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case !explicit && errors.As(err, &notFound):
			logDebug(ctx, opts.Logger, "no config file found, using defaults", map[string]interface{}{"dir": opts.Dir})
		default:
			path := opts.Path
			if path == "" {
				path = filepath.Join(opts.Dir, FileName)
			}
			logError(ctx, opts.Logger, "failed to read config file", err, map[string]interface{}{"path": path})
			return nil, apperrors.NewParseError(path, err)
		}
	} else {
		logDebug(ctx, opts.Logger, "config file loaded", map[string]interface{}{"path": v.ConfigFileUsed()})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.NewParseError(v.ConfigFileUsed(), fmt.Errorf("unmarshal config: %w", err))
	}

	cfg.normalize(opts.Dir)
	if err := cfg.Validate(); err != nil {
		logError(ctx, opts.Logger, "configuration failed validation", err, nil)
		return nil, err
	}

	logInfo(ctx, opts.Logger, "configuration resolved", map[string]interface{}{
		"base_url":        cfg.Service.BaseURL,
		"storage_backend": cfg.Storage.Backend,
		"log_level":       cfg.Log.Level,
		"tracing":         cfg.Tracing.Enabled,
	})
	return &cfg, nil
}

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault("service.base_url", "http://localhost:8000")
	v.SetDefault("service.timeout", 30*time.Second)
	v.SetDefault("service.breaker.max_failures", 5)
	v.SetDefault("service.breaker.open_timeout", 30*time.Second)
	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", filepath.Join(dir, "flashgenie.log"))
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.exporter", "noop")
}

// normalize fills the backend-specific default storage path and canonicalises
// enumerations.
func (c *Config) normalize(dir string) {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	c.Service.BaseURL = strings.TrimSpace(c.Service.BaseURL)

	if c.Storage.Path == "" {
		switch c.Storage.Backend {
		case "sqlite":
			c.Storage.Path = filepath.Join(dir, "preferences.db")
		default:
			c.Storage.Path = filepath.Join(dir, "preferences.json")
		}
	}
}

// Validate checks struct constraints and reports the first offending field
// as a ValidationError keyed by its config path.
func (c *Config) Validate() error {
	err := validatorInstance().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.NewValidationError("", err.Error(), err)
	}
	first := fieldErrs[0]
	field := configKey(first.Namespace())
	return apperrors.NewValidationError(field, fmt.Sprintf("failed %q constraint (value %v)", first.Tag(), first.Value()), err)
}

var fieldKeys = map[string]string{
	"Service":     "service",
	"BaseURL":     "base_url",
	"Timeout":     "timeout",
	"Breaker":     "breaker",
	"MaxFailures": "max_failures",
	"OpenTimeout": "open_timeout",
	"Storage":     "storage",
	"Backend":     "backend",
	"Path":        "path",
	"Log":         "log",
	"Level":       "level",
	"Format":      "format",
	"File":        "file",
	"Tracing":     "tracing",
	"Enabled":     "enabled",
	"Exporter":    "exporter",
}

// configKey maps a validator namespace such as Config.Service.BaseURL to the
// dotted key service.base_url.
func configKey(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 0 && parts[0] == "Config" {
		parts = parts[1:]
	}
	for i, part := range parts {
		if key, ok := fieldKeys[part]; ok {
			parts[i] = key
		}
	}
	return strings.Join(parts, ".")
}

// DefaultDir returns the per-user flashgenie config directory.
func DefaultDir() (string, error) {
	if dir := os.Getenv(EnvPrefix + "_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, "flashgenie"), nil
}

func logDebug(ctx context.Context, logger ports.Logger, msg string, fields map[string]interface{}) {
	if logger == nil {
		return
	}
	logger.Debug(ctx, msg, flattenFields(fields)...)
}

func logInfo(ctx context.Context, logger ports.Logger, msg string, fields map[string]interface{}) {
	if logger == nil {
		return
	}
	logger.Info(ctx, msg, flattenFields(fields)...)
}

func logError(ctx context.Context, logger ports.Logger, msg string, err error, fields map[string]interface{}) {
	if logger == nil {
		return
	}
	payload := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		payload[k] = v
	}
	payload["error"] = err
	logger.Error(ctx, msg, flattenFields(payload)...)
}

func flattenFields(fields map[string]interface{}) []interface{} {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]interface{}, 0, len(fields)*2)
	for _, k := range keys {
		args = append(args, k, fields[k])
	}
	return args
}
