// Package appconfig loads CLI settings from defaults, an optional config file,
// BLUEPRINT_* environment variables and bound command-line flags.
package appconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	blueprinterrors "github.com/KyleBlankRollins/blueprint-sub000/pkg/errors"
)

// EnvPrefix is prepended to every environment override, e.g. BLUEPRINT_LOG_LEVEL.
const EnvPrefix = "BLUEPRINT"

// DefaultFile is read from the working directory when no config path is given.
const DefaultFile = "blueprint.yaml"

// Config holds the resolved CLI settings.
type Config struct {
	Log struct {
		Level string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
		Human *bool  `mapstructure:"human"`
	} `mapstructure:"log"`

	Output struct {
		Path   string `mapstructure:"path"`
		Format string `mapstructure:"format" validate:"oneof=json yaml"`
	} `mapstructure:"output"`

	Core struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"core"`

	Manifests        []string `mapstructure:"manifests" validate:"dive,required"`
	SortDependencies bool     `mapstructure:"sort_dependencies"`
}

// Defaults returns the settings used when nothing overrides them.
func Defaults() map[string]any {
	return map[string]any{
		"log.level":         "info",
		"output.path":       "",
		"output.format":     "json",
		"core.enabled":      true,
		"manifests":         []string{},
		"sort_dependencies": true,
	}
}

// New returns a viper instance primed with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// log.human has no default so that an unset value can fall back to TTY detection.
	_ = v.BindEnv("log.human")
	return v
}

// Load reads the config file at path (or DefaultFile when path is empty and the
// file exists) into v and returns the validated settings.
func Load(v *viper.Viper, path string) (*Config, error) {
	switch {
	case path != "":
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, blueprinterrors.NewParseError(path, 0, err)
		}
	default:
		if _, err := os.Stat(DefaultFile); err == nil {
			v.SetConfigFile(DefaultFile)
			if err := v.ReadInConfig(); err != nil {
				return nil, blueprinterrors.NewParseError(DefaultFile, 0, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// HumanLogs reports whether console log output was requested, using fallback
// when the setting is absent.
func (c *Config) HumanLogs(fallback bool) bool {
	if c.Log.Human == nil {
		return fallback
	}
	return *c.Log.Human
}

var (
	validatorOnce     sync.Once
	validatorInstance *validator.Validate
)

func validate(cfg *Config) error {
	validatorOnce.Do(func() {
		validatorInstance = validator.New(validator.WithRequiredStructEnabled())
	})

	err := validatorInstance.Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	fe := validationErrs[0]
	return blueprinterrors.NewInvalidArgumentError(
		strings.ToLower(strings.TrimPrefix(fe.Namespace(), "Config.")),
		fmt.Sprint(fe.Value()),
		fmt.Sprintf("failed %q validation", fe.Tag()),
	)
}
