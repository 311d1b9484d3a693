package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ncobase/annofetch/validator"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by Load
const EnvPrefix = "ANNOFETCH"

// Config represents the configuration implementation.
type Config struct {
	AppName string
	API     *API
	Fetch   *Fetch
	Output  string
	Logger  *Logger
	Tracer  *Tracer
	Sentry  *Sentry
}

// Load reads the optional config file and environment into v and builds a
// validated Config from it. Flags bound to v beforehand take precedence.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v, configPath); err != nil {
		return nil, err
	}

	cfg := &Config{
		AppName: getStringOrDefault(v, "app_name", "annofetch"),
		API:     getAPIConfig(v),
		Fetch:   getFetchConfig(v),
		Output:  v.GetString("output"),
		Logger:  getLoggerConfig(v),
		Tracer:  getTracerConfig(v),
		Sentry:  getSentryConfig(v),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// readConfigFile reads an explicit config file, or the first config.* found
// on the search path. Only the explicit file is mandatory.
func readConfigFile(v *viper.Viper, configPath string) error {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.annofetch")
		v.AddConfigPath("/etc/annofetch")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	sections := []struct {
		name  string
		value any
	}{
		{"api", c.API},
		{"fetch", c.Fetch},
		{"logger", c.Logger},
		{"tracing", c.Tracer},
		{"sentry", c.Sentry},
	}

	var problems []string
	for _, section := range sections {
		errs := validator.ValidateStruct(section.value)
		keys := make([]string, 0, len(errs))
		for k := range errs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			problems = append(problems, fmt.Sprintf("%s.%s: %s", section.name, k, errs[k]))
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
