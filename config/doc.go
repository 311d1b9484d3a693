// Package config loads annofetch settings with Viper from flags, environment
// variables, an optional config file and built-in defaults, in that order of
// precedence.
//
// # Configuration Loading
//
// Bind command-line flags first, then load:
//
//	v := viper.New()
//	_ = v.BindPFlag("api.endpoint", cmd.Flags().Lookup("endpoint"))
//	cfg, err := config.Load(v, configFile)
//
// Without an explicit file, config.{yaml,json,toml} is looked up in ".",
// "$HOME/.annofetch" and "/etc/annofetch". Not finding one is fine; an
// explicit --config that cannot be read is an error.
//
// # Configuration Format
//
//	api:
//	  endpoint: https://hypothes.is/api/search
//	  timeout: 30s
//	fetch:
//	  limit: 200
//	  max_pages: 0
//	  stop_on_repeat: false
//	logger:
//	  level: warn
//	  format: text
//	  output: stderr
//	tracing:
//	  endpoint: localhost:4317
//	  sampling_rate: 1.0
//
// # Environment Variables
//
// Every key can be overridden with the ANNOFETCH_ prefix, dots replaced by
// underscores:
//
//	ANNOFETCH_API_ENDPOINT=http://localhost:5000/api/search
//	ANNOFETCH_LOGGER_LEVEL=debug
package config
