package config

import (
	"time"

	"github.com/spf13/viper"
)

// Tracer config struct for OpenTelemetry
type Tracer struct {
	Endpoint string `json:"endpoint" yaml:"endpoint"` // OTLP gRPC endpoint, empty disables export
	Insecure bool   `json:"insecure" yaml:"insecure"`

	// Sampling configuration
	SamplingRate float64 `json:"sampling_rate" yaml:"sampling_rate" validate:"gte=0,lte=1"` // 0.0 to 1.0

	// Performance tuning
	BatchTimeout  time.Duration `json:"batch_timeout" yaml:"batch_timeout"`
	ExportTimeout time.Duration `json:"export_timeout" yaml:"export_timeout"`
}

// getTracerConfig get tracer config with defaults
func getTracerConfig(v *viper.Viper) *Tracer {
	return &Tracer{
		Endpoint:      v.GetString("tracing.endpoint"),
		Insecure:      getBoolOrDefault(v, "tracing.insecure", true),
		SamplingRate:  getFloat64OrDefault(v, "tracing.sampling_rate", 1.0),
		BatchTimeout:  getDurationOrDefault(v, "tracing.batch_timeout", 5*time.Second),
		ExportTimeout: getDurationOrDefault(v, "tracing.export_timeout", 10*time.Second),
	}
}

// Enabled reports whether spans should be exported
func (t *Tracer) Enabled() bool {
	return t != nil && t.Endpoint != ""
}

// Sentry config struct, an empty DSN disables reporting
type Sentry struct {
	DSN         string  `json:"dsn" yaml:"dsn"`
	Environment string  `json:"environment" yaml:"environment"`
	SampleRate  float64 `json:"sample_rate" yaml:"sample_rate" validate:"gte=0,lte=1"`
}

// getSentryConfig get sentry config
func getSentryConfig(v *viper.Viper) *Sentry {
	return &Sentry{
		DSN:         v.GetString("sentry.dsn"),
		Environment: getStringOrDefault(v, "sentry.environment", "production"),
		SampleRate:  getFloat64OrDefault(v, "sentry.sample_rate", 1.0),
	}
}

// Enabled reports whether errors should be reported
func (s *Sentry) Enabled() bool {
	return s != nil && s.DSN != ""
}
