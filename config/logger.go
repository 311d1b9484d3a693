package config

import (
	"github.com/spf13/viper"
)

// Logger logger config struct
type Logger struct {
	Level      string `json:"level" yaml:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
	Format     string `json:"format" yaml:"format" validate:"oneof=text json"`
	Output     string `json:"output" yaml:"output" validate:"oneof=stderr stdout file"`
	OutputFile string `json:"output_file" yaml:"output_file" validate:"required_if=Output file"`
}

func getLoggerConfig(v *viper.Viper) *Logger {
	return &Logger{
		Level:      getStringOrDefault(v, "logger.level", "warn"),
		Format:     getStringOrDefault(v, "logger.format", "text"),
		Output:     getStringOrDefault(v, "logger.output", "stderr"),
		OutputFile: v.GetString("logger.output_file"),
	}
}
