package logger

import (
	"go.uber.org/zap"
)

// Logger represents the logging interface
type Logger interface {
	// Logging levels
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// Context and enrichment
	With(fields ...Field) Logger
	Named(name string) Logger

	// Utilities
	Sync() error
}

// Field represents a structured log field
type Field = zap.Field

// Config represents logging configuration
type Config struct {
	Level  string `yaml:"level" envconfig:"LEVEL"`
	Format string `yaml:"format" envconfig:"FORMAT"`
}
