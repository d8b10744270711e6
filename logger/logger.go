package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ANSI color codes for development logging
const (
	Reset      = "\033[0m"
	DebugColor = "\033[36m" // Cyan
	InfoColor  = "\033[32m" // Green
	WarnColor  = "\033[33m" // Yellow
	ErrorColor = "\033[31m" // Red
	FatalColor = "\033[35m" // Magenta
)

// logger implements the Logger interface using zap
type logger struct {
	zap *zap.Logger
}

// NewLogger creates a new logger with the given configuration
func NewLogger(config Config) Logger {
	var zapLogger *zap.Logger

	// Determine log level
	logLevel := zapcore.InfoLevel
	switch strings.ToLower(config.Level) {
	case "debug":
		logLevel = zapcore.DebugLevel
	case "info":
		logLevel = zapcore.InfoLevel
	case "warn", "warning":
		logLevel = zapcore.WarnLevel
	case "error":
		logLevel = zapcore.ErrorLevel
	}

	if config.Format == "json" {
		zapConfig := zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(logLevel)
		zapLogger, _ = zapConfig.Build(zap.AddCallerSkip(1))
	} else {
		zapLogger = createDevelopmentLogger(logLevel)
	}

	return &logger{zap: zapLogger}
}

// NewDevelopmentLogger creates a development logger with colors
func NewDevelopmentLogger() Logger {
	return &logger{zap: createDevelopmentLogger(zapcore.DebugLevel)}
}

// NewProductionLogger creates a production logger
func NewProductionLogger() Logger {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	zapLogger, _ := config.Build(zap.AddCallerSkip(1))
	return &logger{zap: zapLogger}
}

// NewNoopLogger creates a logger that discards everything
func NewNoopLogger() Logger {
	return &logger{zap: zap.NewNop()}
}

// NewZapLogger wraps an existing zap logger, useful with zaptest in tests
func NewZapLogger(zapLogger *zap.Logger) Logger {
	return &logger{zap: zapLogger}
}

// createDevelopmentLogger creates a development logger with custom formatting
func createDevelopmentLogger(level zapcore.Level) *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    customColorLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	encoder := zapcore.NewConsoleEncoder(encoderConfig)

	core := zapcore.NewCore(
		encoder,
		zapcore.AddSync(os.Stdout),
		zap.NewAtomicLevelAt(level),
	)

	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
}

// customColorLevelEncoder adds colors to log levels
func customColorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var color string
	switch level {
	case zapcore.DebugLevel:
		color = DebugColor
	case zapcore.InfoLevel:
		color = InfoColor
	case zapcore.WarnLevel:
		color = WarnColor
	case zapcore.ErrorLevel:
		color = ErrorColor
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		color = FatalColor
	default:
		color = Reset
	}

	levelText := level.CapitalString()
	enc.AppendString(color + levelText + Reset)
}

// Implementation of Logger interface

func (l *logger) Debug(msg string, fields ...Field) {
	l.zap.Debug(msg, fields...)
}

func (l *logger) Info(msg string, fields ...Field) {
	l.zap.Info(msg, fields...)
}

func (l *logger) Warn(msg string, fields ...Field) {
	l.zap.Warn(msg, fields...)
}

func (l *logger) Error(msg string, fields ...Field) {
	l.zap.Error(msg, fields...)
}

func (l *logger) With(fields ...Field) Logger {
	return &logger{zap: l.zap.With(fields...)}
}

func (l *logger) Named(name string) Logger {
	return &logger{zap: l.zap.Named(name)}
}

func (l *logger) Sync() error {
	return l.zap.Sync()
}
