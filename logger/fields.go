package logger

import (
	"time"

	"go.uber.org/zap"
)

// Field constructors, re-exported so callers do not import zap directly.

// String creates a string field
func String(key, value string) Field {
	return zap.String(key, value)
}

// Int creates an integer field
func Int(key string, value int) Field {
	return zap.Int(key, value)
}

// Bool creates a boolean field
func Bool(key string, value bool) Field {
	return zap.Bool(key, value)
}

// Duration creates a duration field
func Duration(key string, value time.Duration) Field {
	return zap.Duration(key, value)
}

// Error creates an error field under the standard "error" key
func Error(err error) Field {
	return zap.Error(err)
}

// Any creates a field with an arbitrary value
func Any(key string, value interface{}) Field {
	return zap.Any(key, value)
}

// Strings creates a string slice field
func Strings(key string, values []string) Field {
	return zap.Strings(key, values)
}
