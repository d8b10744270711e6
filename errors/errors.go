package errors

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// ERROR CODES
// =============================================================================

// Error code constants for structured errors
const (
	CodeMethodSignature      = "METHOD_SIGNATURE"
	CodeDuplicateBinding     = "DUPLICATE_BINDING"
	CodeModuleInstantiation  = "MODULE_INSTANTIATION"
	CodeFactoryConfiguration = "FACTORY_CONFIGURATION"
	CodeMissingBinding       = "MISSING_BINDING"
	CodeExternalValidation   = "EXTERNAL_VALIDATION"
	CodeCheckpointFailed     = "CHECKPOINT_FAILED"
	CodeInvalidConfig        = "INVALID_CONFIG"
	CodeInvalidElement       = "INVALID_ELEMENT"
	CodeInvalidInjector      = "INVALID_INJECTOR"
)

// =============================================================================
// WELD ERROR (STRUCTURED ERROR)
// =============================================================================

// Error represents a structured error with context
type Error struct {
	Code    string
	Message string
	Cause   error
	Context map[string]interface{}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is interface for Error
// Compares by error code, allowing matching against sentinel errors
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code != "" && e.Code == t.Code
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// ErrMethodSignature creates a method signature error
func ErrMethodSignature(method, reason string) *Error {
	return &Error{
		Code:    CodeMethodSignature,
		Message: "injector method '" + method + "' " + reason,
		Context: map[string]interface{}{"method": method},
	}
}

// ErrDuplicateBinding creates a duplicate binding error
func ErrDuplicateBinding(key, scope string) *Error {
	return &Error{
		Code:    CodeDuplicateBinding,
		Message: "double-bound key '" + key + "' in scope '" + scope + "'",
		Context: map[string]interface{}{"key": key, "scope": scope},
	}
}

// ErrModuleInstantiation creates a module instantiation error
func ErrModuleInstantiation(module string, cause error) *Error {
	return &Error{
		Code:    CodeModuleInstantiation,
		Message: "error creating module '" + module + "'",
		Cause:   cause,
		Context: map[string]interface{}{"module": module},
	}
}

// ErrFactoryConfiguration creates a factory configuration error
func ErrFactoryConfiguration(factory string, cause error) *Error {
	return &Error{
		Code:    CodeFactoryConfiguration,
		Message: "factory '" + factory + "' could not be created",
		Cause:   cause,
		Context: map[string]interface{}{"factory": factory},
	}
}

// ErrMissingBinding creates a missing binding error
func ErrMissingBinding(key, scope string) *Error {
	return &Error{
		Code:    CodeMissingBinding,
		Message: "no binding found for key '" + key + "' reaching scope '" + scope + "'",
		Context: map[string]interface{}{"key": key, "scope": scope},
	}
}

// ErrExternalValidation creates an external validation error
func ErrExternalValidation(cause error) *Error {
	return &Error{
		Code:    CodeExternalValidation,
		Message: "graph validator rejected the resolved bindings",
		Cause:   cause,
	}
}

// ErrCheckpointFailed creates a checkpoint error aggregating a phase's failures
func ErrCheckpointFailed(phase string, count int, cause error) *Error {
	return &Error{
		Code:    CodeCheckpointFailed,
		Message: fmt.Sprintf("aborting after phase '%s': %d error(s) collected", phase, count),
		Cause:   cause,
		Context: map[string]interface{}{"phase": phase, "count": count},
	}
}

// ErrInvalidConfig creates a config error
func ErrInvalidConfig(key string, cause error) *Error {
	return &Error{
		Code:    CodeInvalidConfig,
		Message: "invalid configuration for key '" + key + "'",
		Cause:   cause,
		Context: map[string]interface{}{"config_key": key},
	}
}

// ErrInvalidElement creates an element dispatch error
func ErrInvalidElement(module string, element string) *Error {
	return &Error{
		Code:    CodeInvalidElement,
		Message: "module '" + module + "' produced an unsupported element " + element,
		Context: map[string]interface{}{"module": module, "element": element},
	}
}

// ErrInvalidInjector creates an injector description error
func ErrInvalidInjector(injector string, reasons []string) *Error {
	return &Error{
		Code:    CodeInvalidInjector,
		Message: "injector '" + injector + "' cannot be described: " + strings.Join(reasons, "; "),
		Context: map[string]interface{}{"injector": injector, "reasons": reasons},
	}
}

// =============================================================================
// STANDARD ERRORS PACKAGE INTEGRATION
// =============================================================================

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around errors.Is from the standard library.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target, and if so,
// sets target to that error value and returns true. Otherwise, it returns false.
// This is a convenience wrapper around errors.As from the standard library.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err, if err's
// type contains an Unwrap method returning error. Otherwise, Unwrap returns nil.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// New returns an error that formats as the given text.
// This is a convenience wrapper around errors.New from the standard library.
func New(text string) error {
	return errors.New(text)
}

// Join returns an error that wraps the given errors.
// Any nil error values are discarded.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// =============================================================================
// SENTINEL ERRORS (for use with Is)
// =============================================================================

// Sentinel errors that can be used with errors.Is comparisons
var (
	// ErrMethodSignatureSentinel is a sentinel error for method signature violations
	ErrMethodSignatureSentinel = &Error{Code: CodeMethodSignature}

	// ErrDuplicateBindingSentinel is a sentinel error for double-bound keys
	ErrDuplicateBindingSentinel = &Error{Code: CodeDuplicateBinding}

	// ErrModuleInstantiationSentinel is a sentinel error for module creation failures
	ErrModuleInstantiationSentinel = &Error{Code: CodeModuleInstantiation}

	// ErrFactoryConfigurationSentinel is a sentinel error for factory failures
	ErrFactoryConfigurationSentinel = &Error{Code: CodeFactoryConfiguration}

	// ErrMissingBindingSentinel is a sentinel error for unresolvable keys
	ErrMissingBindingSentinel = &Error{Code: CodeMissingBinding}

	// ErrExternalValidationSentinel is a sentinel error for validator rejections
	ErrExternalValidationSentinel = &Error{Code: CodeExternalValidation}

	// ErrCheckpointFailedSentinel is a sentinel error for aborted checkpoints
	ErrCheckpointFailedSentinel = &Error{Code: CodeCheckpointFailed}

	// ErrInvalidConfigSentinel is a sentinel error for invalid config
	ErrInvalidConfigSentinel = &Error{Code: CodeInvalidConfig}
)

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsMethodSignature checks if the error is a method signature error
func IsMethodSignature(err error) bool {
	return Is(err, ErrMethodSignatureSentinel)
}

// IsDuplicateBinding checks if the error is a duplicate binding error
func IsDuplicateBinding(err error) bool {
	return Is(err, ErrDuplicateBindingSentinel)
}

// IsMissingBinding checks if the error is a missing binding error
func IsMissingBinding(err error) bool {
	return Is(err, ErrMissingBindingSentinel)
}

// IsCheckpointFailed checks if the error is an aborted checkpoint error
func IsCheckpointFailed(err error) bool {
	return Is(err, ErrCheckpointFailedSentinel)
}
