package berth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xraph/go-utils/errs"
)

// =============================================================================
// ERROR CODES
// =============================================================================

const (
	// CodeInvalidFactory indicates a factory function is nil
	CodeInvalidFactory = "INVALID_FACTORY"

	// CodeInvalidIdentity indicates a zero ID was used for a service or dependency
	CodeInvalidIdentity = "INVALID_IDENTITY"

	// CodeServiceNotFound indicates a service has no registered factory
	CodeServiceNotFound = "SERVICE_NOT_FOUND"

	// CodeMissingDependency indicates a declared dependency has no registered factory
	CodeMissingDependency = "MISSING_DEPENDENCY"

	// CodeCircularDependency indicates a dependency edge would close a cycle
	CodeCircularDependency = "CIRCULAR_DEPENDENCY"

	// CodeServiceError indicates a factory failed
	CodeServiceError = "SERVICE_ERROR"

	// CodeTypeMismatch indicates a type mismatch during service resolution
	CodeTypeMismatch = "TYPE_MISMATCH"

	// CodeEnvNotAttached indicates resolution before the ambient env was attached
	CodeEnvNotAttached = "ENV_NOT_ATTACHED"

	// CodeEnvAlreadyAttached indicates a second AttachEnv call
	CodeEnvAlreadyAttached = "ENV_ALREADY_ATTACHED"

	// CodeInvalidEnv indicates a nil env was attached
	CodeInvalidEnv = "INVALID_ENV"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

// ErrInvalidFactory is returned when a nil factory is provided.
var ErrInvalidFactory = errs.NewError(CodeInvalidFactory, "factory cannot be nil", nil)

// ErrInvalidIdentity is returned when a zero ID is registered or declared as a dependency.
var ErrInvalidIdentity = errs.NewError(CodeInvalidIdentity, "service identity cannot be zero", nil)

// ErrEnvNotAttached is returned by strict resolution before AttachEnv.
var ErrEnvNotAttached = errs.NewError(CodeEnvNotAttached, "ambient env not attached", nil)

// ErrEnvAttached is returned when AttachEnv is called more than once.
var ErrEnvAttached = errs.NewError(CodeEnvAlreadyAttached, "ambient env already attached", nil)

// ErrInvalidEnv is returned when a nil env is attached.
var ErrInvalidEnv = errs.NewError(CodeInvalidEnv, "ambient env cannot be nil", nil)

// ErrServiceNotFoundSentinel is a sentinel error for service not found (for error checking).
var ErrServiceNotFoundSentinel = errs.NewError(CodeServiceNotFound, "service not found", nil)

// ErrMissingDependencySentinel is a sentinel error for missing dependencies (for error checking).
var ErrMissingDependencySentinel = errs.NewError(CodeMissingDependency, "missing dependency", nil)

// ErrCircularDependencySentinel is a sentinel error for circular dependency (for error checking).
var ErrCircularDependencySentinel = errs.NewError(CodeCircularDependency, "circular dependency", nil)

// ErrTypeMismatchSentinel is a sentinel error for type mismatch during resolution.
var ErrTypeMismatchSentinel = errs.NewError(CodeTypeMismatch, "type mismatch", nil)

// ErrNilInstance is the cause reported when a factory returns neither an instance nor an error.
var ErrNilInstance = errors.New("factory returned a nil instance")

// =============================================================================
// ERROR CONSTRUCTORS
// =============================================================================

// ErrServiceNotFound creates an error for when a service is not registered
func ErrServiceNotFound(id ID) *errs.Error {
	return errs.NewError(
		CodeServiceNotFound,
		fmt.Sprintf("service '%s' not found", id),
		nil,
	)
}

// ErrMissingDependency creates an error for a declared dependency that is not registered
func ErrMissingDependency(service, dependency ID) *errs.Error {
	return errs.NewError(
		CodeMissingDependency,
		fmt.Sprintf("service '%s' depends on unregistered '%s'", service, dependency),
		nil,
	)
}

// ErrCircularDependency creates an error for circular dependency detection
func ErrCircularDependency(cycle []ID) *errs.Error {
	return errs.NewError(
		CodeCircularDependency,
		"circular dependency detected: "+formatPath(cycle),
		nil,
	)
}

// NewServiceError creates an error for service operations
func NewServiceError(id ID, operation string, cause error) *errs.Error {
	return errs.NewError(
		CodeServiceError,
		fmt.Sprintf("service '%s' error during %s", id, operation),
		cause,
	)
}

// ErrTypeMismatch creates an error for type mismatch during resolution
func ErrTypeMismatch(id ID, actual any) *errs.Error {
	return errs.NewError(
		CodeTypeMismatch,
		fmt.Sprintf("service '%s' type mismatch: got %T", id, actual),
		nil,
	)
}

func formatPath(path []ID) string {
	parts := make([]string, len(path))
	for i, id := range path {
		parts[i] = id.String()
	}

	return strings.Join(parts, " -> ")
}
