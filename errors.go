package services

import (
	"fmt"
	"strings"

	"github.com/xraph/go-utils/errs"
)

// =============================================================================
// ERROR CODES
// =============================================================================

const (
	// CodeInvalidInstantiator indicates an instantiator is nil
	CodeInvalidInstantiator = "INVALID_INSTANTIATOR"

	// CodeInvalidManipulator indicates a manipulator is nil
	CodeInvalidManipulator = "INVALID_MANIPULATOR"

	// CodeServiceNotFound indicates a service has no definition
	CodeServiceNotFound = "SERVICE_NOT_FOUND"

	// CodeServiceAlreadyDefined indicates a service name is already taken
	CodeServiceAlreadyDefined = "SERVICE_ALREADY_DEFINED"

	// CodeCannotReplaceActive indicates an attempt to change an instantiated service
	CodeCannotReplaceActive = "CANNOT_REPLACE_ACTIVE"

	// CodeServiceDisabled indicates resolution of a disabled service
	CodeServiceDisabled = "SERVICE_DISABLED"

	// CodeContainerDisabled indicates an operation on a destroyed container
	CodeContainerDisabled = "CONTAINER_DISABLED"

	// CodeRecursiveDependency indicates a service was re-entered during its own construction
	CodeRecursiveDependency = "RECURSIVE_DEPENDENCY"

	// CodeServiceError indicates an error occurred during a service operation
	CodeServiceError = "SERVICE_ERROR"

	// CodeTypeMismatch indicates a type mismatch during typed resolution
	CodeTypeMismatch = "TYPE_MISMATCH"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

// ErrInvalidInstantiator is returned when a nil instantiator is supplied.
var ErrInvalidInstantiator = errs.NewError(CodeInvalidInstantiator, "instantiator cannot be nil", nil)

// ErrInvalidManipulator is returned when a nil manipulator is supplied.
var ErrInvalidManipulator = errs.NewError(CodeInvalidManipulator, "manipulator cannot be nil", nil)

// ErrContainerDisabled is returned by every operation once the container was destroyed.
var ErrContainerDisabled = errs.NewError(CodeContainerDisabled, "container disabled", nil)

// ErrNoSuchServiceSentinel is a sentinel for unknown services (for error checking).
var ErrNoSuchServiceSentinel = errs.NewError(CodeServiceNotFound, "no such service", nil)

// ErrServiceAlreadyDefinedSentinel is a sentinel for duplicate definitions (for error checking).
var ErrServiceAlreadyDefinedSentinel = errs.NewError(CodeServiceAlreadyDefined, "service already defined", nil)

// ErrCannotReplaceActiveSentinel is a sentinel for changes to active services (for error checking).
var ErrCannotReplaceActiveSentinel = errs.NewError(CodeCannotReplaceActive, "cannot replace an active service", nil)

// ErrServiceDisabledSentinel is a sentinel for disabled services (for error checking).
var ErrServiceDisabledSentinel = errs.NewError(CodeServiceDisabled, "service disabled", nil)

// ErrRecursiveDependencySentinel is a sentinel for circular dependencies (for error checking).
var ErrRecursiveDependencySentinel = errs.NewError(CodeRecursiveDependency, "recursive service instantiation", nil)

// ErrTypeMismatchSentinel is a sentinel error for type mismatch during typed resolution.
var ErrTypeMismatchSentinel = errs.NewError(CodeTypeMismatch, "type mismatch", nil)

// =============================================================================
// ERROR CONSTRUCTORS
// =============================================================================

// ErrNoSuchService creates an error for a service without a definition.
func ErrNoSuchService(serviceName string) *errs.Error {
	return errs.NewError(
		CodeServiceNotFound,
		fmt.Sprintf("no such service: %s", serviceName),
		nil,
	).WithContext("service", serviceName).(*errs.Error)
}

// ErrServiceAlreadyDefined creates an error for a duplicate definition.
func ErrServiceAlreadyDefined(serviceName string) *errs.Error {
	return errs.NewError(
		CodeServiceAlreadyDefined,
		fmt.Sprintf("service already defined: %s", serviceName),
		nil,
	).WithContext("service", serviceName).(*errs.Error)
}

// ErrCannotReplaceActive creates an error for redefining or manipulating an instantiated service.
func ErrCannotReplaceActive(serviceName string) *errs.Error {
	return errs.NewError(
		CodeCannotReplaceActive,
		fmt.Sprintf("cannot replace an active service: %s", serviceName),
		nil,
	).WithContext("service", serviceName).(*errs.Error)
}

// ErrServiceDisabled creates an error for resolving a disabled service.
func ErrServiceDisabled(serviceName string) *errs.Error {
	return errs.NewError(
		CodeServiceDisabled,
		fmt.Sprintf("service disabled: %s", serviceName),
		nil,
	).WithContext("service", serviceName).(*errs.Error)
}

// ErrRecursiveDependency creates an error for a cycle. The path ends with the
// name that was re-entered, e.g. [a b c a].
func ErrRecursiveDependency(path []string) *errs.Error {
	return errs.NewError(
		CodeRecursiveDependency,
		"circular dependency when creating service: "+strings.Join(path, " -> "),
		nil,
	).WithContext("cycle", path).(*errs.Error)
}

// NewServiceError creates an error for service operations
func NewServiceError(serviceName, operation string, cause error) *errs.Error {
	return errs.NewError(
		CodeServiceError,
		fmt.Sprintf("service '%s' error during %s", serviceName, operation),
		cause,
	).WithContext("service", serviceName).
		WithContext("operation", operation).(*errs.Error)
}

// ErrTypeMismatch creates an error for type mismatch during typed resolution
func ErrTypeMismatch(serviceName string, actual any) *errs.Error {
	return errs.NewError(
		CodeTypeMismatch,
		fmt.Sprintf("service '%s' type mismatch: got %T", serviceName, actual),
		nil,
	).WithContext("service", serviceName).
		WithContext("actual_type", fmt.Sprintf("%T", actual)).(*errs.Error)
}
