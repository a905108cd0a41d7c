package kubectl

import (
	"errors"
	"fmt"
)

// Sentinel errors for each failure class of a simulated command.
// Match them with errors.Is on the error carried by ExecutionResult.Err.
var (
	// ErrInvalidCommandPrefix indicates the input is empty or does not start with "kubectl".
	ErrInvalidCommandPrefix = errors.New("invalid command prefix")

	// ErrMissingAction indicates "kubectl" was given without an action.
	ErrMissingAction = errors.New("missing action")

	// ErrUnknownAction indicates an action outside the supported set.
	ErrUnknownAction = errors.New("unknown action")

	// ErrMissingResource indicates "get" was given without a resource type.
	ErrMissingResource = errors.New("missing resource")

	// ErrUnknownResource indicates a resource type that is not simulated.
	ErrUnknownResource = errors.New("unknown resource")

	// ErrMissingResourceOrName indicates "describe" or "delete" without both a type and a name.
	ErrMissingResourceOrName = errors.New("missing resource or name")

	// ErrNotFound indicates a named object is not in the catalog.
	ErrNotFound = errors.New("not found")

	// ErrNotImplemented indicates an action that is not simulated for a kind.
	ErrNotImplemented = errors.New("not implemented")

	// ErrInternalExecution indicates an unexpected fault while building output.
	ErrInternalExecution = errors.New("internal execution error")
)

// Messages shown for an empty or foreign command.
const (
	MessageCommandRequired = "Command is required"
	MessageInvalidPrefix   = `Only kubectl commands are supported. Command must start with "kubectl".`
)

// CommandError is the error produced by a failed command. Message is the
// user-facing text, phrased like real kubectl errors.
//
// Is matches the failure class sentinel in Reason; Unwrap returns the
// underlying cause, which is only set for ErrInternalExecution.
type CommandError struct {
	Reason  error
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return e.Message
}

// Is reports whether target is the failure class of e.
func (e *CommandError) Is(target error) bool {
	return e.Reason == target
}

// Unwrap returns the underlying cause, if any.
func (e *CommandError) Unwrap() error {
	return e.Err
}

func newCommandError(reason error, format string, args ...any) *CommandError {
	return &CommandError{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

func invalidPrefixError(raw string) *CommandError {
	if raw == "" {
		return newCommandError(ErrInvalidCommandPrefix, MessageCommandRequired)
	}
	return newCommandError(ErrInvalidCommandPrefix, MessageInvalidPrefix)
}

func missingActionError() *CommandError {
	return newCommandError(ErrMissingAction,
		"Error: kubectl command is required. Try: get, describe, apply, delete, cluster-info, version")
}

func unknownActionError(action string) *CommandError {
	return newCommandError(ErrUnknownAction,
		"Error: unknown command %q. Supported commands: get, describe, apply, delete, cluster-info, version, api-resources", action)
}

func missingResourceError() *CommandError {
	return newCommandError(ErrMissingResource,
		"Error: resource type is required (e.g., pods, services, deployments)")
}

func unknownResourceError(resource string) *CommandError {
	return newCommandError(ErrUnknownResource,
		`Error: unknown resource type %q. Use "kubectl api-resources" for a complete list.`, resource)
}

func missingResourceOrNameError(action string) *CommandError {
	return newCommandError(ErrMissingResourceOrName,
		"Error: resource type and name are required (e.g., kubectl %s pod my-pod)", action)
}

func notFoundError(kind, name string) *CommandError {
	return newCommandError(ErrNotFound, "Error from server (NotFound): %s %q not found", kind, name)
}

func notImplementedError(action, resource string) *CommandError {
	return newCommandError(ErrNotImplemented, "Error: %s command not fully implemented for %s", action, resource)
}

// internalError converts a recovered fault into a CommandError.
func internalError(fault any) *CommandError {
	cause, ok := fault.(error)
	if !ok {
		cause = fmt.Errorf("%v", fault)
	}
	return &CommandError{
		Reason:  ErrInternalExecution,
		Message: "Error executing command: " + cause.Error(),
		Err:     cause,
	}
}
