package commands

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind classifies why a command did not complete
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindUnauthorized
	KindNotFound
	KindCooldown
	KindMissingArgument
	KindUserInput
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindCooldown:
		return "cooldown"
	case KindMissingArgument:
		return "missing_argument"
	case KindUserInput:
		return "user_input"
	default:
		return "internal"
	}
}

// CommandError is the tagged failure returned from resolution and command handlers
type CommandError struct {
	Kind    ErrorKind
	Command string

	Suggestion string        // KindNotFound
	RetryAfter time.Duration // KindCooldown
	Usage      string        // KindMissingArgument
	Hint       string        // KindUserInput

	Err error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command %q: %s", e.Command, e.Kind)
	switch {
	case e.Err != nil:
		return msg + ": " + e.Err.Error()
	case e.Hint != "":
		return msg + ": " + e.Hint
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// UnauthorizedError reports a principal lacking privilege for command
func UnauthorizedError(command string) *CommandError {
	return &CommandError{Kind: KindUnauthorized, Command: command}
}

// NotFoundError reports an unknown token with an optional suggestion
func NotFoundError(token, suggestion string) *CommandError {
	return &CommandError{Kind: KindNotFound, Command: token, Suggestion: suggestion}
}

// CooldownError reports an active cooldown
func CooldownError(command string, retryAfter time.Duration) *CommandError {
	return &CommandError{Kind: KindCooldown, Command: command, RetryAfter: retryAfter}
}

// MissingArgumentError reports too few arguments
func MissingArgumentError(command, usage string) *CommandError {
	return &CommandError{Kind: KindMissingArgument, Command: command, Usage: usage}
}

// UserInputError reports malformed input with a corrective hint
func UserInputError(hint string) *CommandError {
	return &CommandError{Kind: KindUserInput, Hint: hint}
}

// UserInputErrorf formats the hint
func UserInputErrorf(format string, args ...any) *CommandError {
	return UserInputError(fmt.Sprintf(format, args...))
}

// Classify returns the CommandError in err's chain, or wraps err as internal
func Classify(err error) *CommandError {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr
	}
	return &CommandError{Kind: KindInternal, Err: err}
}
