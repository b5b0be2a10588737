// Package errs defines the typed error hierarchy used at every public
// component boundary. No panics escape a component for foreseeable data
// conditions; callers inspect Code() to decide CLI exit behavior.
package errs

import "fmt"

// Code is a machine-readable error classification.
type Code string

const (
	CodeNotFound        Code = "not_found"
	CodeParseError      Code = "parse_error"
	CodeValidationError Code = "validation_error"
	CodeOracleFailure   Code = "oracle_failure"
	CodeGateFailure     Code = "gate_failure"
	CodeIOError         Code = "io_error"
)

// Error is the concrete type returned across component boundaries.
type Error struct {
	code    Code
	msg     string
	details []string
	wrapped error
}

func (e *Error) Error() string {
	if len(e.details) > 0 {
		return fmt.Sprintf("%s: %s (%v)", e.code, e.msg, e.details)
	}
	return fmt.Sprintf("%s: %s", e.code, e.msg)
}

func (e *Error) Unwrap() error { return e.wrapped }

// Code returns the machine-readable classification.
func (e *Error) Code() Code { return e.code }

// Details returns the list of human-readable sub-reasons, if any.
func (e *Error) Details() []string { return e.details }

// NotFound builds a not_found error, e.g. a missing input/output file.
func NotFound(msg string) *Error {
	return &Error{code: CodeNotFound, msg: msg}
}

// ParseError builds a parse_error for malformed JSON/YAML.
func ParseError(msg string, wrapped error) *Error {
	return &Error{code: CodeParseError, msg: msg, wrapped: wrapped}
}

// ValidationError builds a validation_error carrying the full list of
// field-level failures.
func ValidationError(details []string) *Error {
	return &Error{code: CodeValidationError, msg: "schema validation failed", details: details}
}

// OracleFailure builds an oracle_failure; callers fall back silently and
// log this at Warn rather than surface it to the user.
func OracleFailure(msg string, wrapped error) *Error {
	return &Error{code: CodeOracleFailure, msg: msg, wrapped: wrapped}
}

// GateFailure builds a gate_failure carrying the failed gate codes.
func GateFailure(codes []string) *Error {
	return &Error{code: CodeGateFailure, msg: "execution gate rejected candidate", details: codes}
}

// IOError builds an io_error for filesystem/network faults.
func IOError(msg string, wrapped error) *Error {
	return &Error{code: CodeIOError, msg: msg, wrapped: wrapped}
}
