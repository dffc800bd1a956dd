/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the flat error taxonomy shared by the ADPCM and WAVE
  driver APIs.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package codecutil

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// ErrorCode classifies driver failures so callers can branch on cause
// without string matching.
type ErrorCode int

const (
	Ok ErrorCode = iota
	InvalidArgument
	InvalidFormat
	InsufficientBuffer
	InsufficientData
	ParameterNotSet
	Unknown
)

// String returns a short, human-readable name for the code.
func (c ErrorCode) String() string {
	switch c {
	case Ok:
		return "ok"
	case InvalidArgument:
		return "invalid argument"
	case InvalidFormat:
		return "invalid format"
	case InsufficientBuffer:
		return "insufficient buffer"
	case InsufficientData:
		return "insufficient data"
	case ParameterNotSet:
		return "parameter not set"
	default:
		return "unknown"
	}
}

// Error wraps a driver failure with the operation that produced it and,
// where available, the underlying cause.
type Error struct {
	Code ErrorCode
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Code)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds an *Error, wrapping cause (which may be nil) with
// github.com/pkg/errors so callers retain a stack trace on the first
// wrap site.
func NewError(code ErrorCode, op string, cause error) *Error {
	if cause != nil {
		cause = pkgerrors.Wrap(cause, op)
	}
	return &Error{Code: code, Op: op, Err: cause}
}

// CodeOf returns the ErrorCode carried by err, or Unknown if err is not
// (or does not wrap) an *Error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	if err == nil {
		return Ok
	}
	return Unknown
}
