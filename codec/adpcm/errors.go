/*
NAME
  errors.go

DESCRIPTION
  errors.go re-exports the shared codecutil error taxonomy under the
  names used throughout the adpcm package, so the block framer and the
  whole-file drivers report failures with the same codes as codec/wav.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package adpcm

import "github.com/ausocean/waveadpcm/codec/codecutil"

// ErrorCode and Error are shared with codec/wav so the whole-file
// drivers in this package can return either a wav parse/emit failure or
// an adpcm framing failure through one taxonomy.
type (
	ErrorCode = codecutil.ErrorCode
	Error     = codecutil.Error
)

const (
	Ok                 = codecutil.Ok
	InvalidArgument    = codecutil.InvalidArgument
	InvalidFormat      = codecutil.InvalidFormat
	InsufficientBuffer = codecutil.InsufficientBuffer
	InsufficientData   = codecutil.InsufficientData
	ParameterNotSet    = codecutil.ParameterNotSet
	Unknown            = codecutil.Unknown
)

// newErr is a package-local shorthand for codecutil.NewError.
func newErr(code ErrorCode, op string, cause error) *Error {
	return codecutil.NewError(code, op, cause)
}

// CodeOf returns the ErrorCode carried by err.
func CodeOf(err error) ErrorCode { return codecutil.CodeOf(err) }
