/*
NAME
  status.go

DESCRIPTION
  status.go defines the closed set of result codes returned by every SAIL
  component, and the Error type that carries one of them alongside a
  human-readable cause.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package status provides the SAIL result-code enum, a status-carrying error
// type, and the logging interface threaded through every other package.
package status

import (
	"fmt"

	"github.com/pkg/errors"
)

// Code is a closed enum of result kinds. The zero value, OK, indicates
// success; any other value is an error.
type Code int

const (
	OK Code = iota

	// Argument errors.
	InvalidArgument
	NullArgument

	// Resource errors.
	MemoryAllocationFailed
	OpenFileFailed
	EnvironmentUpdateFailed

	// I/O errors.
	IOReadError
	IOWriteError
	IOSeekError
	IOTellError
	IOFlushError
	IOCloseError
	IOEOF
	InvalidIO

	// Parse errors.
	ParseFileError
	UnsupportedCodecLayout
	IncompleteCodecInfo

	// Codec-discovery errors.
	CodecNotFound
	CodecLoadFailed
	CodecSymbolResolveFailed

	// Decoding/encoding errors.
	IncorrectImageDimensions
	IncorrectBytesPerLine
	UnsupportedPixelFormat
	UnsupportedCompression
	UnsupportedImageProperty
	InterlacedUnsupported
	UnderlyingCodecError
	NoMoreFrames
	BrokenImage
)

// names holds the illustrative, stable string form of every Code, used by
// Error's message and by String.
var names = map[Code]string{
	OK:                        "ok",
	InvalidArgument:           "invalid argument",
	NullArgument:              "null argument",
	MemoryAllocationFailed:    "memory allocation failed",
	OpenFileFailed:            "open file failed",
	EnvironmentUpdateFailed:   "environment update failed",
	IOReadError:               "i/o read error",
	IOWriteError:              "i/o write error",
	IOSeekError:               "i/o seek error",
	IOTellError:               "i/o tell error",
	IOFlushError:              "i/o flush error",
	IOCloseError:              "i/o close error",
	IOEOF:                     "i/o eof",
	InvalidIO:                 "invalid io",
	ParseFileError:            "parse file error",
	UnsupportedCodecLayout:    "unsupported codec layout",
	IncompleteCodecInfo:       "incomplete codec info",
	CodecNotFound:             "codec not found",
	CodecLoadFailed:           "codec load failed",
	CodecSymbolResolveFailed:  "codec symbol resolve failed",
	IncorrectImageDimensions:  "incorrect image dimensions",
	IncorrectBytesPerLine:     "incorrect bytes per line",
	UnsupportedPixelFormat:    "unsupported pixel format",
	UnsupportedCompression:    "unsupported compression",
	UnsupportedImageProperty:  "unsupported image property",
	InterlacedUnsupported:     "interlaced unsupported",
	UnderlyingCodecError:      "underlying codec error",
	NoMoreFrames:              "no more frames",
	BrokenImage:               "broken image",
}

// String implements fmt.Stringer.
func (c Code) String() string {
	if s, ok := names[c]; ok {
		return s
	}
	return fmt.Sprintf("status.Code(%d)", int(c))
}

// Error is the error type returned by every SAIL operation that can fail. It
// always carries a non-OK Code; the wrapped cause (if any) is reachable via
// errors.Unwrap.
type Error struct {
	Code  Code
	cause error
}

// New creates an Error for code with a formatted message and no wrapped
// cause.
func New(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, cause: errors.Errorf(format, args...)}
}

// Wrap creates an Error for code, wrapping cause with pkg/errors so that a
// stack trace is attached at the point of failure. Returns nil if cause is
// nil, mirroring the teacher's SAIL_TRY early-return convention.
func Wrap(code Code, cause error, message string) *Error {
	if cause == nil {
		return nil
	}
	return &Error{Code: code, cause: errors.Wrap(cause, message)}
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.cause)
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target is a *Error carrying the same Code, so that
// callers can do errors.Is(err, status.New(status.NoMoreFrames, "")) or the
// shorthand status.Is(err, status.NoMoreFrames).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Is reports whether err is a *Error carrying code. NoMoreFrames is the
// standard end-of-stream signal and must be tested this way rather than
// treated as a generic failure.
func Is(err error, code Code) bool {
	var se *Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code == code
}

// CodeOf extracts the Code from err, or OK if err is nil, or
// UnderlyingCodecError if err is a non-status error (an escaped error from a
// dynamically loaded codec, matching the spec's underlying-codec-error
// catch-all).
func CodeOf(err error) Code {
	if err == nil {
		return OK
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return UnderlyingCodecError
}
