/*
Copyright © 2026 efibootkit authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package bkerror carries the typed error taxonomy shared by the codecs,
// the variable store backends, and the boot entry manager.
package bkerror

import "fmt"

// Kind classifies the failure mode of an error raised anywhere in the
// toolkit, independent of the underlying cause.
type Kind int

const (
	// Invalid covers malformed binary input, bad text grammar, and
	// out-of-range argument values.
	Invalid Kind = iota
	// Implausible is raised when text parses but the plausibility
	// heuristic rejects the result.
	Implausible
	// NotFound covers a variable that does not exist.
	NotFound
	// NoSpace is raised when an AUTO index is requested but no slot
	// in the 16-bit index space is free.
	NoSpace
	// PermissionDenied covers privilege acquisition failures and
	// firmware write refusals.
	PermissionDenied
	// Unsupported covers the stub backend and firmware that does not
	// expose the variable API.
	Unsupported
	// Io covers other backend transport failures.
	Io
	// OutOfMemory covers allocation failures.
	OutOfMemory
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case Implausible:
		return "Implausible"
	case NotFound:
		return "NotFound"
	case NoSpace:
		return "NoSpace"
	case PermissionDenied:
		return "PermissionDenied"
	case Unsupported:
		return "Unsupported"
	case Io:
		return "Io"
	case OutOfMemory:
		return "OutOfMemory"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the toolkit's error type. It carries a Kind, a message, an
// optional wrapped cause, and the CLI exit code a front-end should use.
type Error struct {
	kind Kind
	msg  string
	err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.msg)
}

// Unwrap exposes the wrapped cause to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.err
}

// Kind returns the error's kind.
func (e *Error) Kind() Kind {
	return e.kind
}

// ExitCode returns the CLI exit status a front-end should use for this
// error.
func (e *Error) ExitCode() int {
	return exitCodes[e.kind]
}

// New creates an *Error of the given kind from a message.
func New(kind Kind, msg string) error {
	return &Error{kind: kind, msg: msg}
}

// Newf creates an *Error of the given kind from a formatted message.
func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap creates an *Error of the given kind wrapping an existing error.
// If err is nil, Wrap returns nil.
func Wrap(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{kind: kind, msg: msg, err: err}
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if ke, ok := err.(*Error); ok {
			e = ke
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	if e == nil {
		return false
	}
	return e.kind == kind
}
