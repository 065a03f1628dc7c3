// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ajax

import (
	"errors"
	"fmt"
	"strings"
)

// A Phase identifies the point in the request lifecycle at which an
// interceptor runs. Install interceptors in a Client to extend it with
// custom functionality.
type Phase int

const (
	// Send identifies the phase that runs after the transport handle
	// is opened and configured, but before the request body is encoded
	// and sent.
	//
	// Send interceptors may set further headers on the handle, or
	// abort it. If a send interceptor aborts the handle, the request
	// is never sent and fails with request.CauseAborted.
	Send Phase = iota
	// Complete identifies the phase that runs when a response with a
	// 2XX status is received, before the response is decoded.
	Complete
	// Error identifies the phase that runs when a request fails for
	// any reason after its transport handle was created, before the
	// request's future is rejected.
	//
	// Error interceptors can use request.Classify to tell why the
	// request failed.
	Error
	// phaseSentinel provides the total number of phases typed as a
	// Phase.
	phaseSentinel

	// numPhases provides the total number of phases as an int.
	numPhases = int(phaseSentinel)
)

var phaseNames = []string{
	"send",
	"complete",
	"error",
}

// ErrUnknownInterceptorType is the error returned, wrapped in an
// *UnknownInterceptorTypeError, when an interceptor is added to or
// removed from a phase which does not exist.
var ErrUnknownInterceptorType = errors.New("ajax: unknown interceptor type")

// An UnknownInterceptorTypeError reports a phase name or value which
// does not identify any Phase.
type UnknownInterceptorTypeError struct {
	// Type is the offending phase name, or the string form of the
	// offending Phase value.
	Type string
}

func (err *UnknownInterceptorTypeError) Error() string {
	return fmt.Sprintf("%v: %q (available types: %s)", ErrUnknownInterceptorType, err.Type, strings.Join(phaseNames, ", "))
}

// Unwrap returns ErrUnknownInterceptorType.
func (err *UnknownInterceptorTypeError) Unwrap() error {
	return ErrUnknownInterceptorType
}

// Phases returns a slice containing all phases, in the order in which
// they can occur in a request lifecycle.
func Phases() []Phase {
	return []Phase{
		Send,
		Complete,
		Error,
	}
}

// ParsePhase returns the Phase with the given name. Names are matched
// exactly, so "send" is a phase but "Send" is not.
func ParsePhase(name string) (Phase, error) {
	for i, n := range phaseNames {
		if n == name {
			return Phase(i), nil
		}
	}
	return -1, &UnknownInterceptorTypeError{Type: name}
}

// Name returns the name of the phase.
func (p Phase) Name() string {
	if !p.valid() {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[int(p)]
}

// String returns the name of the phase.
func (p Phase) String() string {
	return p.Name()
}

func (p Phase) valid() bool {
	return p >= 0 && int(p) < numPhases
}
