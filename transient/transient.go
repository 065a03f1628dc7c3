// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"context"
	"errors"
	"syscall"
)

// A Category is the category of a transport error, as reported by
// Categorize.
//
// The category Not means the error fits none of the other categories:
// it is a generic network or protocol failure.
type Category int

const (
	// Not indicates an error that fits no other category.
	Not Category = iota
	// Timeout indicates the exchange did not complete before the
	// handle's timeout elapsed.
	//
	// Categorize returns Timeout if the error or any of its wrapped
	// causes has a Timeout() function that reports true, or is
	// context.DeadlineExceeded.
	Timeout
	// Canceled indicates the exchange was cancelled locally, typically
	// because the handle was aborted.
	//
	// Categorize returns Canceled if the error is not a Timeout and the
	// error or any of its wrapped causes is context.Canceled.
	Canceled
	// ConnRefused indicates the remote host refused the connection
	// (POSIX ECONNREFUSED).
	ConnRefused
	// ConnReset indicates the remote host reset a previously active
	// TCP connection (POSIX ECONNRESET).
	ConnReset
)

var categoryNames = []string{
	"not",
	"timeout",
	"canceled",
	"conn_refused",
	"conn_reset",
}

// String returns a short lower-case name for the category, suitable
// for use as a metric label.
func (cat Category) String() string {
	if cat < 0 || int(cat) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[cat]
}

// Categorize returns the category of the given error. A nil error, and
// an error fitting no specific category, both produce Not.
//
// Categorize looks at wrapped cause errors contained within err, not
// just err itself.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}
	if errors.Is(err, context.Canceled) {
		return Canceled
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ECONNRESET {
			return ConnReset
		} else if errno == syscall.ECONNREFUSED {
			return ConnRefused
		}
	}

	return Not
}

type hasTimeout interface {
	Timeout() bool
}
