// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gogama/ajax/transient"
	"github.com/gogama/ajax/transport"
)

// A Result is the outcome of a request which completed with a 2XX
// status.
type Result struct {
	// Data is the response body, decoded by the ResponseDecoder unless
	// the request was raw or the body was empty.
	Data interface{}

	// Handle is the transport handle which performed the exchange.
	Handle transport.Handle
}

// Status returns the HTTP status code of the response.
func (r *Result) Status() int {
	return r.Handle.Status()
}

// Header returns the HTTP response headers.
//
// Note that a nil return value is always safe for read-only operations,
// since http.Header is a map type.
func (r *Result) Header() http.Header {
	return r.Handle.ResponseHeader()
}

// Bind unmarshals the raw JSON response body into v, which is handy
// when a typed value is wanted instead of the generic decoded Data.
func (r *Result) Bind(v interface{}) error {
	var b []byte
	switch x := r.Handle.Response().(type) {
	case string:
		b = []byte(x)
	case []byte:
		b = x
	default:
		var err error
		if b, err = json.Marshal(x); err != nil {
			return err
		}
	}
	return json.Unmarshal(b, v)
}

// A Cause tells which path led a request to fail.
type Cause int

const (
	// CauseStatus means a response was received with a status code
	// outside [200, 300).
	CauseStatus Cause = iota
	// CauseNetwork means the exchange failed without a response.
	CauseNetwork
	// CauseTimeout means the exchange timed out.
	CauseTimeout
	// CauseAborted means the request was aborted, either through the
	// call's Abort method or by a send interceptor.
	CauseAborted
	// CauseEncode means the DataEncoder failed.
	CauseEncode
	// CauseDecode means the ResponseDecoder failed.
	CauseDecode
	// CauseInvalid means the transport refused the request, for example
	// because the method, URL, a header or the body was invalid.
	CauseInvalid
	// CausePanic means an interceptor, codec or listener panicked.
	CausePanic
)

var causeNames = []string{
	"status",
	"network",
	"timeout",
	"aborted",
	"encode",
	"decode",
	"invalid",
	"panic",
}

// String returns the name of the cause.
func (c Cause) String() string {
	if c < 0 || int(c) >= len(causeNames) {
		return "unknown"
	}
	return causeNames[c]
}

// A Failure is the outcome of a request which did not complete with a
// 2XX status. It is the only error type with which a request rejects.
type Failure struct {
	// Status is the HTTP status code, or 0 if there was no response.
	Status int

	// Response is the raw response body as exposed by the transport
	// handle, if any.
	Response interface{}

	// Handle is the transport handle, or nil if the request failed
	// before a handle was created.
	Handle transport.Handle

	// Cause tells which path led to the failure.
	Cause Cause

	// Err is the underlying error, if any. It is nil for CauseStatus.
	Err error
}

// NewFailure returns a Failure capturing the status and response of h,
// which may be nil.
func NewFailure(h transport.Handle, cause Cause, err error) *Failure {
	f := &Failure{
		Handle: h,
		Cause:  cause,
		Err:    err,
	}
	if h != nil {
		f.Status = h.Status()
		f.Response = h.Response()
	}
	return f
}

func (f *Failure) Error() string {
	if f.Cause == CauseStatus {
		return fmt.Sprintf("ajax: request failed with status %d", f.Status)
	}
	if f.Err != nil {
		return fmt.Sprintf("ajax: request failed (%s): %v", f.Cause, f.Err)
	}
	return fmt.Sprintf("ajax: request failed (%s)", f.Cause)
}

// Unwrap returns Err.
func (f *Failure) Unwrap() error {
	return f.Err
}

// Timeout reports whether the failure is a timeout, so that
// transient.Categorize recognizes it.
func (f *Failure) Timeout() bool {
	return f.Cause == CauseTimeout
}

// Classify infers the failure cause from the state of a transport
// handle. It is meant for error interceptors, which receive only the
// handle: the lifecycle engine itself knows the exact cause.
func Classify(h transport.Handle) Cause {
	if status := h.Status(); status != 0 && (status < 200 || status >= 300) {
		return CauseStatus
	}
	err := h.Err()
	switch transient.Categorize(err) {
	case transient.Timeout:
		return CauseTimeout
	case transient.Canceled:
		return CauseAborted
	}
	if err != nil {
		return CauseNetwork
	}
	return CauseInvalid
}
