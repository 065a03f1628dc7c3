// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"net/http"
	"time"
)

// An Event names a lifecycle event fired by a Handle.
type Event string

const (
	// ReadyStateChange fires whenever the handle's ReadyState changes
	// after Send.
	ReadyStateChange Event = "readystatechange"
	// LoadStart fires when the exchange starts.
	LoadStart Event = "loadstart"
	// Progress fires each time a chunk of the response body is read.
	Progress Event = "progress"
	// Abort fires when an in-flight exchange is aborted.
	Abort Event = "abort"
	// Error fires when the exchange fails at the network level.
	Error Event = "error"
	// Load fires when a complete HTTP response has been received,
	// regardless of its status code.
	Load Event = "load"
	// Timeout fires when the exchange did not finish within the
	// handle's timeout.
	Timeout Event = "timeout"
	// LoadEnd fires after Load, Abort, Error or Timeout.
	LoadEnd Event = "loadend"
)

// Events returns every lifecycle event a Handle may fire.
func Events() []Event {
	return []Event{
		ReadyStateChange,
		LoadStart,
		Progress,
		Abort,
		Error,
		Load,
		Timeout,
		LoadEnd,
	}
}

// A ReadyState is the state of a Handle.
type ReadyState int

const (
	// Unsent means the handle has not been opened, or was aborted
	// before it was sent.
	Unsent ReadyState = iota
	// Opened means Open succeeded and Send may be called.
	Opened
	// HeadersReceived means the response status and headers are
	// available.
	HeadersReceived
	// Loading means the response body is being read.
	Loading
	// Done means the exchange is over, successfully or not.
	Done
)

var readyStateNames = []string{
	"UNSENT",
	"OPENED",
	"HEADERS_RECEIVED",
	"LOADING",
	"DONE",
}

// String returns the name of the ready state.
func (s ReadyState) String() string {
	if s < 0 || int(s) >= len(readyStateNames) {
		return "INVALID"
	}
	return readyStateNames[s]
}

// A ResponseType tells a Handle how to expose the response body through
// its Response method.
type ResponseType string

const (
	// Default exposes the body as a string, same as Text.
	Default ResponseType = ""
	// Text exposes the body as a string.
	Text ResponseType = "text"
	// JSON exposes the body parsed as JSON into an interface{} value.
	JSON ResponseType = "json"
	// ArrayBuffer exposes the body as a []byte.
	ArrayBuffer ResponseType = "arraybuffer"
	// Blob exposes the body as a []byte.
	Blob ResponseType = "blob"
)

// IsText reports whether the response type exposes the body as text,
// which is the case for Default and Text.
func (rt ResponseType) IsText() bool {
	return rt == Default || rt == Text
}

// A Listener handles a lifecycle event. It receives the handle which
// fired the event.
type Listener func(h Handle)

// A Factory creates a new, unopened Handle.
type Factory func() Handle

// Handle is the interface of a single HTTP exchange. The lifecycle
// engine in package ajax depends only on this interface, so any
// implementation which behaves like Request can be plugged in.
type Handle interface {
	// Open sets the method and URL of the exchange and moves the
	// handle to the Opened state. An error is returned if the method
	// is not a valid HTTP token or the URL cannot be parsed.
	Open(method, url string) error
	// SetRequestHeader sets a request header. It must be called after
	// Open and before Send.
	SetRequestHeader(name, value string) error
	// SetWithCredentials controls whether credentials (cookies) are
	// sent with the request and accepted from the response.
	SetWithCredentials(b bool)
	// SetTimeout sets the maximum duration of the exchange. Zero means
	// no timeout.
	SetTimeout(d time.Duration)
	// SetResponseType sets how Response exposes the body.
	SetResponseType(rt ResponseType)
	// AddEventListener registers a listener for a lifecycle event.
	// Listeners run in registration order.
	AddEventListener(evt Event, l Listener)
	// Send starts the exchange with the given body, which may be nil,
	// a string, a []byte, an io.Reader, a url.Values, or a *FormData.
	// Send returns immediately; the outcome is reported through
	// lifecycle events.
	Send(body interface{}) error
	// Abort cancels the exchange. Aborting a handle which was opened
	// but not sent resets it to Unsent without firing any event.
	// Aborting a sent handle fires Abort then LoadEnd. Aborting a
	// finished handle does nothing.
	Abort()

	ReadyState() ReadyState
	// Status returns the HTTP status code, or 0 if no response was
	// received.
	Status() int
	StatusText() string
	// Response returns the body in the form selected by ResponseType.
	Response() interface{}
	// ResponseText returns the body as a string, or "" if the response
	// type is not a text type.
	ResponseText() string
	ResponseType() ResponseType
	ResponseHeader() http.Header
	// Err returns the error which ended the exchange, if any.
	Err() error
}
