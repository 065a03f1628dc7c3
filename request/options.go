// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"time"

	"github.com/gogama/ajax/future"
	"github.com/gogama/ajax/transport"
)

// A DataEncoder converts structured request data into a body the
// transport handle can send. The handle is passed so encoders can set
// headers, or inspect the request, before the body is sent.
type DataEncoder func(data interface{}, h transport.Handle) (interface{}, error)

// A ResponseDecoder converts the response body into the value the
// request resolves with.
type ResponseDecoder func(data interface{}) (interface{}, error)

// Options describe a single HTTP request. An Options value is also used
// as one configuration layer; see Merge.
//
// Every field's zero value means "unset", so that a layer only
// overrides the fields it sets. Raw and WithCredentials are pointers so
// that a later layer can override true with false; use Bool to set
// them.
type Options struct {
	// Method specifies the HTTP method (GET, POST, PUT, etc.).
	Method string

	// URL specifies the URL to request. If Params is set, any query
	// string already in URL is discarded.
	URL string

	// Params holds the query parameters. A non-nil Params, even an
	// empty one, replaces the query string of URL.
	Params Params

	// Data is the request body. Structured values (see IsStructured)
	// are passed through DataEncoder unless Raw is set; everything
	// else is sent as-is.
	Data interface{}

	// Headers holds the request headers.
	Headers map[string]string

	// Events binds listeners to transport lifecycle events by name.
	// Each listener receives the transport handle.
	Events map[transport.Event]transport.Listener

	// Timeout is the maximum duration of the exchange. Zero means
	// no timeout.
	Timeout time.Duration

	// ResponseType tells the transport handle how to expose the
	// response body.
	ResponseType transport.ResponseType

	// Raw disables DataEncoder and ResponseDecoder.
	Raw *bool

	// WithCredentials asks the transport to send and accept
	// credentials such as cookies.
	WithCredentials *bool

	// DataEncoder encodes structured Data.
	DataEncoder DataEncoder

	// ResponseDecoder decodes non-empty response bodies.
	ResponseDecoder ResponseDecoder

	// Transport creates the transport handle for the request.
	Transport transport.Factory

	// Future constructs the future the request settles.
	Future future.Factory

	// data holds per-execution values set by interceptors. It is never
	// merged between layers.
	data context.Context
}

// Bool returns a pointer to b, for setting the Raw and WithCredentials
// fields.
func Bool(b bool) *bool {
	return &b
}

// IsRaw reports whether Raw is set to true.
func (o *Options) IsRaw() bool {
	return o.Raw != nil && *o.Raw
}

// SendsCredentials reports whether WithCredentials is set to true.
func (o *Options) SendsCredentials() bool {
	return o.WithCredentials != nil && *o.WithCredentials
}

// Defaults returns a fresh copy of the library defaults: method GET,
// JSON Accept and Content-Type headers, the JSON encoder and decoder, a
// net/http backed transport using http.DefaultClient, and the default
// future.
func Defaults() *Options {
	return &Options{
		Method: "GET",
		Headers: map[string]string{
			"Accept":       "application/json",
			"Content-Type": "application/json",
		},
		DataEncoder:     EncodeJSON,
		ResponseDecoder: DecodeJSON,
		Transport:       transport.NewFactory(nil),
		Future:          future.New,
	}
}

// Merge returns new Options built by overlaying layers from left to
// right. For each field, the rightmost layer that sets it wins. Nil
// layers are skipped.
//
// The merge is shallow: Headers, Events and Params from a later layer
// replace those of an earlier layer entirely. Values stored with
// SetValue are not carried over.
func Merge(layers ...*Options) *Options {
	o := &Options{}
	for _, l := range layers {
		if l == nil {
			continue
		}
		if l.Method != "" {
			o.Method = l.Method
		}
		if l.URL != "" {
			o.URL = l.URL
		}
		if l.Params != nil {
			o.Params = l.Params
		}
		if l.Data != nil {
			o.Data = l.Data
		}
		if l.Headers != nil {
			o.Headers = l.Headers
		}
		if l.Events != nil {
			o.Events = l.Events
		}
		if l.Timeout != 0 {
			o.Timeout = l.Timeout
		}
		if l.ResponseType != "" {
			o.ResponseType = l.ResponseType
		}
		if l.Raw != nil {
			o.Raw = l.Raw
		}
		if l.WithCredentials != nil {
			o.WithCredentials = l.WithCredentials
		}
		if l.DataEncoder != nil {
			o.DataEncoder = l.DataEncoder
		}
		if l.ResponseDecoder != nil {
			o.ResponseDecoder = l.ResponseDecoder
		}
		if l.Transport != nil {
			o.Transport = l.Transport
		}
		if l.Future != nil {
			o.Future = l.Future
		}
	}
	return o
}

// SetValue allows interceptors to store arbitrary data in the options
// of a single request, for example to carry a start time from the send
// phase to the complete phase.
//
// The key must follow the same rules as the key parameter in
// context.WithValue, namely it:
//
// • it may not be nil;
//
// • it must be comparable;
//
// • it should not be of type string or any other built-in type to avoid
// collisions between different interceptors putting data into the
// same request.
//
// SetValue is not synchronized. The lifecycle engine runs the
// interceptors of one request one at a time, so interceptors need no
// locking of their own.
func (o *Options) SetValue(key, value interface{}) {
	ctx := o.data
	if ctx == nil {
		ctx = context.Background()
	}

	o.data = context.WithValue(ctx, key, value)
}

// Value returns the value associated with key by SetValue, or nil if
// there is none.
func (o *Options) Value(key interface{}) interface{} {
	ctx := o.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
