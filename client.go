// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ajax

import (
	"sync"

	"github.com/gogama/ajax/request"
)

// A Client issues asynchronous HTTP requests through a transport
// handle, running installed interceptors at designated points of each
// request's lifecycle. Its zero value is a valid configuration.
//
// The zero value client uses the library defaults from
// request.Defaults: GET requests exchanging JSON, sent by a
// transport.Request over http.DefaultClient, settling a future.New
// future. Use Configure to change the defaults for every request the
// client makes, and the per-request options to change them for a
// single request.
//
// A Client is safe for concurrent use by multiple goroutines. Its
// configuration and interceptors are shared by every request it makes,
// so Client instances are typically created once and reused.
//
// Each request made by a Client goes through the following lifecycle:
//
// • the client merges the library defaults, its own configuration
// and the per-request options into the effective options;
//
// • it creates a transport handle, opens it, and sets up headers,
// event listeners and the timeout;
//
// • it runs the Send interceptors, encodes the request data, and
// sends the request unless a Send interceptor aborted it;
//
// • when a response with a 2XX status arrives, it runs the Complete
// interceptors, decodes the response, and resolves the request's
// future with a *request.Result;
//
// • when the request fails for any other reason, it runs the Error
// interceptors and rejects the request's future with a
// *request.Failure.
type Client struct {
	// Interceptors holds the interceptor chains run for every request
	// made by the client.
	//
	// If Interceptors is nil, no interceptors are run.
	Interceptors *Interceptors

	mu     sync.RWMutex
	config request.Options
}

// DefaultClient is the process-wide default Client, used by the
// package-level Configure, AddInterceptor and RemoveInterceptor
// functions.
var DefaultClient = &Client{Interceptors: &Interceptors{}}

// Configure merges o onto the client's configuration, so that every
// subsequent request made by the client uses it. Fields left unset in o
// keep their current value. As with request.Merge, maps such as Headers
// are replaced, not merged.
func (c *Client) Configure(o *request.Options) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config = *request.Merge(&c.config, o)
}

// Config returns a copy of the client's configuration, as accumulated
// by Configure. The library defaults are not included.
func (c *Client) Config() request.Options {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// Do starts an HTTP request described by args, which is merged on top
// of the library defaults and the client's configuration, and returns
// a Call representing it. Do never blocks on the network: the request
// is sent from the transport handle, and the outcome is delivered
// through the call's future.
//
// The future resolves with a *request.Result if a response with a 2XX
// status is received and decoded. Otherwise it rejects with a
// *request.Failure, whose Cause tells why. The future settles exactly
// once.
//
// A nil args is equivalent to an empty request.Options.
func (c *Client) Do(args *request.Options) *Call {
	config := c.Config()
	opts := request.Merge(request.Defaults(), &config, args)

	call := &Call{}
	e := &execution{
		interceptors: c.Interceptors,
		opts:         opts,
		call:         call,
	}
	call.future = opts.Future(e.execute)
	return call
}

// Configure merges o onto DefaultClient's configuration.
func Configure(o *request.Options) {
	DefaultClient.Configure(o)
}

// AddInterceptor adds an interceptor to DefaultClient, identifying the
// phase by name ("send", "complete" or "error").
func AddInterceptor(phase string, ic Interceptor, first bool) error {
	return DefaultClient.Interceptors.AddNamed(phase, ic, first)
}

// RemoveInterceptor removes an interceptor from DefaultClient,
// identifying the phase by name, and reports whether it was found.
func RemoveInterceptor(phase string, ic Interceptor) (bool, error) {
	return DefaultClient.Interceptors.RemoveNamed(phase, ic)
}
