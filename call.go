// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ajax

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gogama/ajax/future"
	"github.com/gogama/ajax/request"
	"github.com/gogama/ajax/transport"
)

// A Call is a request started by Client.Do. It is a future for the
// request's outcome which can also abort the request.
//
// Call is safe for concurrent use by multiple goroutines.
type Call struct {
	future future.Future

	mu     sync.Mutex
	handle transport.Handle
}

// Abort aborts the request by aborting its transport handle. If the
// request is in flight, its future is rejected with a *request.Failure
// whose Cause is request.CauseAborted.
//
// Abort may be called at any time and any number of times. Aborting a
// request which has already settled has no effect on its future.
func (c *Call) Abort() {
	if h := c.Handle(); h != nil {
		h.Abort()
	}
}

// Done returns a channel which is closed when the request settles.
func (c *Call) Done() <-chan struct{} {
	return c.future.Done()
}

// Future returns the future the request settles.
func (c *Call) Future() future.Future {
	return c.future
}

// Handle returns the request's transport handle, or nil if the handle
// has not been created yet.
func (c *Call) Handle() transport.Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handle
}

func (c *Call) setHandle(h transport.Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handle = h
}

// Wait blocks until the request settles or ctx is done, whichever
// happens first.
//
// If the request succeeded, Wait returns its result. If the request
// failed, the error is always a *request.Failure. If ctx is done first,
// Wait returns ctx.Err() and leaves the request running; call Abort to
// stop it.
func (c *Call) Wait(ctx context.Context) (*request.Result, error) {
	select {
	case <-c.future.Done():
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	v, err := c.future.Result()
	if err != nil {
		return nil, c.failure(err)
	}
	r, ok := v.(*request.Result)
	if !ok {
		return nil, request.NewFailure(c.Handle(), request.CauseInvalid, fmt.Errorf("ajax: future resolved with %T", v))
	}
	return r, nil
}

func (c *Call) failure(err error) *request.Failure {
	var f *request.Failure
	if errors.As(err, &f) {
		return f
	}
	var p *future.PanicError
	if errors.As(err, &p) {
		return request.NewFailure(c.Handle(), request.CausePanic, err)
	}
	return request.NewFailure(c.Handle(), request.CauseInvalid, err)
}
