// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package future

import (
	"context"
	"fmt"
	"sync"
)

// A ResolveFunc settles a future successfully with a value.
type ResolveFunc func(value interface{})

// A RejectFunc settles a future unsuccessfully with an error.
type RejectFunc func(err error)

// An Executor starts the work a future represents. It receives the
// callbacks which settle the future. Only the first call to either
// callback has any effect.
type Executor func(resolve ResolveFunc, reject RejectFunc)

// A Factory constructs a Future around an Executor. A Factory must call
// the executor synchronously, before returning.
type Factory func(exec Executor) Future

// Future is the interface of a value which becomes available later.
//
// Implementations must be safe for concurrent use by multiple
// goroutines.
type Future interface {
	// Done returns a channel which is closed when the future settles.
	Done() <-chan struct{}
	// Result returns the settled value and error. Before the future
	// settles, Result returns nil, nil.
	Result() (interface{}, error)
}

// A PanicError is the rejection reason of a future whose executor
// panicked.
type PanicError struct {
	// Value is the value passed to panic.
	Value interface{}
}

func (err *PanicError) Error() string {
	return fmt.Sprintf("ajax/future: executor panic: %v", err.Value)
}

// Unwrap returns Value if it is an error, and nil otherwise.
func (err *PanicError) Unwrap() error {
	if e, ok := err.Value.(error); ok {
		return e
	}
	return nil
}

type promise struct {
	once  sync.Once
	done  chan struct{}
	mu    sync.Mutex
	value interface{}
	err   error
}

// New is the default Factory. It returns a Future which exec settles.
// If exec panics before settling the future, the future is rejected
// with a *PanicError holding the panic value. A panic after the future
// settled is re-raised.
func New(exec Executor) Future {
	p := &promise{done: make(chan struct{})}
	func() {
		defer func() {
			if r := recover(); r != nil {
				if !p.settle(nil, &PanicError{Value: r}) {
					panic(r)
				}
			}
		}()
		exec(p.resolve, p.reject)
	}()
	return p
}

func (p *promise) resolve(value interface{}) {
	p.settle(value, nil)
}

func (p *promise) reject(err error) {
	p.settle(nil, err)
}

func (p *promise) settle(value interface{}, err error) bool {
	settled := false
	p.once.Do(func() {
		p.mu.Lock()
		p.value, p.err = value, err
		p.mu.Unlock()
		close(p.done)
		settled = true
	})
	return settled
}

func (p *promise) Done() <-chan struct{} {
	return p.done
}

func (p *promise) Result() (interface{}, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value, p.err
}

// Await blocks until f settles or ctx is done, whichever happens
// first. If ctx is done first, Await returns ctx.Err() and leaves f
// unaffected.
func Await(ctx context.Context, f Future) (interface{}, error) {
	select {
	case <-f.Done():
		return f.Result()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Settled reports whether f has settled, without blocking.
func Settled(f Future) bool {
	select {
	case <-f.Done():
		return true
	default:
		return false
	}
}
