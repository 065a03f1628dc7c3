// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ajax

import (
	"reflect"
	"sync"

	"github.com/gogama/ajax/request"
	"github.com/gogama/ajax/transport"
)

// An Interceptors is a registry of interceptor chains, one per Phase,
// which can be installed in a Client. Its zero value is an empty
// registry ready to use.
//
// Interceptors is safe for concurrent use by multiple goroutines. Each
// phase run works on a snapshot of its chain, so adding or removing an
// interceptor never affects a chain which is already running.
type Interceptors struct {
	mu     sync.RWMutex
	chains [numPhases][]Interceptor
}

// Add adds an interceptor to the chain for phase p. The interceptor is
// appended to the back of the chain, or pushed to the front if first is
// true.
//
// Add returns an *UnknownInterceptorTypeError if p is not a valid
// Phase. Adding a nil interceptor panics.
func (r *Interceptors) Add(p Phase, ic Interceptor, first bool) error {
	if ic == nil {
		panic("ajax: nil interceptor")
	}
	if !p.valid() {
		return &UnknownInterceptorTypeError{Type: p.String()}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	chain := r.chains[p]
	if first {
		chain = append([]Interceptor{ic}, chain...)
	} else {
		chain = append(chain[:len(chain):len(chain)], ic)
	}
	r.chains[p] = chain
	return nil
}

// Remove removes the first occurrence of ic from the chain for phase p,
// and reports whether an interceptor was removed.
//
// Interceptors are matched with ==, so only comparable interceptors,
// such as pointers, can ever be removed. To make a function removable,
// register a pointer to an InterceptorFunc.
//
// Remove returns an *UnknownInterceptorTypeError if p is not a valid
// Phase.
func (r *Interceptors) Remove(p Phase, ic Interceptor) (bool, error) {
	if !p.valid() {
		return false, &UnknownInterceptorTypeError{Type: p.String()}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	chain := r.chains[p]
	for i := range chain {
		if same(chain[i], ic) {
			r.chains[p] = append(chain[:i:i], chain[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// AddNamed is like Add, but identifies the phase by its name.
func (r *Interceptors) AddNamed(phase string, ic Interceptor, first bool) error {
	p, err := ParsePhase(phase)
	if err != nil {
		return err
	}
	return r.Add(p, ic, first)
}

// RemoveNamed is like Remove, but identifies the phase by its name.
func (r *Interceptors) RemoveNamed(phase string, ic Interceptor) (bool, error) {
	p, err := ParsePhase(phase)
	if err != nil {
		return false, err
	}
	return r.Remove(p, ic)
}

// Len returns the number of interceptors in the chain for phase p.
func (r *Interceptors) Len(p Phase) int {
	if !p.valid() {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.chains[p])
}

func (r *Interceptors) snapshot(p Phase) []Interceptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	// Chains are never modified in place, so the slice header is
	// a stable snapshot.
	return r.chains[p]
}

func (r *Interceptors) run(p Phase, h transport.Handle, o *request.Options) {
	if r == nil {
		return
	}
	run(r.snapshot(p), h, o)
}

func run(chain []Interceptor, h transport.Handle, o *request.Options) {
	for _, ic := range chain {
		ic.Intercept(h, o)
	}
}

func same(a, b Interceptor) bool {
	t := reflect.TypeOf(a)
	if t != reflect.TypeOf(b) || !t.Comparable() {
		return false
	}
	return a == b
}

// An Interceptor runs during one phase of a request's lifecycle. It
// receives the request's transport handle and its fully merged options.
type Interceptor interface {
	Intercept(h transport.Handle, o *request.Options)
}

// The InterceptorFunc type is an adapter to allow the use of ordinary
// functions as interceptors. If f is a function with appropriate
// signature, then InterceptorFunc(f) is an Interceptor that calls f.
//
// Function values cannot be compared, so an InterceptorFunc value can
// be added but never removed. A pointer to an InterceptorFunc is also
// an Interceptor, and can be removed:
//
//	ic := ajax.InterceptorFunc(f)
//	client.Interceptors.Add(ajax.Send, &ic, false)
//	...
//	client.Interceptors.Remove(ajax.Send, &ic)
type InterceptorFunc func(h transport.Handle, o *request.Options)

// Intercept calls f(h, o).
func (f InterceptorFunc) Intercept(h transport.Handle, o *request.Options) {
	f(h, o)
}
