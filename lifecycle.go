// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ajax

import (
	"sort"
	"strings"

	"github.com/gogama/ajax/future"
	"github.com/gogama/ajax/request"
	"github.com/gogama/ajax/transport"
)

// An execution drives one request through its lifecycle. It is
// created by Client.Do and runs as the executor of the request's
// future.
type execution struct {
	interceptors *Interceptors
	opts         *request.Options
	call         *Call
	handle       transport.Handle
	resolve      future.ResolveFunc
	reject       future.RejectFunc
}

func (e *execution) execute(resolve future.ResolveFunc, reject future.RejectFunc) {
	e.resolve = resolve
	e.reject = reject

	h := e.opts.Transport()
	e.handle = h
	e.call.setHandle(h)

	if e.opts.SendsCredentials() {
		h.SetWithCredentials(true)
	}

	if err := h.Open(e.opts.Method, requestURL(e.opts.URL, e.opts.Params)); err != nil {
		e.fail(request.CauseInvalid, err)
		return
	}

	h.AddEventListener(transport.Load, e.guard(e.load))
	h.AddEventListener(transport.Abort, e.guard(e.failOn(request.CauseAborted)))
	h.AddEventListener(transport.Error, e.guard(e.failOn(request.CauseNetwork)))
	h.AddEventListener(transport.Timeout, e.guard(e.failOn(request.CauseTimeout)))

	for _, name := range sortedKeys(e.opts.Headers) {
		if err := h.SetRequestHeader(name, e.opts.Headers[name]); err != nil {
			e.fail(request.CauseInvalid, err)
			return
		}
	}

	for _, evt := range sortedEvents(e.opts.Events) {
		h.AddEventListener(evt, e.guard(e.opts.Events[evt]))
	}

	if e.opts.Timeout > 0 {
		h.SetTimeout(e.opts.Timeout)
	}

	e.interceptors.run(Send, h, e.opts)

	data := e.opts.Data
	if !e.opts.IsRaw() && request.IsStructured(data) {
		var err error
		if data, err = e.opts.DataEncoder(data, h); err != nil {
			e.fail(request.CauseEncode, err)
			return
		}
	}

	// The handle is no longer open only if a send interceptor aborted
	// it.
	if h.ReadyState() != transport.Opened {
		e.fail(request.CauseAborted, h.Err())
		return
	}

	if e.opts.ResponseType != "" {
		h.SetResponseType(e.opts.ResponseType)
	}

	if err := h.Send(data); err != nil {
		e.fail(request.CauseInvalid, err)
	}
}

func (e *execution) load(h transport.Handle) {
	if status := h.Status(); status < 200 || status >= 300 {
		e.fail(request.CauseStatus, nil)
		return
	}

	e.interceptors.run(Complete, h, e.opts)

	var data interface{}
	if h.ResponseType().IsText() {
		data = h.ResponseText()
	} else {
		data = h.Response()
	}
	if !e.opts.IsRaw() && !request.IsEmpty(data) {
		var err error
		if data, err = e.opts.ResponseDecoder(data); err != nil {
			e.reject(request.NewFailure(h, request.CauseDecode, err))
			return
		}
	}

	e.resolve(&request.Result{Data: data, Handle: h})
}

func (e *execution) failOn(cause request.Cause) transport.Listener {
	return func(h transport.Handle) {
		e.fail(cause, h.Err())
	}
}

func (e *execution) fail(cause request.Cause, err error) {
	e.interceptors.run(Error, e.handle, e.opts)
	e.reject(request.NewFailure(e.handle, cause, err))
}

// guard wraps a listener which runs on the transport's goroutine, so
// that a panic rejects the request instead of crashing the process.
func (e *execution) guard(l transport.Listener) transport.Listener {
	return func(h transport.Handle) {
		defer func() {
			if r := recover(); r != nil {
				e.reject(request.NewFailure(h, request.CausePanic, &future.PanicError{Value: r}))
			}
		}()
		l(h)
	}
}

// requestURL returns rawURL with its query string, if any, replaced by
// the encoded params. A nil params leaves rawURL unchanged.
func requestURL(rawURL string, params request.Params) string {
	if params == nil {
		return rawURL
	}
	if i := strings.IndexByte(rawURL, '?'); i >= 0 {
		rawURL = rawURL[:i]
	}
	return rawURL + "?" + params.Encode()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedEvents(m map[transport.Event]transport.Listener) []transport.Event {
	evts := make([]transport.Event, 0, len(m))
	for evt, l := range m {
		if l != nil {
			evts = append(evts, evt)
		}
	}
	sort.Slice(evts, func(i, j int) bool { return evts[i] < evts[j] })
	return evts
}
