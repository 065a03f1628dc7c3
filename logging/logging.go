// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package logging

import (
	"errors"
	"time"

	"github.com/gogama/ajax"
	"github.com/gogama/ajax/request"
	"github.com/gogama/ajax/transport"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultHeader is the request header which carries the request ID
// unless another header is chosen with WithHeader.
const DefaultHeader = "X-Request-Id"

type requestIDKey struct{}

type startKey struct{}

// A Logger logs request lifecycle events. Install it in a registry to
// log every request made by the client owning the registry.
type Logger struct {
	log    logrus.FieldLogger
	header string
	newID  func() string
	now    func() time.Time

	send     ajax.InterceptorFunc
	complete ajax.InterceptorFunc
	fail     ajax.InterceptorFunc
}

// An Option configures a Logger.
type Option func(l *Logger)

// WithHeader sets the request header which carries the request ID. An
// empty name disables the header, so the ID is only logged.
func WithHeader(name string) Option {
	return func(l *Logger) {
		l.header = name
	}
}

// WithIDGenerator replaces the random UUID request IDs.
func WithIDGenerator(newID func() string) Option {
	return func(l *Logger) {
		l.newID = newID
	}
}

// New returns a Logger writing to log. A nil log means
// logrus.StandardLogger().
func New(log logrus.FieldLogger, opts ...Option) *Logger {
	if log == nil {
		log = logrus.StandardLogger()
	}
	l := &Logger{
		log:    log,
		header: DefaultHeader,
		newID:  func() string { return uuid.New().String() },
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.send = l.onSend
	l.complete = l.onComplete
	l.fail = l.onError
	return l
}

// Install creates a Logger with default options and installs it in r.
func Install(r *ajax.Interceptors, log logrus.FieldLogger) (*Logger, error) {
	l := New(log)
	if err := l.Install(r); err != nil {
		return nil, err
	}
	return l, nil
}

// Install adds the logger's interceptors to r. The send interceptor is
// pushed to the front of its chain, so the request ID is available to
// every other send interceptor. The complete and error interceptors are
// appended.
func (l *Logger) Install(r *ajax.Interceptors) error {
	if err := r.Add(ajax.Send, &l.send, true); err != nil {
		return err
	}
	if err := r.Add(ajax.Complete, &l.complete, false); err != nil {
		return err
	}
	return r.Add(ajax.Error, &l.fail, false)
}

// Uninstall removes the logger's interceptors from r.
func (l *Logger) Uninstall(r *ajax.Interceptors) error {
	var errs []error
	for _, x := range []struct {
		p  ajax.Phase
		ic *ajax.InterceptorFunc
	}{
		{ajax.Send, &l.send},
		{ajax.Complete, &l.complete},
		{ajax.Error, &l.fail},
	} {
		if _, err := r.Remove(x.p, x.ic); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RequestID returns the ID a Logger assigned to a request, or "" if the
// request was not logged.
func RequestID(o *request.Options) string {
	id, _ := o.Value(requestIDKey{}).(string)
	return id
}

func (l *Logger) onSend(h transport.Handle, o *request.Options) {
	id := l.newID()
	o.SetValue(requestIDKey{}, id)
	o.SetValue(startKey{}, l.now())

	entry := l.entry(o)
	if l.header != "" {
		if err := h.SetRequestHeader(l.header, id); err != nil {
			entry.WithError(err).Warn("ajax: failed to set request ID header")
		}
	}
	entry.Debug("ajax: request sent")
}

func (l *Logger) onComplete(h transport.Handle, o *request.Options) {
	l.withOutcome(h, o).Info("ajax: request completed")
}

func (l *Logger) onError(h transport.Handle, o *request.Options) {
	entry := l.withOutcome(h, o).WithField("cause", request.Classify(h).String())
	if err := h.Err(); err != nil {
		entry = entry.WithError(err)
	}
	entry.Warn("ajax: request failed")
}

func (l *Logger) entry(o *request.Options) *logrus.Entry {
	fields := logrus.Fields{
		"method": o.Method,
		"url":    o.URL,
	}
	if id := RequestID(o); id != "" {
		fields["request_id"] = id
	}
	return l.log.WithFields(fields)
}

func (l *Logger) withOutcome(h transport.Handle, o *request.Options) *logrus.Entry {
	entry := l.entry(o).WithField("status", h.Status())
	if start, ok := o.Value(startKey{}).(time.Time); ok {
		entry = entry.WithField("duration", l.now().Sub(start))
	}
	return entry
}
