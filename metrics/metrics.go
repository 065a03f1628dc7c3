// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package metrics

import (
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/gogama/ajax"
	"github.com/gogama/ajax/request"
	"github.com/gogama/ajax/transport"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeComplete = "complete"
	OutcomeError    = "error"
)

type startKey struct{}

// A Collector records request metrics. It is safe for concurrent use,
// and one Collector may be installed in any number of registries.
type Collector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	failuresTotal   *prometheus.CounterVec

	now func() time.Time

	send     ajax.InterceptorFunc
	complete ajax.InterceptorFunc
	fail     ajax.InterceptorFunc
}

// NewCollector creates a Collector whose metrics are registered with
// registerer. A nil registerer means prometheus.DefaultRegisterer.
//
// NewCollector panics if the metrics cannot be registered, for example
// because another Collector already registered them with the same
// registerer.
func NewCollector(registerer prometheus.Registerer) *Collector {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)
	c := &Collector{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ajax_requests_total",
				Help: "Total number of settled HTTP requests",
			},
			[]string{"method", "host", "status_code", "outcome"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ajax_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds, from send to settlement",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "host", "outcome"},
		),
		failuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ajax_request_failures_total",
				Help: "Total number of failed HTTP requests by cause",
			},
			[]string{"method", "host", "cause"},
		),
		now: time.Now,
	}
	c.send = c.onSend
	c.complete = c.onComplete
	c.fail = c.onError
	return c
}

// Install creates a Collector registered with registerer and installs
// it in r.
func Install(r *ajax.Interceptors, registerer prometheus.Registerer) (*Collector, error) {
	c := NewCollector(registerer)
	if err := c.Install(r); err != nil {
		return nil, err
	}
	return c, nil
}

// Install adds the collector's interceptors to r.
func (c *Collector) Install(r *ajax.Interceptors) error {
	if err := r.Add(ajax.Send, &c.send, false); err != nil {
		return err
	}
	if err := r.Add(ajax.Complete, &c.complete, false); err != nil {
		return err
	}
	return r.Add(ajax.Error, &c.fail, false)
}

// Uninstall removes the collector's interceptors from r.
func (c *Collector) Uninstall(r *ajax.Interceptors) error {
	_, err1 := r.Remove(ajax.Send, &c.send)
	_, err2 := r.Remove(ajax.Complete, &c.complete)
	_, err3 := r.Remove(ajax.Error, &c.fail)
	return errors.Join(err1, err2, err3)
}

func (c *Collector) onSend(_ transport.Handle, o *request.Options) {
	o.SetValue(startKey{}, c.now())
}

func (c *Collector) onComplete(h transport.Handle, o *request.Options) {
	c.record(h, o, OutcomeComplete)
}

func (c *Collector) onError(h transport.Handle, o *request.Options) {
	c.record(h, o, OutcomeError)
	c.failuresTotal.WithLabelValues(o.Method, hostFor(h, o), request.Classify(h).String()).Inc()
}

func (c *Collector) record(h transport.Handle, o *request.Options, outcome string) {
	method, host := o.Method, hostFor(h, o)
	c.requestsTotal.WithLabelValues(method, host, strconv.Itoa(h.Status()), outcome).Inc()
	// Requests which fail before the send phase have no start time.
	if start, ok := o.Value(startKey{}).(time.Time); ok {
		c.requestDuration.WithLabelValues(method, host, outcome).Observe(c.now().Sub(start).Seconds())
	}
}

// hostFor prefers the URL the handle actually opened, which has the base
// URL applied, over the possibly relative URL in the options.
func hostFor(h transport.Handle, o *request.Options) string {
	if r, ok := h.(interface{ URL() *url.URL }); ok {
		if u := r.URL(); u != nil {
			return u.Host
		}
	}
	return hostOf(o.URL)
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
