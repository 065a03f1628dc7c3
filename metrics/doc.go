// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package metrics provides interceptors which record Prometheus metrics
// about the requests made by an ajax.Client.
//
// A Collector registers the following metrics:
//
//	ajax_requests_total             counter, by method, host, status code and outcome
//	ajax_request_duration_seconds   histogram, by method, host and outcome
//	ajax_request_failures_total     counter, by method, host and cause
package metrics
