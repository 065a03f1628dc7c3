// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the core types Options (describes one HTTP
request and how to encode and decode it), Result (the outcome of a
successful request) and Failure (the outcome of a failed one).

Options are layered. The effective options of a single request are the
library defaults, overlaid with the client's configuration, overlaid with
the per-call arguments:

	effective := request.Merge(request.Defaults(), &config, args)

Merge is shallow and right-biased: for every field, the rightmost layer
which sets the field wins. Map fields (Headers, Events) and Params are
replaced wholesale, never merged key by key, so a per-call Headers map
fully replaces the configured one:

	args := &request.Options{
		Headers: map[string]string{"Accept": "text/plain"},
	}

sends only the Accept header, not the default Content-Type. Callers who
want both must copy the configured headers themselves.

Query parameters are an ordered list, Params, because their encoding
preserves insertion order:

	var p request.Params
	p.Add("q", "go lang")
	p.Add("page", 2)
	p.Encode() // "q=go%20lang&page=2"

A request either resolves with a *Result, carrying the decoded body and
the transport handle, or rejects with a *Failure. Failure is the single
error type for every way a request can fail: non-2XX status, network
error, timeout, abort, and codec errors. Inspect its Status, Response and
Cause fields to tell them apart.
*/
package request
