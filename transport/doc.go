// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package transport defines Handle, the contract between the ajax request
lifecycle engine and the primitive that actually performs an HTTP
exchange, and provides Request, a Handle backed by a net/http style
HTTPDoer.

A Handle represents one in-flight network operation. It is opened with a
method and URL, configured (headers, timeout, response type, credentials),
sent, and then reports its progress through named lifecycle events:

	h := transport.New(nil)
	h.AddEventListener(transport.Load, func(h transport.Handle) {
		fmt.Println(h.Status(), h.ResponseText())
	})
	if err := h.Open("GET", "https://example.com"); err != nil {
		...
	}
	if err := h.Send(nil); err != nil {
		...
	}

Request runs the exchange on its own goroutine and fires every event for
one exchange from that goroutine, in order, so listeners for the same
handle never run concurrently with each other.

Package transport also provides FormData, an ordered multipart/form-data
container which Request accepts as a body.
*/
package transport
