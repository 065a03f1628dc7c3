// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies errors produced while a transport handle
// exchanges an HTTP request. The transport uses the classification to
// decide which lifecycle event to fire (timeout, abort, or error), and
// interceptors can use it to bucket failures, for example in metrics.
//
// Package transient depends only on the standard library, so it brings
// no significant dependencies when imported as a standalone package.
package transient
