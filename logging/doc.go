// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package logging provides interceptors which log the lifecycle of
// every request made by an ajax.Client to a logrus logger. Each request
// is tagged with a random request ID, which is also sent to the server
// in a request header.
package logging
