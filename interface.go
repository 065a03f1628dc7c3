// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ajax

import (
	"github.com/gogama/ajax/request"
)

// Doer is the interface that wraps the basic Do method.
//
// Do starts the HTTP request described by args and returns a Call
// representing it. Client implements the Doer interface, and any other
// Doer implementation must behave substantially the same as Client.Do.
//
// Any Doer can be converted into an Executor via the Inflate function.
type Doer interface {
	Do(args *request.Options) *Call
}

// Executor is the interface that groups the basic Do method with one
// method per supported HTTP verb: Get, Put, Post, Patch, Delete, and
// Options.
//
// Any Doer can be converted into an Executor via the Inflate function.
type Executor interface {
	Doer
	Get(url string, params request.Params, args *request.Options) *Call
	Put(url string, data interface{}, args *request.Options) *Call
	Post(url string, data interface{}, args *request.Options) *Call
	Patch(url string, data interface{}, args *request.Options) *Call
	Delete(url string, args *request.Options) *Call
	Options(url string, args *request.Options) *Call
}

// Get uses the specified Doer to issue a GET to the specified URL. If
// params is non-nil, it replaces the URL's query string.
//
// The optional args are merged on top, so they may override anything,
// including the method and URL.
func Get(d Doer, url string, params request.Params, args *request.Options) *Call {
	return d.Do(request.Merge(&request.Options{Method: "GET", URL: url, Params: params}, args))
}

// Put uses the specified Doer to issue a PUT with data as the request
// body. Structured data is encoded by the effective DataEncoder.
func Put(d Doer, url string, data interface{}, args *request.Options) *Call {
	return withData(d, "PUT", url, data, args)
}

// Post uses the specified Doer to issue a POST with data as the request
// body. Structured data is encoded by the effective DataEncoder.
func Post(d Doer, url string, data interface{}, args *request.Options) *Call {
	return withData(d, "POST", url, data, args)
}

// Patch uses the specified Doer to issue a PATCH with data as the
// request body. Structured data is encoded by the effective
// DataEncoder.
func Patch(d Doer, url string, data interface{}, args *request.Options) *Call {
	return withData(d, "PATCH", url, data, args)
}

// Delete uses the specified Doer to issue a DELETE to the specified
// URL.
func Delete(d Doer, url string, args *request.Options) *Call {
	return d.Do(request.Merge(&request.Options{Method: "DELETE", URL: url}, args))
}

// Options uses the specified Doer to issue an OPTIONS request to the
// specified URL.
func Options(d Doer, url string, args *request.Options) *Call {
	return d.Do(request.Merge(&request.Options{Method: "OPTIONS", URL: url}, args))
}

func withData(d Doer, method, url string, data interface{}, args *request.Options) *Call {
	return d.Do(request.Merge(&request.Options{Method: method, URL: url, Data: data}, args))
}

// Get issues a GET to the specified URL. See the package function Get.
func (c *Client) Get(url string, params request.Params, args *request.Options) *Call {
	return Get(c, url, params, args)
}

// Put issues a PUT to the specified URL. See the package function Put.
func (c *Client) Put(url string, data interface{}, args *request.Options) *Call {
	return Put(c, url, data, args)
}

// Post issues a POST to the specified URL. See the package function
// Post.
func (c *Client) Post(url string, data interface{}, args *request.Options) *Call {
	return Post(c, url, data, args)
}

// Patch issues a PATCH to the specified URL. See the package function
// Patch.
func (c *Client) Patch(url string, data interface{}, args *request.Options) *Call {
	return Patch(c, url, data, args)
}

// Delete issues a DELETE to the specified URL.
func (c *Client) Delete(url string, args *request.Options) *Call {
	return Delete(c, url, args)
}

// Options issues an OPTIONS request to the specified URL.
func (c *Client) Options(url string, args *request.Options) *Call {
	return Options(c, url, args)
}

// Inflate converts any non-nil Doer into an Executor. This may be
// helpful for interop across library boundaries, i.e. if code that only
// has access to a Doer needs to call a function that requires an
// Executor.
func Inflate(d Doer) Executor {
	if d == nil {
		panic("ajax: nil doer")
	}

	if e, ok := d.(Executor); ok {
		return e
	}

	return inflated{d}
}

type inflated struct {
	doer Doer
}

func (i inflated) Do(args *request.Options) *Call {
	return i.doer.Do(args)
}

func (i inflated) Get(url string, params request.Params, args *request.Options) *Call {
	return Get(i.doer, url, params, args)
}

func (i inflated) Put(url string, data interface{}, args *request.Options) *Call {
	return Put(i.doer, url, data, args)
}

func (i inflated) Post(url string, data interface{}, args *request.Options) *Call {
	return Post(i.doer, url, data, args)
}

func (i inflated) Patch(url string, data interface{}, args *request.Options) *Call {
	return Patch(i.doer, url, data, args)
}

func (i inflated) Delete(url string, args *request.Options) *Call {
	return Delete(i.doer, url, args)
}

func (i inflated) Options(url string, args *request.Options) *Call {
	return Options(i.doer, url, args)
}
