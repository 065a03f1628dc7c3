// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package ajax provides an asynchronous HTTP client with a promise-style
interface and pluggable interceptors.

Create a Client to begin making requests. Every request returns a Call
immediately; wait on it to get the outcome.

	client := &ajax.Client{Interceptors: &ajax.Interceptors{}}
	call := client.Get("https://www.example.com/widgets",
		request.Params{{Key: "color", Value: "red"}}, nil)
	res, err := call.Wait(ctx)
	...
	call = client.Post("https://www.example.com/widgets",
		map[string]interface{}{"name": "sprocket"}, nil)
	...
	call.Abort()

By default requests and responses are JSON: structured request data is
encoded by request.EncodeJSON and response bodies are decoded by
request.DecodeJSON. A request which receives a 2XX response resolves
with a *request.Result. Any other outcome rejects with a
*request.Failure, whose Cause tells why the request failed.

Configuration is layered. The library defaults (request.Defaults) are
overridden by the client's configuration, set with Configure, which is
in turn overridden by the options passed to each request:

	client.Configure(&request.Options{
		Timeout: 10 * time.Second,
		Headers: map[string]string{"Accept": "application/json"},
	})
	call := client.Get("/widgets", nil, &request.Options{
		Timeout: time.Second,
	})

For control over how requests are sent, set a custom transport factory.
For example, to resolve relative URLs against a base URL and send
requests with a custom GoLang standard HTTP client:

	doer := &http.Client{
		..., // See package "net/http" for detailed documentation
	}
	client.Configure(&request.Options{
		Transport: transport.NewFactory(doer, transport.WithBaseURL(base)),
	})

To hook into every request's lifecycle, add an interceptor to the
appropriate phase:

	ic := ajax.InterceptorFunc(func(h transport.Handle, o *request.Options) {
		h.SetRequestHeader("Authorization", "Bearer "+token)
	})
	client.Interceptors.Add(ajax.Send, &ic, false)

Packages logging and metrics provide ready-made interceptors.

Package ajax provides a basic interface for starting requests (Doer); a
combined interface that adds one method per HTTP verb (Executor); and
utility functions for working with a Doer (Inflate, Get, Put, Post,
Patch, Delete, and Options). DefaultClient, together with the Configure,
AddInterceptor and RemoveInterceptor functions, provides process-wide
defaults.
*/
package ajax
