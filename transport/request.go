// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"strings"
	"sync"
	"time"

	"github.com/gogama/ajax/transient"
	"golang.org/x/net/http/httpguts"
)

var (
	// ErrInvalidState is returned when a Handle method is called in a
	// ready state which does not permit it, for example Send on a
	// handle which was never opened, or SetRequestHeader after Send.
	ErrInvalidState = errors.New("ajax/transport: invalid state")

	// ErrAborted is the error reported by Err after a handle is aborted
	// before it was sent. It wraps context.Canceled.
	ErrAborted = fmt.Errorf("ajax/transport: aborted: %w", context.Canceled)
)

const (
	readChunkSize  = 32 * 1024
	formURLEncoded = "application/x-www-form-urlencoded;charset=UTF-8"
)

// An HTTPDoer sends an HTTP request and returns an HTTP response in the
// same manner as the GoLang standard library http.Client from the
// net/http package.
type HTTPDoer interface {
	Do(r *http.Request) (*http.Response, error)
}

// An Option configures a Request created by New or NewFactory.
type Option func(r *Request)

// WithBaseURL resolves every URL passed to Open against base, allowing
// relative URLs such as "/users?id=1".
func WithBaseURL(base *urlpkg.URL) Option {
	return func(r *Request) {
		r.base = base
	}
}

// WithCookieJar sets the cookie jar consulted when the handle is set
// to send credentials. Cookies from the jar are added to the request,
// and cookies from the response are stored back into it, only if
// SetWithCredentials(true) was called.
func WithCookieJar(jar http.CookieJar) Option {
	return func(r *Request) {
		r.jar = jar
	}
}

// Request is a Handle which sends its HTTP request through an HTTPDoer.
// Create instances with New. A Request performs exactly one exchange.
//
// Request is safe for concurrent use: Abort in particular may be called
// from any goroutine while the exchange is in flight.
type Request struct {
	doer HTTPDoer
	base *urlpkg.URL
	jar  http.CookieJar

	mu              sync.Mutex
	state           ReadyState
	sent            bool
	aborted         bool
	method          string
	url             *urlpkg.URL
	header          http.Header
	withCredentials bool
	timeout         time.Duration
	responseType    ResponseType
	listeners       map[Event][]Listener
	cancel          context.CancelFunc

	status     int
	statusText string
	respHeader http.Header
	body       []byte
	err        error
}

// New returns a new, unopened Request which uses doer to send its HTTP
// request. If doer is nil, http.DefaultClient is used.
func New(doer HTTPDoer, opts ...Option) *Request {
	if doer == nil {
		doer = http.DefaultClient
	}
	r := &Request{
		doer:      doer,
		listeners: make(map[Event][]Listener),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewFactory returns a Factory producing a new Request, configured with
// doer and opts, on every call.
func NewFactory(doer HTTPDoer, opts ...Option) Factory {
	return func() Handle {
		return New(doer, opts...)
	}
}

// Open implements Handle. An empty method means GET. The standard
// methods DELETE, GET, HEAD, OPTIONS, POST and PUT are upper-cased.
func (r *Request) Open(method, url string) error {
	if method == "" {
		method = "GET"
	}
	if !validMethod(method) {
		return fmt.Errorf("ajax/transport: invalid method %q", method)
	}
	method = normalizeMethod(method)
	u, err := urlpkg.Parse(url)
	if err != nil {
		return err
	}
	if r.base != nil {
		u = r.base.ResolveReference(u)
	}
	u.Host = removeEmptyPort(u.Host)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sent {
		return ErrInvalidState
	}
	r.method = method
	r.url = u
	r.header = make(http.Header)
	r.state = Opened
	r.aborted = false
	r.err = nil
	return nil
}

// SetRequestHeader implements Handle. Setting the same header twice
// adds a second value.
func (r *Request) SetRequestHeader(name, value string) error {
	if !httpguts.ValidHeaderFieldName(name) {
		return fmt.Errorf("ajax/transport: invalid header name %q", name)
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		return fmt.Errorf("ajax/transport: invalid value for header %q", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != Opened || r.sent {
		return ErrInvalidState
	}
	r.header.Add(name, value)
	return nil
}

// SetWithCredentials implements Handle.
func (r *Request) SetWithCredentials(b bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.withCredentials = b
}

// SetTimeout implements Handle.
func (r *Request) SetTimeout(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timeout = d
}

// SetResponseType implements Handle.
func (r *Request) SetResponseType(rt ResponseType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responseType = rt
}

// AddEventListener implements Handle.
func (r *Request) AddEventListener(evt Event, l Listener) {
	if l == nil {
		panic("ajax/transport: nil listener")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners[evt] = append(r.listeners[evt], l)
}

// Send implements Handle. The body is ignored for GET and HEAD
// requests.
//
// If body is a url.Values, the Content-Type header defaults to
// application/x-www-form-urlencoded. If body is a *FormData, the
// Content-Type header is always replaced with the multipart type
// carrying the form's boundary.
func (r *Request) Send(body interface{}) error {
	r.mu.Lock()
	if r.state != Opened || r.sent {
		r.mu.Unlock()
		return ErrInvalidState
	}
	if r.method == "GET" || r.method == "HEAD" {
		body = nil
	}
	reader, contentType, force, err := bodyReader(body)
	if err != nil {
		r.mu.Unlock()
		return err
	}
	header := r.header.Clone()
	if contentType != "" && (force || header.Get("Content-Type") == "") {
		header.Set("Content-Type", contentType)
	}

	var ctx context.Context
	var cancel context.CancelFunc
	if r.timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), r.timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	req, err := http.NewRequestWithContext(ctx, r.method, r.url.String(), reader)
	if err != nil {
		cancel()
		r.mu.Unlock()
		return err
	}
	req.Header = header
	credentials := r.withCredentials && r.jar != nil
	if credentials {
		for _, c := range r.jar.Cookies(req.URL) {
			req.AddCookie(c)
		}
	}
	r.cancel = cancel
	r.sent = true
	r.mu.Unlock()

	go r.exchange(req, cancel, credentials)
	return nil
}

func (r *Request) exchange(req *http.Request, cancel context.CancelFunc, credentials bool) {
	defer cancel()
	r.fire(LoadStart)
	resp, err := r.doer.Do(req)
	if err != nil {
		r.fail(urlErrorWrap(req, err))
		return
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if credentials {
		r.jar.SetCookies(req.URL, resp.Cookies())
	}

	r.mu.Lock()
	r.state = HeadersReceived
	r.status = resp.StatusCode
	r.statusText = statusText(resp)
	r.respHeader = resp.Header
	r.mu.Unlock()
	r.fire(ReadyStateChange)

	r.setState(Loading)
	r.fire(ReadyStateChange)
	if err = r.readBody(resp.Body); err != nil {
		r.fail(urlErrorWrap(req, err))
		return
	}

	r.setState(Done)
	r.fire(ReadyStateChange)
	r.fire(Load)
	r.fire(LoadEnd)
}

func (r *Request) readBody(body io.Reader) error {
	chunk := make([]byte, readChunkSize)
	for {
		n, err := body.Read(chunk)
		if n > 0 {
			r.mu.Lock()
			r.body = append(r.body, chunk[:n]...)
			r.mu.Unlock()
			r.fire(Progress)
		}
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
	}
}

func (r *Request) fail(err error) {
	r.mu.Lock()
	evt := Error
	if r.aborted {
		evt = Abort
	} else {
		switch transient.Categorize(err) {
		case transient.Timeout:
			evt = Timeout
		case transient.Canceled:
			evt = Abort
		}
	}
	r.state = Done
	r.status = 0
	r.statusText = ""
	r.respHeader = nil
	r.body = nil
	r.err = err
	r.mu.Unlock()

	r.fire(ReadyStateChange)
	r.fire(evt)
	r.fire(LoadEnd)
}

// Abort implements Handle.
func (r *Request) Abort() {
	r.mu.Lock()
	switch {
	case r.state == Opened && !r.sent:
		r.state = Unsent
		r.aborted = true
		r.err = ErrAborted
		r.mu.Unlock()
	case r.sent && r.state != Done:
		r.aborted = true
		cancel := r.cancel
		r.mu.Unlock()
		cancel()
	default:
		r.mu.Unlock()
	}
}

// ReadyState implements Handle.
func (r *Request) ReadyState() ReadyState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// URL returns a copy of the URL passed to Open, resolved against the
// base URL, or nil if the request has not been opened.
func (r *Request) URL() *urlpkg.URL {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.url == nil {
		return nil
	}
	u := *r.url
	return &u
}

// Status implements Handle.
func (r *Request) Status() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// StatusText implements Handle.
func (r *Request) StatusText() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.statusText
}

// Response implements Handle.
//
// For the Default and Text response types the body is returned as a
// string. For JSON, the body is parsed into an interface{} value, and
// nil is returned if the body is empty or is not valid JSON. For
// ArrayBuffer and Blob, the body is returned as a []byte. Non-text
// response types return nil until the exchange is Done.
func (r *Request) Response() interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.responseType.IsText() {
		return string(r.body)
	}
	if r.state != Done || r.body == nil {
		return nil
	}
	if r.responseType == JSON {
		var v interface{}
		if err := json.Unmarshal(r.body, &v); err != nil {
			return nil
		}
		return v
	}
	return bytes.Clone(r.body)
}

// ResponseText implements Handle.
func (r *Request) ResponseText() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.responseType.IsText() {
		return ""
	}
	return string(r.body)
}

// ResponseType implements Handle.
func (r *Request) ResponseType() ResponseType {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.responseType
}

// ResponseHeader implements Handle.
func (r *Request) ResponseHeader() http.Header {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.respHeader
}

// Err implements Handle.
func (r *Request) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Request) setState(s ReadyState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = s
}

func (r *Request) fire(evt Event) {
	r.mu.Lock()
	chain := append([]Listener(nil), r.listeners[evt]...)
	r.mu.Unlock()
	for _, l := range chain {
		l(r)
	}
}

func bodyReader(body interface{}) (reader io.Reader, contentType string, force bool, err error) {
	switch x := body.(type) {
	case nil:
		return nil, "", false, nil
	case string:
		return strings.NewReader(x), "text/plain;charset=UTF-8", false, nil
	case []byte:
		return bytes.NewReader(x), "", false, nil
	case urlpkg.Values:
		return strings.NewReader(x.Encode()), formURLEncoded, false, nil
	case *FormData:
		var b []byte
		contentType, b, err = x.Encode()
		if err != nil {
			return nil, "", false, err
		}
		return bytes.NewReader(b), contentType, true, nil
	case io.Reader:
		return x, "", false, nil
	default:
		return nil, "", false, fmt.Errorf("ajax/transport: invalid body type %T "+
			"(use nil, string, []byte, io.Reader, url.Values or *FormData)", body)
	}
}

func statusText(resp *http.Response) string {
	if i := strings.IndexByte(resp.Status, ' '); i >= 0 {
		return resp.Status[i+1:]
	}
	return http.StatusText(resp.StatusCode)
}

func urlErrorWrap(req *http.Request, err error) error {
	if _, ok := err.(*urlpkg.Error); ok {
		return err
	}

	return &urlpkg.Error{
		Op:  urlErrorOp(req.Method),
		URL: req.URL.String(),
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}

func validMethod(method string) bool {
	return strings.IndexFunc(method, isNotToken) == -1
}

func isNotToken(r rune) bool {
	return !httpguts.IsTokenRune(r)
}

func normalizeMethod(method string) string {
	upper := strings.ToUpper(method)
	switch upper {
	case "DELETE", "GET", "HEAD", "OPTIONS", "POST", "PUT":
		return upper
	}
	return method
}

// hasPort is lifted verbatim from net/http/http.go
//
// Given a string of the form "host", "host:port", or "[ipv6::address]:port",
// return true if the string includes a port.
func hasPort(s string) bool { return strings.LastIndex(s, ":") > strings.LastIndex(s, "]") }

// removeEmptyPort is lifted verbatim from net/http/http.go
//
// removeEmptyPort strips the empty port in ":port" to ""
// as mandated by RFC 3986 Section 6.2.3.
func removeEmptyPort(host string) string {
	if hasPort(host) {
		return strings.TrimSuffix(host, ":")
	}
	return host
}
