// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/gogama/ajax/transport"
	"github.com/google/go-querystring/query"
)

// A Param is a single query parameter.
type Param struct {
	Key   string
	Value interface{}
}

// Params is an ordered list of query parameters. Its order is the order
// in which Encode writes the parameters.
type Params []Param

// Add appends a parameter, even if one with the same key exists.
func (p *Params) Add(key string, value interface{}) {
	*p = append(*p, Param{Key: key, Value: value})
}

// Set replaces the value of the first parameter with the given key, or
// appends a new parameter if there is none.
func (p *Params) Set(key string, value interface{}) {
	for i := range *p {
		if (*p)[i].Key == key {
			(*p)[i].Value = value
			return
		}
	}
	p.Add(key, value)
}

// Get returns the value of the first parameter with the given key.
func (p Params) Get(key string) (interface{}, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}
	return nil, false
}

// Encode returns the parameters as a URL query string, without the
// leading "?". Each key and value is percent-encoded on its own and the
// pairs are joined with "&" in list order. Spaces are encoded as "%20",
// and the characters !'()*~-_. are left unescaped.
//
// Values are converted to strings with fmt.Sprint, except nil, which
// is encoded as the empty string.
func (p Params) Encode() string {
	var b strings.Builder
	for i, param := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(escape(param.Key))
		b.WriteByte('=')
		b.WriteString(escape(stringify(param.Value)))
	}
	return b.String()
}

// ParamsFromMap converts a map into Params. Since map iteration order is
// undefined, the parameters are sorted by key.
func ParamsFromMap(m map[string]interface{}) Params {
	if m == nil {
		return nil
	}
	p := make(Params, 0, len(m))
	for _, k := range sortedKeys(m) {
		p.Add(k, m[k])
	}
	return p
}

// ParamsFromValues converts url.Values into Params, sorted by key. A key
// with several values produces one parameter per value, in order.
func ParamsFromValues(v url.Values) Params {
	if v == nil {
		return nil
	}
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	p := make(Params, 0, len(v))
	for _, k := range keys {
		for _, s := range v[k] {
			p.Add(k, s)
		}
	}
	return p
}

// ParamsOf converts v into Params. v may be nil, Params,
// map[string]interface{}, map[string]string, url.Values, or a struct
// (or pointer to struct) whose fields are tagged for
// github.com/google/go-querystring:
//
//	type Search struct {
//		Query string `url:"q"`
//		Page  int    `url:"page,omitempty"`
//	}
//
// Struct parameters are sorted by key.
func ParamsOf(v interface{}) (Params, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case Params:
		return x, nil
	case map[string]interface{}:
		return ParamsFromMap(x), nil
	case map[string]string:
		m := make(map[string]interface{}, len(x))
		for k, s := range x {
			m[k] = s
		}
		return ParamsFromMap(m), nil
	case url.Values:
		return ParamsFromValues(x), nil
	default:
		values, err := query.Values(v)
		if err != nil {
			return nil, fmt.Errorf("ajax/request: cannot convert %T to params: %w", v, err)
		}
		return ParamsFromValues(values), nil
	}
}

// EncodeForm appends every parameter, in order, to a new multipart form.
func EncodeForm(p Params) *transport.FormData {
	f := &transport.FormData{}
	for _, param := range p {
		f.Append(param.Key, param.Value)
	}
	return f
}

// unescaper undoes the parts of url.QueryEscape that encodeURIComponent
// leaves alone. url.QueryEscape encodes a literal "+" as "%2B", so only
// spaces turn into "%20".
var unescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// escape percent-encodes s for use as a query string component,
// leaving unreserved characters and !'()* as they are.
func escape(s string) string {
	return unescaper.Replace(url.QueryEscape(s))
}

func stringify(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
