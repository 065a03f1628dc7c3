// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"github.com/gogama/ajax/transport"
)

// EncodeJSON is the default DataEncoder. It marshals data to a JSON
// string.
func EncodeJSON(data interface{}, _ transport.Handle) (interface{}, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// DecodeJSON is the default ResponseDecoder. A string or []byte body is
// unmarshalled from JSON into an interface{} value. Any other value,
// for example a body the transport already parsed because the response
// type was transport.JSON, is returned unchanged.
func DecodeJSON(data interface{}) (interface{}, error) {
	var b []byte
	switch x := data.(type) {
	case string:
		b = []byte(x)
	case []byte:
		b = x
	default:
		return data, nil
	}
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("ajax/request: invalid JSON response: %w", err)
	}
	return v, nil
}

// IsStructured reports whether data is a structured value which must be
// encoded before sending, as opposed to a body the transport sends
// as-is. Nil, string, []byte, io.Reader, url.Values and
// *transport.FormData are not structured; everything else is.
func IsStructured(data interface{}) bool {
	switch data.(type) {
	case nil, string, []byte, io.Reader, url.Values, *transport.FormData:
		return false
	default:
		return true
	}
}

// IsEmpty reports whether a response body is empty, in which case it is
// not passed to the ResponseDecoder. Nil, "" and a zero-length []byte
// are empty.
func IsEmpty(data interface{}) bool {
	switch x := data.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case []byte:
		return len(x) == 0
	default:
		return false
	}
}
