// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

// FormData is an ordered multipart/form-data container. Its zero value
// is an empty form ready to use.
//
// A *FormData may be passed to Handle.Send as the request body, in which
// case the handle sets the Content-Type header, including the multipart
// boundary, itself.
type FormData struct {
	fields []formField
}

type formField struct {
	name     string
	value    string
	filename string
	file     io.Reader
}

// Append adds a field. Values are stringified with fmt.Sprint; a nil
// value is appended as an empty string.
func (f *FormData) Append(name string, value interface{}) {
	s := ""
	if value != nil {
		s = fmt.Sprint(value)
	}
	f.fields = append(f.fields, formField{name: name, value: s})
}

// AppendFile adds a file field whose content is read from r when the
// form is encoded.
func (f *FormData) AppendFile(name, filename string, r io.Reader) {
	f.fields = append(f.fields, formField{name: name, filename: filename, file: r})
}

// Len returns the number of fields in the form.
func (f *FormData) Len() int {
	return len(f.fields)
}

// Get returns the value of the first non-file field with the given
// name, and whether one was found.
func (f *FormData) Get(name string) (string, bool) {
	for _, field := range f.fields {
		if field.name == name && field.file == nil {
			return field.value, true
		}
	}
	return "", false
}

// Encode writes the form as a multipart body and returns the matching
// Content-Type header value.
//
// File fields are consumed, so a form holding file fields can only be
// encoded once.
func (f *FormData) Encode() (contentType string, body []byte, err error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, field := range f.fields {
		if field.file == nil {
			err = w.WriteField(field.name, field.value)
		} else {
			var part io.Writer
			part, err = w.CreateFormFile(field.name, field.filename)
			if err == nil {
				_, err = io.Copy(part, field.file)
			}
		}
		if err != nil {
			return "", nil, err
		}
	}
	if err = w.Close(); err != nil {
		return "", nil, err
	}
	return w.FormDataContentType(), buf.Bytes(), nil
}
