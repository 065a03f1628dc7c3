// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"reflect"
	"testing"
	"time"

	"github.com/gogama/ajax/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	d := Defaults()
	assert.Equal(t, "GET", d.Method)
	assert.Equal(t, map[string]string{
		"Accept":       "application/json",
		"Content-Type": "application/json",
	}, d.Headers)
	require.NotNil(t, d.DataEncoder)
	require.NotNil(t, d.ResponseDecoder)
	require.NotNil(t, d.Transport)
	require.NotNil(t, d.Future)
	assert.IsType(t, &transport.Request{}, d.Transport())
	assert.False(t, d.IsRaw())
	assert.False(t, d.SendsCredentials())

	d.Headers["X-Mutated"] = "yes"
	assert.NotContains(t, Defaults().Headers, "X-Mutated", "Defaults must return a fresh copy")
}

func TestMerge(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, &Options{}, Merge())
		assert.Equal(t, &Options{}, Merge(nil, nil))
	})
	t.Run("right biased", func(t *testing.T) {
		listener := func(transport.Handle) {}
		a := &Options{
			Method:       "GET",
			URL:          "/a",
			Headers:      map[string]string{"Accept": "application/json", "X-A": "a"},
			Timeout:      time.Second,
			ResponseType: transport.JSON,
			Raw:          Bool(true),
			Events:       map[transport.Event]transport.Listener{transport.Progress: listener},
		}
		b := &Options{
			Method:          "POST",
			Headers:         map[string]string{"X-B": "b"},
			Raw:             Bool(false),
			WithCredentials: Bool(true),
			Data:            map[string]int{"n": 1},
		}
		o := Merge(a, nil, b)
		assert.Equal(t, "POST", o.Method)
		assert.Equal(t, "/a", o.URL)
		assert.Equal(t, map[string]string{"X-B": "b"}, o.Headers, "headers are replaced, not merged")
		assert.Equal(t, time.Second, o.Timeout)
		assert.Equal(t, transport.JSON, o.ResponseType)
		assert.False(t, o.IsRaw(), "false overrides true")
		assert.True(t, o.SendsCredentials())
		assert.Equal(t, map[string]int{"n": 1}, o.Data)
		assert.Len(t, o.Events, 1)
	})
	t.Run("functions", func(t *testing.T) {
		enc := func(interface{}, transport.Handle) (interface{}, error) { return "x", nil }
		o := Merge(Defaults(), &Options{DataEncoder: enc})
		assert.Equal(t, reflect.ValueOf(enc).Pointer(), reflect.ValueOf(o.DataEncoder).Pointer())
		assert.Equal(t, reflect.ValueOf(DecodeJSON).Pointer(), reflect.ValueOf(o.ResponseDecoder).Pointer())
	})
	t.Run("params", func(t *testing.T) {
		o := Merge(&Options{Params: Params{{"a", 1}}}, &Options{Params: Params{}})
		assert.NotNil(t, o.Params)
		assert.Empty(t, o.Params)
		o = Merge(&Options{Params: Params{{"a", 1}}}, &Options{})
		assert.Equal(t, Params{{"a", 1}}, o.Params)
	})
	t.Run("values not merged", func(t *testing.T) {
		a := &Options{}
		a.SetValue(testKey{}, "v")
		assert.Nil(t, Merge(a).Value(testKey{}))
	})
}

type testKey struct{}

func TestOptions_Value(t *testing.T) {
	o := &Options{}
	assert.Nil(t, o.Value(testKey{}))
	o.SetValue(testKey{}, 1)
	assert.Equal(t, 1, o.Value(testKey{}))
	o.SetValue(testKey{}, 2)
	assert.Equal(t, 2, o.Value(testKey{}))
	assert.Nil(t, o.Value("other"))
}

func TestBool(t *testing.T) {
	assert.True(t, *Bool(true))
	assert.False(t, *Bool(false))
	assert.NotSame(t, Bool(true), Bool(true))
}
