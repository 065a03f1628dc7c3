// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ajax

import (
	"testing"
	"time"

	"github.com/gogama/ajax/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	t.Run("params", func(t *testing.T) {
		expected := &Call{}
		m := newMockDoer(t)
		m.On("Do", mock.MatchedBy(func(o *request.Options) bool {
			return o.Method == "GET" && o.URL == "foo" &&
				assert.ObjectsAreEqual(request.Params{{Key: "a", Value: 1}}, o.Params)
		})).Return(expected).Once()
		c := Get(m, "foo", request.Params{{Key: "a", Value: 1}}, nil)
		assert.Same(t, expected, c)
		m.AssertExpectations(t)
	})
	t.Run("args override", func(t *testing.T) {
		expected := &Call{}
		m := newMockDoer(t)
		m.On("Do", mock.MatchedBy(func(o *request.Options) bool {
			return o.Method == "HEAD" && o.URL == "bar" && o.Params == nil && o.Timeout == time.Second
		})).Return(expected).Once()
		c := Get(m, "foo", nil, &request.Options{Method: "HEAD", URL: "bar", Timeout: time.Second})
		assert.Same(t, expected, c)
		m.AssertExpectations(t)
	})
}

func TestWithData(t *testing.T) {
	data := map[string]interface{}{"ham": "eggs"}
	testCases := []struct {
		method string
		verb   func(Doer, string, interface{}, *request.Options) *Call
	}{
		{"PUT", Put},
		{"POST", Post},
		{"PATCH", Patch},
	}
	for _, testCase := range testCases {
		t.Run(testCase.method, func(t *testing.T) {
			expected := &Call{}
			m := newMockDoer(t)
			m.On("Do", mock.MatchedBy(func(o *request.Options) bool {
				return o.Method == testCase.method && o.URL == "baz" &&
					assert.ObjectsAreEqual(data, o.Data) && o.IsRaw()
			})).Return(expected).Once()
			c := testCase.verb(m, "baz", data, &request.Options{Raw: request.Bool(true)})
			assert.Same(t, expected, c)
			m.AssertExpectations(t)
		})
	}
}

func TestWithoutData(t *testing.T) {
	testCases := []struct {
		method string
		verb   func(Doer, string, *request.Options) *Call
	}{
		{"DELETE", Delete},
		{"OPTIONS", Options},
	}
	for _, testCase := range testCases {
		t.Run(testCase.method, func(t *testing.T) {
			expected := &Call{}
			m := newMockDoer(t)
			m.On("Do", mock.MatchedBy(func(o *request.Options) bool {
				return o.Method == testCase.method && o.URL == "qux" && o.Data == nil
			})).Return(expected).Once()
			c := testCase.verb(m, "qux", nil)
			assert.Same(t, expected, c)
			m.AssertExpectations(t)
		})
	}
}

func TestInflate(t *testing.T) {
	t.Run("Inflate", func(t *testing.T) {
		t.Run("nil doer", func(t *testing.T) {
			assert.PanicsWithValue(t, "ajax: nil doer", func() {
				Inflate(nil)
			})
		})
		t.Run("already an Executor", func(t *testing.T) {
			cl := &Client{}
			x := Inflate(cl)
			assert.Same(t, cl, x)
		})
		t.Run("not yet an Executor", func(t *testing.T) {
			m := newMockDoer(t)
			x := Inflate(m)
			require.IsType(t, inflated{}, x)
			assert.Same(t, m, x.(inflated).doer)
		})
	})
	expected := &Call{}
	t.Run("Do", func(t *testing.T) {
		o := &request.Options{Method: "PUT", URL: "http://www.randomcollections.com/widgets/1", Data: "foo"}
		m := newMockDoer(t)
		m.On("Do", o).Return(expected).Once()
		assert.Same(t, expected, Inflate(m).Do(o))
		m.AssertExpectations(t)
	})
	testCases := []struct {
		name   string
		method string
		call   func(Executor) *Call
	}{
		{"Get", "GET", func(x Executor) *Call { return x.Get("u", nil, nil) }},
		{"Put", "PUT", func(x Executor) *Call { return x.Put("u", nil, nil) }},
		{"Post", "POST", func(x Executor) *Call { return x.Post("u", nil, nil) }},
		{"Patch", "PATCH", func(x Executor) *Call { return x.Patch("u", nil, nil) }},
		{"Delete", "DELETE", func(x Executor) *Call { return x.Delete("u", nil) }},
		{"Options", "OPTIONS", func(x Executor) *Call { return x.Options("u", nil) }},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			m := newMockDoer(t)
			m.On("Do", mock.MatchedBy(func(o *request.Options) bool {
				return o.Method == testCase.method && o.URL == "u"
			})).Return(expected).Once()
			assert.Same(t, expected, testCase.call(Inflate(m)))
			m.AssertExpectations(t)
		})
	}
}

type mockDoer struct {
	mock.Mock
}

func newMockDoer(t *testing.T) *mockDoer {
	m := &mockDoer{}
	m.Test(t)
	return m
}

func (m *mockDoer) Do(o *request.Options) *Call {
	args := m.Called(o)
	c := args.Get(0)
	if c == nil {
		return nil
	}
	return c.(*Call)
}
