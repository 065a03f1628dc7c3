// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams_Encode(t *testing.T) {
	testCases := []struct {
		name     string
		params   Params
		expected string
	}{
		{"nil", nil, ""},
		{"empty", Params{}, ""},
		{"single", Params{{"a", "1"}}, "a=1"},
		{"space", Params{{"a", "1"}, {"b", "x y"}}, "a=1&b=x%20y"},
		{"insertion order", Params{{"z", 1}, {"a", 2}, {"m", 3}}, "z=1&a=2&m=3"},
		{"separators escaped", Params{{"k&=", "v=&+?/"}}, "k%26%3D=v%3D%26%2B%3F%2F"},
		{"scalars", Params{{"i", 7}, {"f", 1.5}, {"b", true}, {"n", nil}}, "i=7&f=1.5&b=true&n="},
		{"unicode", Params{{"é", "日本"}}, "%C3%A9=%E6%97%A5%E6%9C%AC"},
		{"repeated key", Params{{"a", 1}, {"a", 2}}, "a=1&a=2"},
		{"unreserved marks", Params{{"k", "!'()*~-_."}}, "k=!'()*~-_."},
		{"escaped marks", Params{{"k", "%21%2A"}}, "k=%2521%252A"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, testCase.params.Encode())
		})
	}
}

func TestParams_EncodeRoundTrip(t *testing.T) {
	p := Params{
		{"plain", "value"},
		{"with space", "a b c"},
		{"sym&bols=", "+%&=?#/"},
		{"marks", "!'()*%21"},
		{"empty", ""},
		{"ünïcödé", "∑∂"},
	}
	pairs := strings.Split(p.Encode(), "&")
	require.Len(t, pairs, len(p))
	for i, pair := range pairs {
		kv := strings.Split(pair, "=")
		require.Len(t, kv, 2)
		k, err := url.PathUnescape(kv[0])
		require.NoError(t, err)
		v, err := url.PathUnescape(kv[1])
		require.NoError(t, err)
		assert.Equal(t, p[i].Key, k)
		assert.Equal(t, p[i].Value, v)
	}
}

func TestParams_AddSetGet(t *testing.T) {
	var p Params
	p.Add("a", 1)
	p.Add("b", 2)
	p.Add("a", 3)
	p.Set("b", 20)
	p.Set("c", 30)
	assert.Equal(t, Params{{"a", 1}, {"b", 20}, {"a", 3}, {"c", 30}}, p)
	v, ok := p.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	_, ok = p.Get("missing")
	assert.False(t, ok)
}

func TestParamsFromMap(t *testing.T) {
	assert.Nil(t, ParamsFromMap(nil))
	p := ParamsFromMap(map[string]interface{}{"b": 2, "a": "1", "c": nil})
	assert.Equal(t, Params{{"a", "1"}, {"b", 2}, {"c", nil}}, p)
}

func TestParamsFromValues(t *testing.T) {
	assert.Nil(t, ParamsFromValues(nil))
	p := ParamsFromValues(url.Values{"ham": {"eggs", "spam"}, "color": {"red"}})
	assert.Equal(t, Params{{"color", "red"}, {"ham", "eggs"}, {"ham", "spam"}}, p)
	assert.Equal(t, "color=red&ham=eggs&ham=spam", p.Encode())
}

func TestParamsOf(t *testing.T) {
	type search struct {
		Query string   `url:"q"`
		Page  int      `url:"page,omitempty"`
		Tags  []string `url:"tag"`
	}
	testCases := []struct {
		name     string
		input    interface{}
		expected Params
	}{
		{"nil", nil, nil},
		{"params", Params{{"z", 1}, {"a", 2}}, Params{{"z", 1}, {"a", 2}}},
		{"map interface", map[string]interface{}{"b": 1, "a": 2}, Params{{"a", 2}, {"b", 1}}},
		{"map string", map[string]string{"b": "1", "a": "2"}, Params{{"a", "2"}, {"b", "1"}}},
		{"values", url.Values{"x": {"1"}}, Params{{"x", "1"}}},
		{"struct", search{Query: "go lang", Tags: []string{"x", "y"}}, Params{{"q", "go lang"}, {"tag", "x"}, {"tag", "y"}}},
		{"struct pointer", &search{Query: "q", Page: 2}, Params{{"page", "2"}, {"q", "q"}}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			p, err := ParamsOf(testCase.input)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, p)
		})
	}
	t.Run("unsupported", func(t *testing.T) {
		p, err := ParamsOf(42)
		assert.Nil(t, p)
		assert.Error(t, err)
	})
}

func TestEncodeForm(t *testing.T) {
	f := EncodeForm(Params{{"a", 1}, {"b", "two"}, {"a", nil}})
	assert.Equal(t, 3, f.Len())
	v, ok := f.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	v, ok = f.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "two", v)
	assert.Equal(t, 0, EncodeForm(nil).Len())
}
