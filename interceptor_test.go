// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ajax

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/gogama/ajax/request"
	"github.com/gogama/ajax/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestInterceptors(t *testing.T) {
	var seqs []string
	ic1 := &testInterceptor{seq: 1, seqs: &seqs}
	ic2 := &testInterceptor{seq: 2, seqs: &seqs}
	ic3 := &testInterceptor{seq: 3, seqs: &seqs}
	r := &Interceptors{}
	t.Run("Add", func(t *testing.T) {
		assert.PanicsWithValue(t, "ajax: nil interceptor", func() { _ = r.Add(Send, nil, false) })
		err := r.Add(Phase(123), ic1, false)
		assert.True(t, errors.Is(err, ErrUnknownInterceptorType))
		assert.EqualError(t, err, `ajax: unknown interceptor type: "Phase(123)" (available types: send, complete, error)`)
		require.NoError(t, r.Add(Send, ic1, false))
		require.NoError(t, r.Add(Send, ic2, false))
		require.NoError(t, r.Add(Send, ic3, true))
		require.NoError(t, r.Add(Error, ic1, false))
		assert.Equal(t, 3, r.Len(Send))
		assert.Equal(t, 0, r.Len(Complete))
		assert.Equal(t, 1, r.Len(Error))
		assert.Equal(t, 0, r.Len(Phase(-1)))
	})
	t.Run("run", func(t *testing.T) {
		h := &fakeHandle{}
		o := &request.Options{URL: "x"}
		r.run(Complete, h, o)
		assert.Empty(t, seqs)
		r.run(Send, h, o)
		assert.Equal(t, []string{"3", "1", "2"}, seqs)
		seqs = seqs[:0]
		r.run(Error, h, o)
		assert.Equal(t, []string{"1"}, seqs)
		seqs = seqs[:0]
		for _, ic := range []*testInterceptor{ic1, ic2, ic3} {
			for _, got := range ic.got {
				assert.Same(t, h, got.h)
				assert.Same(t, o, got.o)
			}
		}
	})
	t.Run("Remove", func(t *testing.T) {
		_, err := r.Remove(Phase(3), ic1)
		assert.True(t, errors.Is(err, ErrUnknownInterceptorType))
		removed, err := r.Remove(Complete, ic1)
		require.NoError(t, err)
		assert.False(t, removed)
		removed, err = r.Remove(Send, ic1)
		require.NoError(t, err)
		assert.True(t, removed)
		removed, err = r.Remove(Send, ic1)
		require.NoError(t, err)
		assert.False(t, removed, "only one occurrence was registered")
		removed, err = r.Remove(Send, nil)
		require.NoError(t, err)
		assert.False(t, removed)
		r.run(Send, &fakeHandle{}, &request.Options{})
		assert.Equal(t, []string{"3", "2"}, seqs)
		seqs = seqs[:0]
	})
	t.Run("nil registry", func(t *testing.T) {
		var nilRegistry *Interceptors
		assert.NotPanics(t, func() { nilRegistry.run(Send, &fakeHandle{}, &request.Options{}) })
	})
}

func TestInterceptors_RemoveFirstOccurrence(t *testing.T) {
	var seqs []string
	ic := &testInterceptor{seq: 1, seqs: &seqs}
	other := &testInterceptor{seq: 2, seqs: &seqs}
	r := &Interceptors{}
	require.NoError(t, r.Add(Complete, ic, false))
	require.NoError(t, r.Add(Complete, other, false))
	require.NoError(t, r.Add(Complete, ic, false))
	removed, err := r.Remove(Complete, ic)
	require.NoError(t, err)
	assert.True(t, removed)
	r.run(Complete, &fakeHandle{}, &request.Options{})
	assert.Equal(t, []string{"2", "1"}, seqs)
}

func TestInterceptors_Named(t *testing.T) {
	m := newMockInterceptor(t)
	h := &fakeHandle{}
	o := &request.Options{}
	m.On("Intercept", h, o).Once()

	r := &Interceptors{}
	err := r.AddNamed("sending", m, false)
	assert.True(t, errors.Is(err, ErrUnknownInterceptorType))
	_, err = r.RemoveNamed("Send", m)
	assert.True(t, errors.Is(err, ErrUnknownInterceptorType))

	require.NoError(t, r.AddNamed("complete", m, false))
	r.run(Complete, h, o)
	m.AssertExpectations(t)

	removed, err := r.RemoveNamed("complete", m)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 0, r.Len(Complete))
}

func TestInterceptors_Snapshot(t *testing.T) {
	r := &Interceptors{}
	var ran []string
	var late InterceptorFunc = func(transport.Handle, *request.Options) {
		ran = append(ran, "late")
	}
	var adder InterceptorFunc = func(transport.Handle, *request.Options) {
		ran = append(ran, "adder")
		require.NoError(t, r.Add(Send, &late, false))
	}
	require.NoError(t, r.Add(Send, &adder, false))
	r.run(Send, &fakeHandle{}, &request.Options{})
	assert.Equal(t, []string{"adder"}, ran, "an interceptor added during a run must not join that run")
	assert.Equal(t, 2, r.Len(Send))
}

func TestInterceptors_Concurrent(t *testing.T) {
	r := &Interceptors{}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				ic := &testInterceptor{seqs: &[]string{}}
				_ = r.Add(Complete, ic, j%2 == 0)
				r.run(Complete, &fakeHandle{}, &request.Options{})
				removed, _ := r.Remove(Complete, ic)
				assert.True(t, removed)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, r.Len(Complete))
}

func TestInterceptorFunc(t *testing.T) {
	var _h transport.Handle
	var _o *request.Options
	var f = func(h transport.Handle, o *request.Options) {
		_h = h
		_o = o
	}
	ic := InterceptorFunc(f)
	h := &fakeHandle{}
	o := &request.Options{}
	ic.Intercept(h, o)

	assert.Same(t, h, _h)
	assert.Same(t, o, _o)

	t.Run("removal", func(t *testing.T) {
		r := &Interceptors{}
		require.NoError(t, r.Add(Send, ic, false))
		removed, err := r.Remove(Send, ic)
		require.NoError(t, err)
		assert.False(t, removed, "function values are not comparable")
		require.NoError(t, r.Add(Send, &ic, false))
		removed, err = r.Remove(Send, &ic)
		require.NoError(t, err)
		assert.True(t, removed)
		assert.Equal(t, 1, r.Len(Send))
	})
}

type testInterceptor struct {
	mu   sync.Mutex
	seq  int
	seqs *[]string
	got  []intercepted
}

type intercepted struct {
	h transport.Handle
	o *request.Options
}

func (ic *testInterceptor) Intercept(h transport.Handle, o *request.Options) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	*ic.seqs = append(*ic.seqs, fmt.Sprintf("%d", ic.seq))
	ic.got = append(ic.got, intercepted{h, o})
}

type mockInterceptor struct {
	mock.Mock
}

func newMockInterceptor(t *testing.T) *mockInterceptor {
	m := &mockInterceptor{}
	m.Test(t)
	return m
}

func (m *mockInterceptor) Intercept(h transport.Handle, o *request.Options) {
	m.Called(h, o)
}
