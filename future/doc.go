// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package future provides a minimal promise-style future: a value which is
settled exactly once, either resolved with a value or rejected with an
error, by callbacks handed to an executor function.

	f := future.New(func(resolve future.ResolveFunc, reject future.RejectFunc) {
		go func() {
			resolve(42)
		}()
	})
	v, err := future.Await(ctx, f)

The executor runs synchronously inside New. A panic escaping the executor
rejects the future with a *PanicError, so a failure during setup is
delivered through the same channel as any other failure.

The ajax client builds every request on a Future produced by a Factory.
New is the default Factory; callers may plug in their own to integrate
with another asynchronous abstraction.
*/
package future
