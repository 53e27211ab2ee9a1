// Package pool provides generic object pools with capacity limits, lifecycle
// callbacks and a process-wide registry.
//
// A Pool recycles mutable objects so steady-state formatting does not
// allocate. Each pool is built from a Policy that supplies the factory and the
// lifecycle hooks:
//
//	p, err := pool.New("buffers", pool.Policy[*bytes.Buffer]{
//	    Create:   func() *bytes.Buffer { return new(bytes.Buffer) },
//	    OnReturn: func(b *bytes.Buffer) { b.Reset() },
//	    MaxSize:  64,
//	})
//	buf := p.Get()
//	defer p.Return(buf)
//
// # Backends
//
// Two backends exist. The thread-safe backend keeps idle objects in a buffered
// channel and its counters in atomics, so many goroutines may Get and Return
// concurrently. The single-threaded backend is a plain slice stack with no
// synchronization and is only valid under external single-goroutine use.
//
// The backend is chosen process-wide with SetThreadSafe. Switching drains and
// rebuilds every registered pool; it must only happen while no objects are
// leased.
//
// # Counters
//
// Every pool reports CountAll, CountActive and CountInactive, and
// CountAll() == CountActive() + CountInactive() always holds.
//
// # Programming errors
//
// Returning a pool's sentinel object, returning an object twice, a
// non-positive MaxSize or a missing Create function are integration bugs. They
// are reported as *Error values wrapping ErrSentinel, ErrAlreadyReturned,
// ErrInvalidMaxSize and ErrMissingFactory. They never depend on input data.
package pool
