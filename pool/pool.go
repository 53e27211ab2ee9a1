package pool

// DefaultMaxSize is the capacity used by the node and context pools.
const DefaultMaxSize = 1024

// Policy describes how a pool creates, prepares, resets and evicts objects.
type Policy[T comparable] struct {
	// Create builds a new object when no idle object is available. Required.
	Create func() T

	// OnGet runs on every object handed out by Get. Optional.
	OnGet func(T)

	// OnReturn resets an object handed back with Return. Optional.
	OnReturn func(T)

	// OnDestroy runs when an object is evicted because the pool is full or
	// cleared. Optional.
	OnDestroy func(T)

	// MaxSize is the number of idle objects the pool keeps. Must be > 0.
	MaxSize int

	// Sentinel, if set, is an object that must never enter the pool.
	Sentinel T
}

// Pool is a capacity-bounded free list of T. Growth is unbounded: Get always
// succeeds, creating objects when none are idle. At most MaxSize idle objects
// are kept; extra returns are destroyed.
type Pool[T comparable] struct {
	name   string
	policy Policy[T]
	store  store[T]
}

// New creates a pool and adds it to the process-wide registry.
// It fails with ErrMissingFactory or ErrInvalidMaxSize on a bad policy.
func New[T comparable](name string, policy Policy[T]) (*Pool[T], error) {
	if policy.Create == nil {
		return nil, newError(name, "new", ErrMissingFactory)
	}
	if policy.MaxSize <= 0 {
		return nil, newError(name, "new", ErrInvalidMaxSize)
	}

	p := &Pool[T]{
		name:   name,
		policy: policy,
		store:  newStore[T](policy.MaxSize, ThreadSafe()),
	}
	register(p)
	return p, nil
}

// MustNew creates a pool, panicking on an invalid policy.
// Use for package-level pools whose policy is fixed at compile time.
func MustNew[T comparable](name string, policy Policy[T]) *Pool[T] {
	p, err := New(name, policy)
	if err != nil {
		panic(err)
	}
	return p
}

// Name returns the pool name.
func (p *Pool[T]) Name() string {
	return p.name
}

// MaxSize returns the idle capacity.
func (p *Pool[T]) MaxSize() int {
	return p.policy.MaxSize
}

// Get leases an object. Idle objects are reused; otherwise a new one is
// created. When pooling is disabled every call creates a new object; the
// lease is still counted so Return balances it in either mode.
func (p *Pool[T]) Get() T {
	if !Enabled() {
		item := p.policy.Create()
		p.store.add(1, 1)
		p.onGet(item)
		return item
	}

	item, ok := p.store.take()
	if ok {
		p.store.add(0, 1)
	} else {
		item = p.policy.Create()
		p.store.add(1, 1)
	}
	p.onGet(item)
	return item
}

// Return hands an object back. The object is reset with OnReturn and kept if
// the pool has room, otherwise it is destroyed with OnDestroy.
//
// Returning the sentinel fails with ErrSentinel whether or not pooling is
// enabled. Returning an object that is already idle fails with
// ErrAlreadyReturned.
func (p *Pool[T]) Return(item T) error {
	var zero T
	if item == zero {
		return newError(p.name, "return", ErrNilItem)
	}
	if p.policy.Sentinel != zero && item == p.policy.Sentinel {
		return newError(p.name, "return", ErrSentinel)
	}

	if !Enabled() {
		p.onReturn(item)
		p.store.add(-1, -1)
		return nil
	}

	if p.store.idle(item) {
		return newError(p.name, "return", ErrAlreadyReturned)
	}
	p.onReturn(item)

	kept, dup := p.store.give(item)
	if dup {
		return newError(p.name, "return", ErrAlreadyReturned)
	}
	if kept {
		p.store.add(0, -1)
		return nil
	}
	p.store.add(-1, -1)
	p.onDestroy(item)
	return nil
}

// CountAll returns the number of objects created and not destroyed.
func (p *Pool[T]) CountAll() int {
	all, _ := p.store.counts()
	return all
}

// CountActive returns the number of leased objects.
func (p *Pool[T]) CountActive() int {
	_, active := p.store.counts()
	return active
}

// CountInactive returns the number of idle objects.
func (p *Pool[T]) CountInactive() int {
	all, active := p.store.counts()
	return all - active
}

// Stats returns a snapshot of the counters.
func (p *Pool[T]) Stats() Stats {
	all, active := p.store.counts()
	return Stats{
		Name:       p.name,
		All:        all,
		Active:     active,
		Inactive:   all - active,
		MaxSize:    p.policy.MaxSize,
		ThreadSafe: p.store.threadSafe(),
	}
}

// Clear destroys every idle object. Leased objects stay counted as active
// and may be returned later.
func (p *Pool[T]) Clear() {
	idle := p.store.drain()
	for _, item := range idle {
		p.onDestroy(item)
	}
	p.store.add(-len(idle), 0)
}

// Close clears the pool and removes it from the registry.
func (p *Pool[T]) Close() {
	p.Clear()
	unregister(p)
}

// rebuild drains the pool and swaps its backend, carrying the active
// leases over.
func (p *Pool[T]) rebuild(threadSafe bool) {
	p.Clear()
	_, active := p.store.counts()
	p.store = newStore[T](p.policy.MaxSize, threadSafe)
	p.store.add(active, active)
}

func (p *Pool[T]) onGet(item T) {
	if p.policy.OnGet != nil {
		p.policy.OnGet(item)
	}
}

func (p *Pool[T]) onReturn(item T) {
	if p.policy.OnReturn != nil {
		p.policy.OnReturn(item)
	}
}

func (p *Pool[T]) onDestroy(item T) {
	if p.policy.OnDestroy != nil {
		p.policy.OnDestroy(item)
	}
}
