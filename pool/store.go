package pool

import (
	"sync"
	"sync/atomic"
)

// store is a pool backend: the idle free list plus the counters.
type store[T comparable] interface {
	// take removes and returns an idle object.
	take() (T, bool)

	// give adds an object to the free list. kept is false when the list is
	// full; dup is true when the object is already idle.
	give(item T) (kept, dup bool)

	// idle reports whether the object is currently in the free list.
	idle(item T) bool

	// drain empties the free list.
	drain() []T

	counts() (all, active int)
	add(all, active int)
	threadSafe() bool
}

func newStore[T comparable](maxSize int, threadSafe bool) store[T] {
	if threadSafe {
		return &concurrentStore[T]{free: make(chan T, maxSize)}
	}
	return &stackStore[T]{
		maxSize: maxSize,
		free:    make([]T, 0, min(maxSize, 64)),
		idleSet: make(map[T]struct{}),
	}
}

// concurrentStore is safe for concurrent use. The buffered channel bounds the
// free list; the idle set catches double returns.
type concurrentStore[T comparable] struct {
	free    chan T
	idleSet sync.Map
	all     atomic.Int64
	active  atomic.Int64
}

func (s *concurrentStore[T]) take() (T, bool) {
	select {
	case item := <-s.free:
		s.idleSet.Delete(item)
		return item, true
	default:
		var zero T
		return zero, false
	}
}

func (s *concurrentStore[T]) give(item T) (bool, bool) {
	if _, loaded := s.idleSet.LoadOrStore(item, struct{}{}); loaded {
		return false, true
	}
	select {
	case s.free <- item:
		return true, false
	default:
		s.idleSet.Delete(item)
		return false, false
	}
}

func (s *concurrentStore[T]) idle(item T) bool {
	_, ok := s.idleSet.Load(item)
	return ok
}

func (s *concurrentStore[T]) drain() []T {
	var items []T
	for {
		select {
		case item := <-s.free:
			s.idleSet.Delete(item)
			items = append(items, item)
		default:
			return items
		}
	}
}

func (s *concurrentStore[T]) counts() (int, int) {
	return int(s.all.Load()), int(s.active.Load())
}

func (s *concurrentStore[T]) add(all, active int) {
	if all != 0 {
		s.all.Add(int64(all))
	}
	if active != 0 {
		s.active.Add(int64(active))
	}
}

func (s *concurrentStore[T]) threadSafe() bool { return true }

// stackStore is a single-goroutine free list. Not safe for concurrent use.
type stackStore[T comparable] struct {
	maxSize int
	free    []T
	idleSet map[T]struct{}
	all     int
	active  int
}

func (s *stackStore[T]) take() (T, bool) {
	n := len(s.free)
	if n == 0 {
		var zero T
		return zero, false
	}
	item := s.free[n-1]
	var zero T
	s.free[n-1] = zero
	s.free = s.free[:n-1]
	delete(s.idleSet, item)
	return item, true
}

func (s *stackStore[T]) give(item T) (bool, bool) {
	if _, ok := s.idleSet[item]; ok {
		return false, true
	}
	if len(s.free) >= s.maxSize {
		return false, false
	}
	s.free = append(s.free, item)
	s.idleSet[item] = struct{}{}
	return true, false
}

func (s *stackStore[T]) idle(item T) bool {
	_, ok := s.idleSet[item]
	return ok
}

func (s *stackStore[T]) drain() []T {
	items := s.free
	s.free = make([]T, 0, min(s.maxSize, 64))
	clear(s.idleSet)
	return items
}

func (s *stackStore[T]) counts() (int, int) {
	return s.all, s.active
}

func (s *stackStore[T]) add(all, active int) {
	s.all += all
	s.active += active
}

func (s *stackStore[T]) threadSafe() bool { return false }
