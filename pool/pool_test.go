package pool

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	value   int
	cleared bool
}

func newTestPool(t *testing.T, maxSize int, destroyed *int) *Pool[*item] {
	t.Helper()
	p, err := New(t.Name(), Policy[*item]{
		Create:    func() *item { return &item{} },
		OnReturn:  func(it *item) { it.value = 0; it.cleared = true },
		OnDestroy: func(*item) { *destroyed++ },
		MaxSize:   maxSize,
	})
	require.NoError(t, err)
	t.Cleanup(p.Close)
	return p
}

func assertCounters(t *testing.T, p *Pool[*item], all, active, inactive int) {
	t.Helper()
	assert.Equal(t, all, p.CountAll(), "all")
	assert.Equal(t, active, p.CountActive(), "active")
	assert.Equal(t, inactive, p.CountInactive(), "inactive")
	assert.Equal(t, p.CountAll(), p.CountActive()+p.CountInactive())
}

func forEachBackend(t *testing.T, fn func(t *testing.T)) {
	for _, threadSafe := range []bool{true, false} {
		name := "single-threaded"
		if threadSafe {
			name = "thread-safe"
		}
		t.Run(name, func(t *testing.T) {
			SetThreadSafe(threadSafe)
			t.Cleanup(func() { SetThreadSafe(true) })
			fn(t)
		})
	}
}

func TestNew_InvalidPolicy(t *testing.T) {
	tests := []struct {
		name    string
		policy  Policy[*item]
		wantErr error
	}{
		{
			name:    "missing factory",
			policy:  Policy[*item]{MaxSize: 1},
			wantErr: ErrMissingFactory,
		},
		{
			name:    "zero max size",
			policy:  Policy[*item]{Create: func() *item { return &item{} }},
			wantErr: ErrInvalidMaxSize,
		},
		{
			name:    "negative max size",
			policy:  Policy[*item]{Create: func() *item { return &item{} }, MaxSize: -3},
			wantErr: ErrInvalidMaxSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New("invalid", tt.policy)
			assert.Nil(t, p)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var poolErr *Error
			require.True(t, errors.As(err, &poolErr))
			assert.Equal(t, "new", poolErr.Op)
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustNew("broken", Policy[*item]{MaxSize: 1})
	})
}

func TestPool_GetReturn(t *testing.T) {
	forEachBackend(t, func(t *testing.T) {
		var destroyed int
		p := newTestPool(t, 4, &destroyed)

		a := p.Get()
		a.value = 42
		assertCounters(t, p, 1, 1, 0)

		require.NoError(t, p.Return(a))
		assert.True(t, a.cleared)
		assert.Zero(t, a.value)
		assertCounters(t, p, 1, 0, 1)

		b := p.Get()
		assert.Same(t, a, b, "idle object should be reused")
		assertCounters(t, p, 1, 1, 0)
		require.NoError(t, p.Return(b))
		assert.Zero(t, destroyed)
	})
}

func TestPool_Capacity(t *testing.T) {
	forEachBackend(t, func(t *testing.T) {
		const maxSize, extra = 3, 2
		var destroyed int
		p := newTestPool(t, maxSize, &destroyed)

		leased := make([]*item, 0, maxSize+extra)
		for range maxSize + extra {
			leased = append(leased, p.Get())
		}
		assertCounters(t, p, maxSize+extra, maxSize+extra, 0)

		for _, it := range leased {
			require.NoError(t, p.Return(it))
		}
		assertCounters(t, p, maxSize, 0, maxSize)
		assert.Equal(t, extra, destroyed)

		p.Clear()
		assertCounters(t, p, 0, 0, 0)
		assert.Equal(t, extra+maxSize, destroyed)
	})
}

func TestPool_ReturnErrors(t *testing.T) {
	forEachBackend(t, func(t *testing.T) {
		sentinel := &item{value: -1}
		p, err := New(t.Name(), Policy[*item]{
			Create:   func() *item { return &item{} },
			MaxSize:  2,
			Sentinel: sentinel,
		})
		require.NoError(t, err)
		t.Cleanup(p.Close)

		assert.ErrorIs(t, p.Return(sentinel), ErrSentinel)
		assert.ErrorIs(t, p.Return(nil), ErrNilItem)

		it := p.Get()
		require.NoError(t, p.Return(it))
		assert.ErrorIs(t, p.Return(it), ErrAlreadyReturned)
		assertCounters(t, p, 1, 0, 1)
	})
}

func TestPool_SentinelWhenDisabled(t *testing.T) {
	SetEnabled(false)
	t.Cleanup(func() { SetEnabled(true) })

	sentinel := &item{}
	p, err := New(t.Name(), Policy[*item]{
		Create:   func() *item { return &item{} },
		MaxSize:  1,
		Sentinel: sentinel,
	})
	require.NoError(t, err)
	t.Cleanup(p.Close)

	assert.ErrorIs(t, p.Return(sentinel), ErrSentinel)
}

func TestPool_Disabled(t *testing.T) {
	SetEnabled(false)
	t.Cleanup(func() { SetEnabled(true) })

	var destroyed int
	p := newTestPool(t, 2, &destroyed)

	a := p.Get()
	require.NoError(t, p.Return(a))
	assert.True(t, a.cleared)

	b := p.Get()
	assert.NotSame(t, a, b, "disabled pools never reuse")
	require.NoError(t, p.Return(b))
	assertCounters(t, p, 0, 0, 0)
}

func TestPool_ConcurrentBalance(t *testing.T) {
	SetThreadSafe(true)

	var destroyed int
	var mu sync.Mutex
	p, err := New(t.Name(), Policy[*item]{
		Create: func() *item { return &item{} },
		OnDestroy: func(*item) {
			mu.Lock()
			destroyed++
			mu.Unlock()
		},
		MaxSize: 8,
	})
	require.NoError(t, err)
	t.Cleanup(p.Close)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				it := p.Get()
				it.value++
				if err := p.Return(it); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	assert.Zero(t, p.CountActive())
	assert.LessOrEqual(t, p.CountInactive(), 8)
	assert.Equal(t, p.CountAll(), p.CountInactive())
}

func TestPool_ClearKeepsLeases(t *testing.T) {
	forEachBackend(t, func(t *testing.T) {
		var destroyed int
		p := newTestPool(t, 4, &destroyed)

		idle := p.Get()
		leased := p.Get()
		require.NoError(t, p.Return(idle))
		assertCounters(t, p, 2, 1, 1)

		p.Clear()
		assertCounters(t, p, 1, 1, 0)
		assert.Equal(t, 1, destroyed)

		require.NoError(t, p.Return(leased))
		assertCounters(t, p, 1, 0, 1)
	})
}

func TestPool_EnabledSwitchBalances(t *testing.T) {
	t.Cleanup(func() { SetEnabled(true) })

	var destroyed int
	p := newTestPool(t, 4, &destroyed)

	before := p.Get()
	SetEnabled(false)
	during := p.Get()
	assertCounters(t, p, 2, 2, 0)

	require.NoError(t, p.Return(before))
	SetEnabled(true)
	require.NoError(t, p.Return(during))
	assertCounters(t, p, 1, 0, 1)
}
