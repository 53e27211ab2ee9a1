package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetThreadSafe_RebuildsPools(t *testing.T) {
	t.Cleanup(func() { SetThreadSafe(true) })

	var destroyed int
	p := newTestPool(t, 4, &destroyed)

	require.NoError(t, p.Return(p.Get()))
	require.NoError(t, p.Return(p.Get()))
	assert.True(t, p.Stats().ThreadSafe)
	assert.Equal(t, 1, p.CountInactive())

	SetThreadSafe(false)
	assert.False(t, ThreadSafe())
	assert.False(t, p.Stats().ThreadSafe)
	assertCounters(t, p, 0, 0, 0)
	assert.Equal(t, 1, destroyed, "idle objects are destroyed on rebuild")

	it := p.Get()
	require.NoError(t, p.Return(it))
	assertCounters(t, p, 1, 0, 1)

	SetThreadSafe(true)
	assert.True(t, p.Stats().ThreadSafe)
	assertCounters(t, p, 0, 0, 0)
}

func TestAll_ListsRegisteredPools(t *testing.T) {
	var destroyed int
	p := newTestPool(t, 2, &destroyed)
	it := p.Get()

	var found *Stats
	for _, st := range All() {
		if st.Name == p.Name() {
			st := st
			found = &st
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, 1, found.Active)
	assert.Equal(t, 2, found.MaxSize)

	require.NoError(t, p.Return(it))
	p.Close()
	for _, st := range All() {
		assert.NotEqual(t, t.Name(), st.Name)
	}
}

func TestBuffers(t *testing.T) {
	before := BufferStats().Active

	buf := GetBuffer()
	buf.WriteString("hello")
	assert.Equal(t, before+1, BufferStats().Active)

	PutBuffer(buf)
	assert.Equal(t, before, BufferStats().Active)
	assert.Zero(t, buf.Len())
}

func TestSetThreadSafe_KeepsActiveLeases(t *testing.T) {
	t.Cleanup(func() { SetThreadSafe(true) })

	var destroyed int
	p := newTestPool(t, 4, &destroyed)

	it := p.Get()
	SetThreadSafe(false)
	assertCounters(t, p, 1, 1, 0)

	require.NoError(t, p.Return(it))
	assertCounters(t, p, 1, 0, 1)
}
