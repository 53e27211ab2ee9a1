package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/fmtkit/settings"
)

func TestEngine_ParseCache(t *testing.T) {
	before := activeLeases()

	s := settings.Default()
	s.Formatter.CacheSize = 2
	e := newEngine(t, WithSettings(s))

	for _, tmpl := range []string{"{0}a", "{0}b", "{0}a", "{0}c"} {
		_, err := e.Render(tmpl, "x")
		require.NoError(t, err)
	}
	assert.Equal(t, 2, e.CachedTemplates())

	e.ClearCache()
	assert.Equal(t, 0, e.CachedTemplates())
	assert.Equal(t, before, activeLeases(), "evicted templates return to their pools")
}

func TestEngine_ParseCacheDisabled(t *testing.T) {
	s := settings.Default()
	s.Formatter.CacheSize = 0
	e := newEngine(t, WithSettings(s))

	got, err := e.Render("{0}", 1)
	require.NoError(t, err)
	assert.Equal(t, "1", got)
	assert.Equal(t, 0, e.CachedTemplates())
}

func TestParseCache_EvictWhileLeased(t *testing.T) {
	before := activeLeases()
	e := newEngine(t)

	c := newParseCache(1)
	f, err := e.Parse("{0} leased")
	require.NoError(t, err)
	entry, added := c.add("{0} leased", f)
	require.True(t, added)

	other, err := e.Parse("{0} other")
	require.NoError(t, err)
	second, _ := c.add("{0} other", other)
	c.release(second)

	assert.True(t, entry.evicted)
	assert.NotEmpty(t, entry.format.Items, "a leased format survives eviction")

	c.release(entry)
	c.purge()
	assert.Equal(t, before, activeLeases())
}
