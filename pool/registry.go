package pool

import (
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
)

// Stats is a snapshot of a pool's counters.
type Stats struct {
	Name       string `json:"name" yaml:"name"`
	All        int    `json:"all" yaml:"all"`
	Active     int    `json:"active" yaml:"active"`
	Inactive   int    `json:"inactive" yaml:"inactive"`
	MaxSize    int    `json:"max_size" yaml:"max_size"`
	ThreadSafe bool   `json:"thread_safe" yaml:"thread_safe"`
}

// managed is the type-erased view the registry keeps of every pool.
type managed interface {
	Name() string
	Stats() Stats
	Clear()
	rebuild(threadSafe bool)
}

// registry holds every pool created in the process.
var (
	registryMu sync.RWMutex
	registry   []managed

	// Stored inverted so the zero values mean thread-safe and enabled.
	singleThreaded atomic.Bool
	disabled       atomic.Bool
)

func register(p managed) {
	registryMu.Lock()
	defer registryMu.Unlock()

	registry = append(registry, p)
}

func unregister(p managed) {
	registryMu.Lock()
	defer registryMu.Unlock()

	for i, m := range registry {
		if m == p {
			registry = append(registry[:i], registry[i+1:]...)
			return
		}
	}
}

// ThreadSafe reports whether new and rebuilt pools use the thread-safe backend.
func ThreadSafe() bool {
	return !singleThreaded.Load()
}

// SetThreadSafe selects the backend of every pool. Changing the mode drains
// and rebuilds all registered pools, so it must only be called while no
// objects are leased.
func SetThreadSafe(on bool) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if ThreadSafe() == on {
		return
	}
	singleThreaded.Store(!on)

	for _, p := range registry {
		if st := p.Stats(); st.Active > 0 {
			slog.Warn("rebuilding pool with leased objects",
				slog.String("pool", st.Name),
				slog.Int("active", st.Active),
				slog.Bool("thread_safe", on))
		}
		p.rebuild(on)
	}
}

// Enabled reports whether pools reuse objects.
func Enabled() bool {
	return !disabled.Load()
}

// SetEnabled turns object reuse on or off. While disabled, Get always creates
// and Return resets the object and drops it. Leases are counted in both
// modes, so objects leased before a switch still balance when returned.
// Sentinel checks still apply.
func SetEnabled(on bool) {
	disabled.Store(!on)
}

// All returns counter snapshots for every registered pool, sorted by name.
func All() []Stats {
	registryMu.RLock()
	defer registryMu.RUnlock()

	stats := make([]Stats, 0, len(registry))
	for _, p := range registry {
		stats = append(stats, p.Stats())
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name })
	return stats
}

// ClearAll destroys the idle objects of every registered pool. Leased
// objects keep their active count until returned.
func ClearAll() {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, p := range registry {
		p.Clear()
	}
}
