package format

import (
	"sync"

	"github.com/randalmurphal/fmtkit/pool"
)

// Sentinels, one per node type. They are never pooled and serve as the reset
// value of parent links.
var (
	initFormat      = &Format{}
	initPlaceholder = &Placeholder{Parent: initFormat}
	initSelector    = &Selector{Parent: initPlaceholder}
	initLiteral     = &LiteralText{Parent: initFormat}
)

var (
	formats = sync.OnceValue(func() *pool.Pool[*Format] {
		return pool.MustNew("format.Format", pool.Policy[*Format]{
			Create:   func() *Format { return &Format{} },
			OnReturn: (*Format).clear,
			MaxSize:  pool.DefaultMaxSize,
			Sentinel: initFormat,
		})
	})

	placeholders = sync.OnceValue(func() *pool.Pool[*Placeholder] {
		return pool.MustNew("format.Placeholder", pool.Policy[*Placeholder]{
			Create:   func() *Placeholder { return &Placeholder{Parent: initFormat} },
			OnReturn: (*Placeholder).clear,
			MaxSize:  pool.DefaultMaxSize,
			Sentinel: initPlaceholder,
		})
	})

	selectors = sync.OnceValue(func() *pool.Pool[*Selector] {
		return pool.MustNew("format.Selector", pool.Policy[*Selector]{
			Create:   func() *Selector { return &Selector{Parent: initPlaceholder} },
			OnReturn: (*Selector).clear,
			MaxSize:  pool.DefaultMaxSize,
			Sentinel: initSelector,
		})
	})

	literals = sync.OnceValue(func() *pool.Pool[*LiteralText] {
		return pool.MustNew("format.LiteralText", pool.Policy[*LiteralText]{
			Create:   func() *LiteralText { return &LiteralText{Parent: initFormat} },
			OnReturn: (*LiteralText).clear,
			MaxSize:  pool.DefaultMaxSize,
			Sentinel: initLiteral,
		})
	})
)

// PoolStats returns the counters of the node pools.
func PoolStats() []pool.Stats {
	return []pool.Stats{
		formats().Stats(),
		placeholders().Stats(),
		selectors().Stats(),
		literals().Stats(),
	}
}

// mustReturn panics on pool errors; they are programming errors.
func mustReturn(err error) {
	if err != nil {
		panic(err)
	}
}
