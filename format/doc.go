// Package format holds the parse tree of a composite format string.
//
// A template such as
//
//	Hello {Name}, you have {Count:cond:one message|{} messages}.
//
// parses into a root Format whose Items alternate between LiteralText and
// Placeholder. A Placeholder owns its Selectors (Name, Count) and, when a
// format clause is present, a nested Format of its own. The tree never has
// cycles: every nested Format is exclusively owned by one Placeholder.
//
// Every node is a view over the original template string (BaseString,
// StartIndex, EndIndex); text is sliced, never copied, until it is written.
//
// Nodes are leased from process-wide pools (package pool) and reinitialized
// in place. A tree is handed back with (*Format).Release. The pools guard one
// sentinel object per node type; the sentinels are used as the reset value of
// parent links and can never be returned.
package format
