// Package builtin provides the stock sources and formatters:
//
//   - StringSource: members of string values ({Name.ToUpper}, {Name.Length})
//   - ReflectionSource: exported struct fields, map keys and zero-argument methods
//   - ConditionalFormatter ("cond"): picks a branch of "a|b|..." by value
//   - ListFormatter ("list"): renders slices as "item|separator|last separator"
//   - TextFormatter ("text"): truncate, wrap, indent, json and default options
//
// Use NewEngine for an engine with all of them, or Register to add them to
// an existing registry.
//
//	engine, err := builtin.NewEngine()
//	out, err := engine.Render("{Items:list:{Name}|, | and }", order)
package builtin
