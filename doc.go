// Package fmtkit renders composite-format templates.
//
// A template mixes literal text with placeholders:
//
//	Hello {Name}, you have {Count:cond:no messages|one message|{} messages}.
//
// Each placeholder is a selector chain resolved against the arguments,
// an optional alignment, an optional formatter binding and an optional
// nested format clause. fmtkit is split into subpackages:
//
//   - parser: Turns template text into a tree, reporting every syntax issue
//   - format: The parse tree (Format, Placeholder, Selector, LiteralText)
//   - extension: Source and formatter interfaces and their registry
//   - template: The rendering engine with its parse cache
//   - builtin: String, reflection, conditional, list and text extensions
//   - loader: Named template sets read from a directory, with hot reload
//   - settings: Configuration from YAML, TOML, JSON or the environment
//   - pool: Generic object pools with usage statistics
//
// # Quick Start
//
//	import "github.com/randalmurphal/fmtkit/builtin"
//	engine, _ := builtin.NewEngine()
//	out, _ := engine.Render("{Name.ToUpper} is {Age}", map[string]any{"Name": "Ada", "Age": 36})
//
// Custom data sources and formatters implement extension.Source and
// extension.Formatter and are added with template.WithExtensions.
//
// The fmtkit command (cmd/fmtkit) renders and inspects templates from the
// shell.
package fmtkit
