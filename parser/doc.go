// Package parser turns composite format strings into format trees.
//
// Template syntax:
//
//	{selector[.selector|[index]]*[,alignment][:[formatter[(options)]:]format-clause]}
//
// A format clause may contain further placeholders; it ends at the first
// unescaped '}' that is not part of one of them. Literal braces are written
// as \{ and \} (backslash mode) or {{ and }} in the root format (doubled-brace
// mode); both are accepted by default.
//
// The parser makes a single forward pass over the template. Nested clauses are
// tracked through the parent links of the tree being built, so nesting depth
// costs no call stack.
//
// Malformed placeholders are reported as Error values. With
// settings.ThrowError the first one aborts parsing; with any other action
// parsing continues and the malformed token becomes a format.LiteralText
// whose Err field holds the issue.
package parser
