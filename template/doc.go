// Package template renders composite format strings.
//
// A template mixes literal text with placeholders:
//
//	Hello {Name}, you are {Age} years old.
//	{0} of {1:list:{}|, | and }
//	{Date:2006-01-02}  {Total,10:%.2f}
//
// Each placeholder is a chain of selectors resolved against the current
// value, an optional alignment, and an optional format clause handed to a
// formatter. Selectors and formatters are extensions registered with the
// engine (see package extension); the engine always installs a default
// source and a default formatter at the lowest priority.
//
// # Example
//
//	engine, err := template.NewEngine()
//	if err != nil {
//	    return err
//	}
//	out, err := engine.Render("{0} is {1} years old", "Alice", 30)
//	// out: "Alice is 30 years old"
//
// # Scope
//
// Top-level placeholders resolve their first selector against the first
// argument, except that an integer first selector picks a positional
// argument. Inside a format clause the scope is the value being formatted,
// and positional selectors still reach the original arguments:
//
//	engine.Render("{Person:{Name} ({1})}", data, "admin")
//
// # Errors
//
// Parse errors wrap ErrParse and carry a *parser.Errors. Selector and
// formatter failures are *FormattingError values wrapping ErrSelector or
// ErrFormatter. The settings' error actions decide whether they are returned
// or rendered in place.
//
// Parsed templates are cached by text. An Engine is safe for concurrent use
// once it is configured.
package template
