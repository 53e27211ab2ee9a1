// Package extension defines the plug-in points of the formatting engine and
// the registry that orders them.
//
// A Source resolves one selector against the current value. A Formatter
// renders a resolved value, optionally using the placeholder's format clause.
// Both report a Priority; the Registry keeps each list sorted by priority and
// asks extensions in that order until one handles the request.
//
// # Example
//
//	reg := extension.NewRegistry(false)
//	if err := reg.Add(mySource{}); err != nil {
//	    return err
//	}
//
// The registry is not synchronized. Configure it before formatting starts.
package extension
