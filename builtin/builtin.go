package builtin

import (
	"github.com/randalmurphal/fmtkit/extension"
	"github.com/randalmurphal/fmtkit/template"
)

// Extensions returns new instances of every built-in extension.
func Extensions() []extension.Extension {
	return []extension.Extension{
		&StringSource{},
		&ReflectionSource{},
		&ConditionalFormatter{},
		&ListFormatter{},
		&TextFormatter{},
	}
}

// Register adds every built-in extension to reg.
func Register(reg *extension.Registry) error {
	for _, ext := range Extensions() {
		if err := reg.Add(ext); err != nil {
			return err
		}
	}
	return nil
}

// NewEngine creates a template engine with the built-in extensions
// registered ahead of any given through opts.
func NewEngine(opts ...template.Option) (*template.Engine, error) {
	all := make([]template.Option, 0, len(opts)+1)
	all = append(all, template.WithExtensions(Extensions()...))
	all = append(all, opts...)
	return template.NewEngine(all...)
}
