// Package viewer displays a rendered figure. Backends are selected by name
// from configuration: interactive ones block until the user is done, others
// return as soon as the page is written.
package viewer

import (
	"context"
	"io"

	"github.com/kilianp07/fleetsoc/core/factory"
)

// Page renders itself as an HTML document.
type Page interface {
	Render(w io.Writer) error
}

// PageFunc adapts a function to Page.
type PageFunc func(w io.Writer) error

func (f PageFunc) Render(w io.Writer) error { return f(w) }

// Viewer shows a page to the user.
type Viewer interface {
	Show(ctx context.Context, page Page) error
}

var registry = factory.NewRegistry[Viewer]()

// Register adds a viewer backend identified by name.
func Register(name string, f factory.Factory[Viewer]) error {
	return registry.Register(name, f)
}

// New creates the viewer described by cfg.
func New(cfg factory.ModuleConfig) (Viewer, error) {
	return registry.Create(cfg)
}

// Names lists the registered backends.
func Names() []string { return registry.Names() }
