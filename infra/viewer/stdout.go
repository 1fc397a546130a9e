package viewer

import (
	"context"
	"io"

	coreviewer "github.com/kilianp07/fleetsoc/core/viewer"
)

// WriterViewer writes the page to a writer and returns immediately.
type WriterViewer struct {
	w io.Writer
}

// NewWriterViewer returns a viewer writing pages to w.
func NewWriterViewer(w io.Writer) *WriterViewer {
	return &WriterViewer{w: w}
}

func (v *WriterViewer) Show(_ context.Context, page coreviewer.Page) error {
	return page.Render(v.w)
}
