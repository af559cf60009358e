package htmltable

import (
	"context"
	"html/template"

	"github.com/domonda/go-datatable"
)

var (
	_ RawFormatter = RawFormatterFunc(nil)
	_ RawFormatter = Raw("")
)

// RawFormatter can be implemented by cell values
// that render themselves as HTML.
// The returned HTML is written without sanitizing.
// Returning errors.ErrUnsupported continues with
// the type formatters of the Writer.
type RawFormatter interface {
	RawHTML(ctx context.Context, cell *datatable.Cell) (template.HTML, error)
}

type RawFormatterFunc func(ctx context.Context, cell *datatable.Cell) (template.HTML, error)

func (f RawFormatterFunc) RawHTML(ctx context.Context, cell *datatable.Cell) (template.HTML, error) {
	return f(ctx, cell)
}

// Raw is a string value that is rendered as HTML.
type Raw string

func (r Raw) RawHTML(ctx context.Context, cell *datatable.Cell) (template.HTML, error) {
	return template.HTML(r), nil //#nosec G203
}
