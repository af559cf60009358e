package cli

import (
	"slices"

	"github.com/domonda/go-datatable"
)

// selectColumnWidth is the pixel width of the selection column (3.25rem).
const selectColumnWidth = 52

// columnViewport lays out the header cells side by side
// with fixed pixel widths starting at offset.
// It stands in for a browser when pre-positioning
// the fixed header cells of a rendered table.
type columnViewport struct {
	offset    float64
	widths    []float64
	positions []datatable.CellPosition
	handlers  []datatable.ResizeHandler
}

func (v *columnViewport) Measure() (datatable.Geometry, bool) {
	if len(v.widths) == 0 {
		return datatable.Geometry{}, false
	}
	g := datatable.Geometry{HeaderCells: make([]datatable.Rect, len(v.widths))}
	left := v.offset
	for i, width := range v.widths {
		g.HeaderCells[i] = datatable.Rect{Left: left, Width: width}
		left += width
	}
	return g, true
}

func (v *columnViewport) Position(cells []datatable.CellPosition) {
	v.positions = cells
}

func (v *columnViewport) Subscribe(h datatable.ResizeHandler) {
	v.handlers = append(v.handlers, h)
}

func (v *columnViewport) Unsubscribe(h datatable.ResizeHandler) {
	v.handlers = slices.DeleteFunc(v.handlers, func(x datatable.ResizeHandler) bool { return x == h })
}
