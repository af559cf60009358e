package datatable

// Rect is the horizontal bounding box of a live header cell.
type Rect struct {
	Left  float64
	Width float64
}

// Geometry is the layout measured by a Viewport.
type Geometry struct {
	// ScrollerLeft is the left edge of the scroll container
	ScrollerLeft float64
	// DocumentScrollLeft is the horizontal scroll offset of the document
	DocumentScrollLeft float64
	// HeaderCells are the bounding boxes of the header cells
	HeaderCells []Rect
}

// CellPosition is the absolute position written
// to the fixed copy of a header cell.
type CellPosition struct {
	Left  float64
	Width float64
}

// FixedCellPositions computes the fixed cell positions
// for every header cell of g:
//
//	left = cell.Left - ScrollerLeft + DocumentScrollLeft
//	width = cell.Width
func FixedCellPositions(g Geometry) []CellPosition {
	positions := make([]CellPosition, len(g.HeaderCells))
	for i, cell := range g.HeaderCells {
		positions[i] = CellPosition{
			Left:  cell.Left - g.ScrollerLeft + g.DocumentScrollLeft,
			Width: cell.Width,
		}
	}
	return positions
}

// ResizeHandler is notified about resize and scroll events.
type ResizeHandler interface {
	HandleResize()
}

// Viewport abstracts the host environment of a fixed header table.
type Viewport interface {
	// Measure returns the current geometry of the header cells.
	// It returns false if the scroll container or table head
	// are not available.
	Measure() (Geometry, bool)
	// Position writes the positions of the fixed header cells.
	Position(cells []CellPosition)
	// Subscribe registers h for window resize
	// and scroll container scroll events.
	Subscribe(h ResizeHandler)
	// Unsubscribe deregisters h,
	// a not registered h must be ignored.
	Unsubscribe(h ResizeHandler)
}

// ListenerToggle is passed to FixedHeader.OnToggleListeners.
type ListenerToggle struct {
	Attach        bool
	ResizeHandler ResizeHandler
	Scroller      Viewport
}

// FixedHeader keeps the fixed header cells of a table
// aligned with the live header cells.
//
// Mount and Unmount must be called in pairs.
// A FixedHeader is not safe for concurrent use.
type FixedHeader struct {
	// Active is true for tables with VariantFixedHeader,
	// Mount does nothing for inactive fixed headers.
	Active bool
	// Viewport measures and positions the header cells.
	Viewport Viewport
	// OnResize is called after every recomputation
	// with the written positions.
	OnResize func(positions []CellPosition, scroller Viewport)
	// OnToggleListeners replaces the registration of
	// the resize handler at the Viewport, for example
	// to manage listeners within an external lifecycle.
	OnToggleListeners func(toggle ListenerToggle)

	attached bool
}

// NewFixedHeader returns an active FixedHeader for viewport.
func NewFixedHeader(viewport Viewport) *FixedHeader {
	return &FixedHeader{Active: true, Viewport: viewport}
}

// HandleResize recomputes and writes the fixed cell positions.
// It is idempotent and skipped if the Viewport
// can't measure the geometry.
func (f *FixedHeader) HandleResize() {
	if f.Viewport == nil {
		return
	}
	geometry, ok := f.Viewport.Measure()
	if !ok {
		return
	}
	positions := FixedCellPositions(geometry)
	f.Viewport.Position(positions)
	if f.OnResize != nil {
		f.OnResize(positions, f.Viewport)
	}
}

// Mount positions the fixed cells and attaches
// the resize listeners if the fixed header is active.
func (f *FixedHeader) Mount() {
	if !f.Active || f.attached {
		return
	}
	f.HandleResize()
	f.toggleListeners(true)
}

// Unmount detaches the resize listeners.
// It always deregisters, also for inactive or not mounted fixed headers.
func (f *FixedHeader) Unmount() {
	f.toggleListeners(false)
}

// Attached returns true between Mount and Unmount.
func (f *FixedHeader) Attached() bool {
	return f.attached
}

func (f *FixedHeader) toggleListeners(attach bool) {
	f.attached = attach
	if f.OnToggleListeners != nil {
		f.OnToggleListeners(ListenerToggle{
			Attach:        attach,
			ResizeHandler: f,
			Scroller:      f.Viewport,
		})
		return
	}
	if f.Viewport == nil {
		return
	}
	if attach {
		f.Viewport.Subscribe(f)
	} else {
		f.Viewport.Unsubscribe(f)
	}
}
