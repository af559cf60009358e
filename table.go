// Package datatable provides the model of configurable data tables
// displaying items as rows with optional sorting, row selection,
// fixed headers and row action menus.
//
// A Table holds the caller owned state of a data table.
// It derives the column configuration, the aggregated selection state,
// the assistive text and a head and body Model that output
// packages like htmltable render.
// Selection is controlled by the caller: Table never modifies
// its Selection but proposes changes to the Handlers.
//
// Example usage:
//
//	table, err := datatable.NewTable("people", people,
//	    datatable.Column{Property: "Name", Sortable: true, Primary: true},
//	    datatable.Column{Property: "Age"},
//	)
//	table.SelectRows = datatable.SelectRowsCheckbox
//	table.Handlers.OnRowChange = func(ev datatable.Event, change datatable.SelectionChange[Person]) {
//	    table.Selection = change.Selection
//	}
package datatable

import "reflect"

// EventType names the user interaction that caused an Event.
type EventType string

const (
	EventSelectAll EventType = "selectAll"
	EventSelectRow EventType = "selectRow"
	EventSort      EventType = "sort"
	EventRowAction EventType = "rowAction"
)

// Event describes the host interaction passed through to handlers.
type Event struct {
	Type EventType
	// Target identifies the control that caused the event,
	// like a row key or column property
	Target string
}

// SelectionChange is the selection proposed by the table.
type SelectionChange[T any] struct {
	Selection []T
}

// Handlers are called synchronously by the event methods of Table.
type Handlers[T any] struct {
	// OnRowChange is called with the proposed selection
	OnRowChange func(ev Event, change SelectionChange[T])
	// OnChange is called with the proposed selection after OnRowChange.
	//
	// Deprecated: use OnRowChange
	OnChange func(selection []T, ev Event)
	// OnSort is called when the header of a sortable column is activated
	OnSort func(ev Event, sort SortInfo)
	// OnRowAction is called when an enabled row action is chosen
	OnRowAction func(ev Event, item T, action RowAction)
}

// Table is the state of a data table with items of type T.
type Table[T any] struct {
	// ID of the table, used as prefix of row keys and control ids
	ID string
	// Items in display order
	Items []T
	// Selection is owned by the caller
	Selection []T
	// Columns in display order
	Columns []Column
	// RowActions declares an optional menu per row
	RowActions *RowActions
	// SelectRows is the row selection mode
	SelectRows SelectRows
	// Variant flags
	Variant Variant
	// AssistiveText overrides DefaultAssistiveText
	AssistiveText AssistiveText
	// LegacyAssistiveText holds the deprecated per-label overrides
	// which take precedence over AssistiveText.
	//
	// Deprecated: use AssistiveText
	LegacyAssistiveText AssistiveText
	// IDProperty addresses the unique item id,
	// DefaultIDProperty is used if empty
	IDProperty string
	// FieldNaming addresses item fields,
	// DefaultFieldNaming is used if nil
	FieldNaming *FieldNaming
	// Equal compares items within a selection,
	// ItemsEqual is used if nil
	Equal func(a, b T) bool
	// Handlers receive the events of the table
	Handlers Handlers[T]
}

// NewTable returns a Table with the columns and row actions
// declared by descriptors.
func NewTable[T any](id string, items []T, descriptors ...Descriptor) (*Table[T], error) {
	layout, err := Assemble(descriptors...)
	if err != nil {
		return nil, err
	}
	return &Table[T]{
		ID:         id,
		Items:      items,
		Columns:    layout.Columns,
		RowActions: layout.RowActions,
	}, nil
}

func (t *Table[T]) naming() *FieldNaming {
	if t.FieldNaming == nil {
		return &DefaultFieldNaming
	}
	return t.FieldNaming
}

func (t *Table[T]) idProperty() string {
	if t.IDProperty == "" {
		return DefaultIDProperty
	}
	return t.IDProperty
}

// ItemID returns the id of item or an empty string.
func (t *Table[T]) ItemID(item T) string {
	return t.naming().ItemID(item, t.idProperty())
}

// RowKey returns the identity key of the row displaying item.
func (t *Table[T]) RowKey(item T) string {
	return RowKey(t.ID, t.ItemID(item))
}

// FindItem returns the first item with the passed id.
func (t *Table[T]) FindItem(id string) (item T, ok bool) {
	if id == "" {
		return item, false
	}
	for _, it := range t.Items {
		if t.ItemID(it) == id {
			return it, true
		}
	}
	return item, false
}

// IsSelected returns true if item is part of the selection.
func (t *Table[T]) IsSelected(item T) bool {
	return ContainsItem(t.Selection, item, t.Equal)
}

// SelectionState returns the aggregated selection state.
func (t *Table[T]) SelectionState() SelectionState {
	return SelectionStateOf(t.SelectRows, len(t.Items), len(t.Selection))
}

// Text returns the resolved assistive text.
func (t *Table[T]) Text() AssistiveText {
	return ResolveAssistiveText(t.AssistiveText, t.LegacyAssistiveText)
}

// ColumnConfigs resolves the columns of the table.
func (t *Table[T]) ColumnConfigs(defaultFormatter CellFormatter) []ColumnConfig {
	props := ColumnProps{
		TableID:     t.ID,
		FixedHeader: t.Variant.Has(VariantFixedHeader),
		FixedLayout: t.Variant.Has(VariantFixedLayout),
	}
	return ResolveColumns(props, t.Columns, defaultFormatter)
}

func (t *Table[T]) emitSelection(ev Event, selection []T) {
	if t.Handlers.OnRowChange != nil {
		t.Handlers.OnRowChange(ev, SelectionChange[T]{Selection: selection})
	}
	if t.Handlers.OnChange != nil {
		t.Handlers.OnChange(selection, ev)
	}
}

// ToggleAll proposes the selection of the select-all control:
// all items if checked, else none.
// The proposal is passed to OnRowChange and OnChange and returned.
func (t *Table[T]) ToggleAll(ev Event, checked bool) []T {
	selection := SelectAll(t.Items, checked)
	t.emitSelection(ev, selection)
	return selection
}

// ActivateSelectAll proposes the selection after the select-all
// control was activated: none if all rows are selected, else all.
// Tables without row selection have no select-all control,
// nothing is proposed and nil is returned.
func (t *Table[T]) ActivateSelectAll(ev Event) []T {
	if !t.SelectRows.Enabled() {
		return nil
	}
	return t.ToggleAll(ev, !t.SelectionState().AllSelected)
}

// ToggleRow proposes the selection after the selection control
// of the row of item was toggled.
// The proposal is passed to OnRowChange and OnChange and returned.
func (t *Table[T]) ToggleRow(ev Event, item T, selected bool) []T {
	selection := SelectRow(t.SelectRows, t.Selection, item, selected, t.Equal)
	t.emitSelection(ev, selection)
	return selection
}

// Column returns the column with the passed property.
func (t *Table[T]) Column(property string) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Property == property {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// Sort proposes the next sort direction of the column with the
// passed property and passes it to OnSort.
// Unknown and not sortable columns return false.
func (t *Table[T]) Sort(ev Event, property string) (SortInfo, bool) {
	column, ok := t.Column(property)
	if !ok || !column.Sortable {
		return SortInfo{}, false
	}
	sort := SortInfo{
		Property:      property,
		SortDirection: column.NextSortDirection(),
	}
	if t.Handlers.OnSort != nil {
		t.Handlers.OnSort(ev, sort)
	}
	return sort, true
}

// Action passes the row action with the passed value to OnRowAction.
// Unknown and disabled actions return false.
func (t *Table[T]) Action(ev Event, item T, value string) (RowAction, bool) {
	if t.RowActions == nil {
		return RowAction{}, false
	}
	action, ok := t.RowActions.Option(value)
	if !ok || action.Disabled {
		return RowAction{}, false
	}
	if t.Handlers.OnRowAction != nil {
		t.Handlers.OnRowAction(ev, item, action)
	}
	return action, true
}

// NewFixedHeader returns a FixedHeader for viewport that is
// active if the table has VariantFixedHeader.
func (t *Table[T]) NewFixedHeader(viewport Viewport) *FixedHeader {
	return &FixedHeader{
		Active:   t.Variant.Has(VariantFixedHeader),
		Viewport: viewport,
	}
}

// HeadCell is a header cell of a Model.
type HeadCell struct {
	*ColumnConfig
	// AriaSort is the aria-sort attribute value
	AriaSort string
	// SortedText is the assistive text of the sort direction
	SortedText string
}

// Head is the table head of a Model.
type Head struct {
	SelectionState

	SelectRows    SelectRows
	AssistiveText AssistiveText
	Cells         []HeadCell
	RowActions    bool
}

// Row is a body row of a Model.
type Row[T any] struct {
	Key      string
	Index    int
	Item     T
	ItemID   string
	Selected bool
	Cells    []Cell
}

// Model is the rendered structure of a table.
type Model[T any] struct {
	ID         string
	Variant    Variant
	SelectRows SelectRows
	Columns    []ColumnConfig
	RowActions *RowActions
	Head       Head
	Rows       []Row[T]
}

// Model derives the head and body structure of the table.
// Cells of columns without their own formatter
// use defaultFormatter.
func (t *Table[T]) Model(defaultFormatter CellFormatter) *Model[T] {
	var (
		columns = t.ColumnConfigs(defaultFormatter)
		text    = t.Text()
		naming  = t.naming()
		model   = &Model[T]{
			ID:         t.ID,
			Variant:    t.Variant,
			SelectRows: t.SelectRows,
			Columns:    columns,
			RowActions: t.RowActions,
			Rows:       make([]Row[T], len(t.Items)),
		}
	)

	model.Head = Head{
		SelectionState: t.SelectionState(),
		SelectRows:     t.SelectRows,
		AssistiveText:  text,
		Cells:          make([]HeadCell, len(columns)),
		RowActions:     t.RowActions != nil,
	}
	for i := range columns {
		cell := HeadCell{
			ColumnConfig: &columns[i],
			AriaSort:     columns[i].SortDirection.AriaSort(),
		}
		switch columns[i].SortDirection {
		case SortAscending:
			cell.SortedText = text.ColumnSortedAscending
		case SortDescending:
			cell.SortedText = text.ColumnSortedDescending
		}
		model.Head.Cells[i] = cell
	}

	for row, item := range t.Items {
		itemVal := reflect.ValueOf(item)
		itemID := t.ItemID(item)
		r := Row[T]{
			Key:      RowKey(t.ID, itemID),
			Index:    row,
			Item:     item,
			ItemID:   itemID,
			Selected: t.SelectRows.Enabled() && t.IsSelected(item),
			Cells:    make([]Cell, len(columns)),
		}
		for col := range columns {
			r.Cells[col] = Cell{
				Item:   itemVal,
				Row:    row,
				Column: &columns[col],
				Value:  naming.ItemValue(itemVal, columns[col].Property),
			}
		}
		model.Rows[row] = r
	}
	return model
}
