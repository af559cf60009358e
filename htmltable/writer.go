// Package htmltable writes datatable.Table values as HTML tables.
//
// The Writer renders the head with an optional select-all control,
// sortable header cells and an actions header, followed by a body row
// per item with an optional selection control, one cell per column
// and an optional row actions menu.
// Tables with datatable.VariantFixedHeader are wrapped
// in a scroll container whose fixed header cells
// are positioned by a datatable.FixedHeader.
//
// Cell values are HTML escaped unless a formatter returns raw HTML,
// which is sanitized with a bluemonday policy by default.
//
// Example usage:
//
//	type Person struct {
//	    ID   int    `col:"id"`
//	    Name string `col:"name"`
//	}
//	table, _ := datatable.NewTable("people", people,
//	    datatable.Column{Property: "name", Label: "Name"},
//	)
//	err := htmltable.NewWriter[Person]().
//	    WithTableClass("my-table").
//	    Write(ctx, os.Stdout, table, "People")
package htmltable

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"maps"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/domonda/go-types/charset"
	"github.com/microcosm-cc/bluemonday"

	"github.com/domonda/go-datatable"
)

var (
	defaultSanitizerOnce sync.Once
	defaultSanitizer     *bluemonday.Policy
)

// DefaultSanitizer returns the policy used for raw HTML cell values
// if not changed with Writer.WithSanitizer.
// It allows user generated content markup like links and formatting.
func DefaultSanitizer() *bluemonday.Policy {
	defaultSanitizerOnce.Do(func() {
		defaultSanitizer = bluemonday.UGCPolicy()
	})
	return defaultSanitizer
}

// Writer writes tables with items of type T as HTML.
//
// Writer is immutable after creation - all With* methods return
// a new Writer instance with the modified configuration.
type Writer[T any] struct {
	tableClass       string
	columnFormatters map[string]datatable.CellFormatter
	typeFormatters   *datatable.ReflectTypeCellFormatter
	nilValue         template.HTML
	sanitizer        *bluemonday.Policy
	encoding         string
	fixedCells       []datatable.CellPosition
	headerTemplate   *template.Template
	rowTemplate      *template.Template
	footerTemplate   *template.Template
}

// NewWriter creates a new HTML table writer for items of type T.
//
// Default configuration:
//   - Variant CSS classes only
//   - No column or type formatters
//   - Empty string for nil values
//   - DefaultSanitizer for raw HTML
//   - UTF-8 output
//   - Standard templates
func NewWriter[T any]() *Writer[T] {
	return &Writer[T]{
		columnFormatters: make(map[string]datatable.CellFormatter),
		typeFormatters:   nil, // OK to use nil *datatable.ReflectTypeCellFormatter
		nilValue:         "",
		sanitizer:        DefaultSanitizer(),
		headerTemplate:   HeaderTemplate,
		rowTemplate:      RowTemplate,
		footerTemplate:   FooterTemplate,
	}
}

// Write writes table as HTML to dest.
// The caption strings are joined with spaces.
//
// Cells are formatted with the following cascade:
//  1. datatable.Column.Cell of the column
//  2. Column formatter registered for the column property
//  3. Values implementing RawFormatter
//  4. Type formatters
//  5. Nil value or fmt.Sprint of the dereferenced value
//
// If an encoding is configured, the whole output
// is encoded before it is written to dest.
func (w *Writer[T]) Write(ctx context.Context, dest io.Writer, table *datatable.Table[T], caption ...string) error {
	if w.encoding == "" || w.encoding == "UTF-8" {
		return w.WriteModel(ctx, dest, table.Model(w.columnFormatter()), caption...)
	}
	enc, err := charset.GetEncoding(w.encoding)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	err = w.WriteModel(ctx, &buf, table.Model(w.columnFormatter()), caption...)
	if err != nil {
		return err
	}
	encoded, err := enc.Encode(buf.Bytes())
	if err != nil {
		return fmt.Errorf("encoding table as %s: %w", w.encoding, err)
	}
	_, err = dest.Write(encoded)
	return err
}

// WriteModel writes a table model as HTML to dest.
// The context is checked for cancellation before every row.
func (w *Writer[T]) WriteModel(ctx context.Context, dest io.Writer, model *datatable.Model[T], caption ...string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	templData := &RowTemplateContext{
		TemplateContext: w.templateContext(model, strings.Join(caption, " ")),
	}
	err := w.headerTemplate.Execute(dest, templData.TemplateContext)
	if err != nil {
		return err
	}

	var rowActions *RowActionsContext
	if model.RowActions != nil {
		align := model.RowActions.DropdownAlign
		if align == "" {
			align = "right"
		}
		rowActions = &RowActionsContext{
			Label:   model.RowActions.Label(),
			Align:   align,
			Options: model.RowActions.Options,
		}
	}

	templData.SelectName = model.ID + "-select"
	templData.SelectLabel = model.Head.AssistiveText.SelectRow
	templData.RowActions = rowActions
	templData.Cells = make([]CellContext, len(model.Columns))
	for i := range model.Rows {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		row := &model.Rows[i]
		templData.RowIndex = row.Index
		templData.Key = row.Key
		templData.ItemID = row.ItemID
		templData.Selected = row.Selected
		for col := range row.Cells {
			cell := &row.Cells[col]
			html, title, err := w.formatCell(ctx, cell)
			if err != nil {
				return fmt.Errorf("formatting row %d column %q: %w", row.Index, cell.Column.Property, err)
			}
			templData.Cells[col] = CellContext{
				Label:    cell.Column.Label,
				Title:    title,
				Primary:  cell.Column.Primary,
				Truncate: cell.Column.Truncate,
				HTML:     html,
			}
		}
		err = w.rowTemplate.Execute(dest, templData)
		if err != nil {
			return err
		}
	}

	return w.footerTemplate.Execute(dest, templData.TemplateContext)
}

func (w *Writer[T]) templateContext(model *datatable.Model[T], caption string) TemplateContext {
	tableClass := model.Variant.TableClasses()
	if w.tableClass != "" {
		tableClass = append(tableClass, w.tableClass)
	}
	text := model.Head.AssistiveText
	c := TemplateContext{
		TableID:     model.ID,
		TableClass:  strings.Join(tableClass, " "),
		Caption:     caption,
		FixedHeader: model.Variant.Has(datatable.VariantFixedHeader),
		SelectRows:  model.SelectRows.InputType(),
		HeadCells:   make([]HeadCellContext, len(model.Head.Cells)),
	}
	if model.SelectRows == datatable.SelectRowsCheckbox {
		c.SelectAll = &SelectAllContext{
			ID:            model.ID + "-select-all",
			Label:         text.SelectAllRows,
			Checked:       model.Head.AllSelected,
			Indeterminate: model.Head.IndeterminateSelected,
		}
	}
	if model.Head.RowActions {
		c.ActionsHeader = text.ActionsHeader
	}
	for i, cell := range model.Head.Cells {
		hc := HeadCellContext{
			Property:          cell.Property,
			Label:             cell.Label,
			Title:             cell.Title,
			Width:             cell.Width,
			Sortable:          cell.Sortable,
			SortDirection:     cell.SortDirection,
			NextSortDirection: cell.NextSortDirection(),
			AriaSort:          cell.AriaSort,
			SortLabel:         text.ColumnSort,
			SortedText:        cell.SortedText,
		}
		if i < len(w.fixedCells) {
			hc.Fixed = &FixedCellContext{
				Left:  formatPixels(w.fixedCells[i].Left),
				Width: formatPixels(w.fixedCells[i].Width),
			}
		}
		c.HeadCells[i] = hc
	}
	return c
}

// columnFormatter returns the formatter for the cells of columns
// without their own datatable.Column.Cell formatter.
func (w *Writer[T]) columnFormatter() datatable.CellFormatter {
	return datatable.CellFormatterFunc(func(ctx context.Context, cell *datatable.Cell) (string, bool, error) {
		if f, ok := w.columnFormatters[cell.Column.Property]; ok {
			return f.FormatCell(ctx, cell)
		}
		return "", false, errors.ErrUnsupported
	})
}

// formatCell returns the HTML of a cell and its plain text title
// which is empty for raw HTML.
func (w *Writer[T]) formatCell(ctx context.Context, cell *datatable.Cell) (html template.HTML, title string, err error) {
	if cell.Column.Formatter != nil {
		str, isRaw, err := cell.Column.Formatter.FormatCell(ctx, cell)
		if err != nil && !errors.Is(err, errors.ErrUnsupported) {
			return "", "", err
		}
		if err == nil {
			return w.cellHTML(str, isRaw)
		}
	}

	if formatter, ok := cell.Interface().(RawFormatter); ok {
		raw, err := formatter.RawHTML(ctx, cell)
		if err != nil && !errors.Is(err, errors.ErrUnsupported) {
			return "", "", err
		}
		if err == nil {
			return raw, "", nil
		}
	}

	str, isRaw, err := w.typeFormatters.FormatCell(ctx, cell)
	if err != nil {
		if !errors.Is(err, errors.ErrUnsupported) {
			return "", "", err
		}
		// In case of errors.ErrUnsupported
		// use fallback method of formatting
		if datatable.ValueIsNil(cell.Value) {
			return w.nilValue, "", nil
		}
		str, isRaw, _ = datatable.SprintCellFormatter(false).FormatCell(ctx, cell)
	}
	return w.cellHTML(str, isRaw)
}

func (w *Writer[T]) cellHTML(str string, isRaw bool) (template.HTML, string, error) {
	if !isRaw {
		return template.HTML(template.HTMLEscapeString(str)), str, nil //#nosec G203
	}
	if w.sanitizer != nil {
		str = w.sanitizer.Sanitize(str)
	}
	return template.HTML(str), "", nil //#nosec G203
}

func formatPixels(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (w *Writer[T]) clone() *Writer[T] {
	c := new(Writer[T])
	*c = *w
	return c
}

// WithTableClass returns a new writer with the specified CSS class
// appended to the variant classes of the table element.
func (w *Writer[T]) WithTableClass(tableClass string) *Writer[T] {
	mod := w.clone()
	mod.tableClass = tableClass
	return mod
}

// WithColumnFormatter returns a new writer with the formatter registered
// for the column with the passed property.
// A datatable.Column.Cell formatter takes precedence.
// If nil is passed as formatter, any previously registered
// formatter for the property is removed.
func (w *Writer[T]) WithColumnFormatter(property string, formatter datatable.CellFormatter) *Writer[T] {
	mod := w.clone()
	mod.columnFormatters = maps.Clone(w.columnFormatters)
	if mod.columnFormatters == nil {
		mod.columnFormatters = make(map[string]datatable.CellFormatter)
	}
	if formatter != nil {
		mod.columnFormatters[property] = formatter
	} else {
		delete(mod.columnFormatters, property)
	}
	return mod
}

// WithColumnFormatterFunc returns a new writer with the formatter function
// registered for the column with the passed property.
func (w *Writer[T]) WithColumnFormatterFunc(property string, formatterFunc datatable.CellFormatterFunc) *Writer[T] {
	if formatterFunc == nil {
		return w.WithColumnFormatter(property, nil)
	}
	return w.WithColumnFormatter(property, formatterFunc)
}

// WithRawColumn returns a new writer that interprets the values
// of the column with the passed property as HTML.
// The HTML is sanitized unless the sanitizer is disabled.
func (w *Writer[T]) WithRawColumn(property string) *Writer[T] {
	return w.WithColumnFormatter(property, datatable.SprintCellFormatter(true))
}

// WithTypeFormatters returns a new writer with the specified type formatter set.
// This replaces all existing type-based formatters.
func (w *Writer[T]) WithTypeFormatters(formatter *datatable.ReflectTypeCellFormatter) *Writer[T] {
	mod := w.clone()
	mod.typeFormatters = formatter
	return mod
}

// WithTypeFormatter returns a new writer with a formatter registered for the specified type.
func (w *Writer[T]) WithTypeFormatter(typ reflect.Type, formatter datatable.CellFormatter) *Writer[T] {
	mod := w.clone()
	mod.typeFormatters = w.typeFormatters.WithTypeFormatter(typ, formatter)
	return mod
}

// WithInterfaceTypeFormatter returns a new writer with a formatter
// for cell values implementing the interface type typ.
func (w *Writer[T]) WithInterfaceTypeFormatter(typ reflect.Type, formatter datatable.CellFormatter) *Writer[T] {
	mod := w.clone()
	mod.typeFormatters = w.typeFormatters.WithInterfaceTypeFormatter(typ, formatter)
	return mod
}

// WithKindFormatter returns a new writer with a formatter for a specific reflect.Kind.
func (w *Writer[T]) WithKindFormatter(kind reflect.Kind, formatter datatable.CellFormatter) *Writer[T] {
	mod := w.clone()
	mod.typeFormatters = w.typeFormatters.WithKindFormatter(kind, formatter)
	return mod
}

// WithNilValue returns a new writer with the specified HTML
// to use for nil values and missing item fields.
//
// Example:
//
//	writer := htmltable.NewWriter[Person]().
//	    WithNilValue(template.HTML("<em>N/A</em>"))
func (w *Writer[T]) WithNilValue(nilValue template.HTML) *Writer[T] {
	mod := w.clone()
	mod.nilValue = nilValue
	return mod
}

// WithSanitizer returns a new writer using policy to sanitize
// raw HTML returned by cell formatters.
// Passing nil disables sanitizing, only use this for trusted content.
func (w *Writer[T]) WithSanitizer(policy *bluemonday.Policy) *Writer[T] {
	mod := w.clone()
	mod.sanitizer = policy
	return mod
}

// WithEncoding returns a new writer that encodes its output
// with the named charset encoding, like "ISO 8859-1" or "Windows 1252".
// An empty name writes UTF-8.
// Unknown names result in an error from Write.
func (w *Writer[T]) WithEncoding(name string) *Writer[T] {
	mod := w.clone()
	mod.encoding = name
	return mod
}

// WithFixedCellPositions returns a new writer that writes
// the passed positions as inline style of the fixed header cells,
// for example the last positions reported by datatable.FixedHeader.OnResize.
// The positions are only used for tables with datatable.VariantFixedHeader.
func (w *Writer[T]) WithFixedCellPositions(positions []datatable.CellPosition) *Writer[T] {
	mod := w.clone()
	mod.fixedCells = positions
	return mod
}

// WithTemplate returns a new writer with custom templates.
// The header and footer templates receive a TemplateContext,
// the row template a RowTemplateContext.
func (w *Writer[T]) WithTemplate(headerTemplate, rowTemplate, footerTemplate *template.Template) *Writer[T] {
	mod := w.clone()
	mod.headerTemplate = headerTemplate
	mod.rowTemplate = rowTemplate
	mod.footerTemplate = footerTemplate
	return mod
}

// TableClass returns the CSS class configured for the table element.
func (w *Writer[T]) TableClass() string {
	return w.tableClass
}

// NilValue returns the HTML configured to be rendered for nil values.
func (w *Writer[T]) NilValue() template.HTML {
	return w.nilValue
}

// Encoding returns the name of the configured output encoding.
func (w *Writer[T]) Encoding() string {
	return w.encoding
}
