package csvtable

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/domonda/go-types/charset"

	"github.com/domonda/go-datatable"
)

type Padding int

const (
	NoPadding Padding = iota
	AlignLeft
	AlignRight
	AlignCenter
)

// Writer writes tables with items of type T as CSV.
//
// Writer is immutable after creation - all With* methods return
// a new Writer instance with the modified configuration.
type Writer[T any] struct {
	columnFormatters map[string]datatable.CellFormatter
	typeFormatters   *datatable.ReflectTypeCellFormatter
	padding          Padding
	headerRow        bool
	quoteAllFields   bool
	quoteEmptyFields bool
	escapeQuotes     string
	nilValue         string
	delimiter        rune
	newLine          string
	encoding         string
}

// NewWriter returns a Writer with a header row,
// semicolon delimiter, "\r\n" newlines and UTF-8 output.
func NewWriter[T any]() *Writer[T] {
	return &Writer[T]{
		columnFormatters: make(map[string]datatable.CellFormatter),
		typeFormatters:   nil, // OK to use nil *datatable.ReflectTypeCellFormatter
		padding:          NoPadding,
		headerRow:        true,
		escapeQuotes:     `""`,
		nilValue:         "",
		delimiter:        ';',
		newLine:          "\r\n",
	}
}

func (w *Writer[T]) clone() *Writer[T] {
	c := new(Writer[T])
	*c = *w
	return c
}

// Write writes the columns and items of table as CSV to dest.
//
// Cells are formatted with the following cascade:
//  1. datatable.Column.Cell of the column
//  2. Column formatter registered for the column property
//  3. Type formatters
//  4. Nil value or fmt.Sprint of the dereferenced value
//
// Raw formatter results are written without quoting.
func (w *Writer[T]) Write(ctx context.Context, dest io.Writer, table *datatable.Table[T]) error {
	return w.WriteModel(ctx, dest, table.Model(w.columnFormatter()))
}

// WriteModel writes a table model as CSV to dest.
func (w *Writer[T]) WriteModel(ctx context.Context, dest io.Writer, model *datatable.Model[T]) error {
	rows, err := w.ModelStrings(ctx, model)
	if err != nil {
		return err
	}
	var widths []int
	if w.padding != NoPadding {
		widths = columnWidths(rows, len(model.Columns))
	}

	var buf bytes.Buffer
	for _, row := range rows {
		for col, str := range row {
			if col > 0 {
				buf.WriteRune(w.delimiter)
			}
			if widths == nil {
				buf.WriteString(str)
				continue
			}
			var (
				padTotal = widths[col] - utf8.RuneCountInString(str)
				padLeft  = 0
				padRight = 0
			)
			switch w.padding {
			case AlignLeft:
				padRight = padTotal
			case AlignRight:
				padLeft = padTotal
			case AlignCenter:
				padLeft = padTotal / 2
				padRight = (padTotal + 1) / 2
			}
			buf.WriteString(strings.Repeat(" ", padLeft))
			buf.WriteString(str)
			buf.WriteString(strings.Repeat(" ", padRight))
		}
		buf.WriteString(w.newLine)
	}

	data := buf.Bytes()
	if w.encoding != "" && w.encoding != "UTF-8" {
		enc, err := charset.GetEncoding(w.encoding)
		if err != nil {
			return err
		}
		data, err = enc.Encode(data)
		if err != nil {
			return fmt.Errorf("encoding CSV as %s: %w", w.encoding, err)
		}
	}
	_, err = dest.Write(data)
	return err
}

// ModelStrings returns the escaped field strings of the model rows,
// starting with the column labels if the header row is enabled.
// The context is checked for cancellation before every row.
func (w *Writer[T]) ModelStrings(ctx context.Context, model *datatable.Model[T]) ([][]string, error) {
	rows := make([][]string, 0, len(model.Rows)+1)
	if w.headerRow {
		header := make([]string, len(model.Columns))
		for col := range model.Columns {
			header[col] = w.escapeString(model.Columns[col].Label, false)
		}
		rows = append(rows, header)
	}
	for i := range model.Rows {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		row := &model.Rows[i]
		rowStrs := make([]string, len(row.Cells))
		for col := range row.Cells {
			str, err := w.cellString(ctx, &row.Cells[col])
			if err != nil {
				return nil, fmt.Errorf("formatting row %d column %q: %w", row.Index, row.Cells[col].Column.Property, err)
			}
			rowStrs[col] = str
		}
		rows = append(rows, rowStrs)
	}
	return rows, nil
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

func (w *Writer[T]) cellString(ctx context.Context, cell *datatable.Cell) (string, error) {
	if cell.Column.Formatter != nil {
		str, isRaw, err := cell.Column.Formatter.FormatCell(ctx, cell)
		if err == nil {
			return w.escapeString(str, isRaw), nil
		}
		if !errors.Is(err, errors.ErrUnsupported) {
			return "", err
		}
		// Continue after errors.ErrUnsupported
	}

	str, isRaw, err := w.typeFormatters.FormatCell(ctx, cell)
	if err == nil {
		return w.escapeString(str, isRaw), nil
	}
	if !errors.Is(err, errors.ErrUnsupported) {
		return "", err
	}

	if datatable.ValueIsNil(cell.Value) {
		return w.escapeString(w.nilValue, false), nil
	}
	str, _, _ = datatable.SprintCellFormatter(false).FormatCell(ctx, cell)
	return w.escapeString(str, false), nil
}

func (w *Writer[T]) escapeString(str string, isRaw bool) string {
	if isRaw {
		return str
	}
	// \n alone is valid within quotes
	str = strings.ReplaceAll(str, "\r", "")
	switch {
	case w.quoteAllFields || strings.ContainsRune(str, w.delimiter) || strings.ContainsRune(str, '\n'):
		return `"` + strings.ReplaceAll(str, `"`, w.escapeQuotes) + `"`
	case w.quoteEmptyFields && str == "":
		return `""`
	}
	return strings.ReplaceAll(str, `"`, w.escapeQuotes)
}

func columnWidths(rows [][]string, numCols int) []int {
	widths := make([]int, numCols)
	for _, row := range rows {
		for col, str := range row {
			widths[col] = max(widths[col], utf8.RuneCountInString(str))
		}
	}
	return widths
}

// WithHeaderRow returns a new writer that writes
// the column labels as first row if headerRow is true.
func (w *Writer[T]) WithHeaderRow(headerRow bool) *Writer[T] {
	mod := w.clone()
	mod.headerRow = headerRow
	return mod
}

// WithColumnFormatter returns a new writer with the formatter registered
// for the column with the passed property.
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

func (w *Writer[T]) WithColumnFormatterFunc(property string, formatterFunc datatable.CellFormatterFunc) *Writer[T] {
	if formatterFunc == nil {
		return w.WithColumnFormatter(property, nil)
	}
	return w.WithColumnFormatter(property, formatterFunc)
}

func (w *Writer[T]) WithTypeFormatters(formatter *datatable.ReflectTypeCellFormatter) *Writer[T] {
	mod := w.clone()
	mod.typeFormatters = formatter
	return mod
}

func (w *Writer[T]) WithTypeFormatter(typ reflect.Type, formatter datatable.CellFormatter) *Writer[T] {
	mod := w.clone()
	mod.typeFormatters = w.typeFormatters.WithTypeFormatter(typ, formatter)
	return mod
}

func (w *Writer[T]) WithKindFormatter(kind reflect.Kind, formatter datatable.CellFormatter) *Writer[T] {
	mod := w.clone()
	mod.typeFormatters = w.typeFormatters.WithKindFormatter(kind, formatter)
	return mod
}

func (w *Writer[T]) WithPadding(padding Padding) *Writer[T] {
	mod := w.clone()
	mod.padding = padding
	return mod
}

func (w *Writer[T]) WithQuoteAllFields(quoteAllFields bool) *Writer[T] {
	mod := w.clone()
	mod.quoteAllFields = quoteAllFields
	return mod
}

func (w *Writer[T]) WithQuoteEmptyFields(quoteEmptyFields bool) *Writer[T] {
	mod := w.clone()
	mod.quoteEmptyFields = quoteEmptyFields
	return mod
}

func (w *Writer[T]) WithNilValue(nilValue string) *Writer[T] {
	mod := w.clone()
	mod.nilValue = nilValue
	return mod
}

func (w *Writer[T]) WithEscapeQuotes(escapeQuotes string) *Writer[T] {
	mod := w.clone()
	mod.escapeQuotes = escapeQuotes
	return mod
}

func (w *Writer[T]) WithDelimiter(delimiter rune) *Writer[T] {
	mod := w.clone()
	mod.delimiter = delimiter
	return mod
}

func (w *Writer[T]) WithNewLine(newLine string) *Writer[T] {
	mod := w.clone()
	mod.newLine = newLine
	return mod
}

// WithEncoding returns a new writer that encodes its output
// with the named charset encoding, like "ISO 8859-1".
// An empty name writes UTF-8.
func (w *Writer[T]) WithEncoding(name string) *Writer[T] {
	mod := w.clone()
	mod.encoding = name
	return mod
}

// WithFormat returns a new writer using the separator,
// newline and encoding of a validated format.
func (w *Writer[T]) WithFormat(format *Format) (*Writer[T], error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	mod := w.clone()
	mod.delimiter = format.delimiter()
	mod.newLine = format.Newline
	mod.encoding = format.Encoding
	return mod, nil
}

// Format returns the separator, newline and encoding of the writer.
func (w *Writer[T]) Format() *Format {
	encoding := w.encoding
	if encoding == "" {
		encoding = "UTF-8"
	}
	return &Format{
		Encoding:  encoding,
		Separator: string(w.delimiter),
		Newline:   w.newLine,
	}
}

func (w *Writer[T]) QuoteAllFields() bool {
	return w.quoteAllFields
}

func (w *Writer[T]) QuoteEmptyFields() bool {
	return w.quoteEmptyFields
}

func (w *Writer[T]) Delimiter() rune {
	return w.delimiter
}

func (w *Writer[T]) EscapeQuotes() string {
	return w.escapeQuotes
}

func (w *Writer[T]) NilValue() string {
	return w.nilValue
}

func (w *Writer[T]) NewLine() string {
	return w.newLine
}
