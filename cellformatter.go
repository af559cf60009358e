package datatable

import (
	"context"
	"errors"
	"fmt"
	"reflect"
)

// Cell is a table cell passed to a CellFormatter.
type Cell struct {
	// Item is the reflected item of the row
	Item reflect.Value
	// Row is the zero based row index
	Row int
	// Column is the resolved configuration of the cell's column
	Column *ColumnConfig
	// Value is the item field addressed by the column property,
	// invalid if the item has no such field
	Value reflect.Value
}

// Interface returns the cell value as interface
// or nil if the value is invalid or not accessible.
func (c *Cell) Interface() any {
	if !c.Value.IsValid() || !c.Value.CanInterface() {
		return nil
	}
	return c.Value.Interface()
}

// CellFormatter is an interface for formatting table cells as strings.
type CellFormatter interface {
	// FormatCell formats a cell as string
	// or returns a wrapped errors.ErrUnsupported error if
	// it doesn't support formatting the value of the cell.
	// The raw result indicates if the returned string
	// is HTML that can be used as is or if it has to be escaped.
	FormatCell(ctx context.Context, cell *Cell) (str string, raw bool, err error)
}

// CellFormatterFunc implements CellFormatter for a function.
type CellFormatterFunc func(ctx context.Context, cell *Cell) (str string, raw bool, err error)

func (f CellFormatterFunc) FormatCell(ctx context.Context, cell *Cell) (str string, raw bool, err error) {
	return f(ctx, cell)
}

// PrintfCellFormatter implements CellFormatter by calling
// fmt.Sprintf with this type's string value as format.
type PrintfCellFormatter string

func (format PrintfCellFormatter) FormatCell(ctx context.Context, cell *Cell) (str string, raw bool, err error) {
	return fmt.Sprintf(string(format), cell.Interface()), false, nil
}

// PrintfRawCellFormatter implements CellFormatter by calling
// fmt.Sprintf with this type's string value as format.
// The result will be indicated to be a raw value.
type PrintfRawCellFormatter string

func (format PrintfRawCellFormatter) FormatCell(ctx context.Context, cell *Cell) (str string, raw bool, err error) {
	return fmt.Sprintf(string(format), cell.Interface()), true, nil
}

// RawCellString implements CellFormatter by returning
// the underlying string as raw value.
type RawCellString string

func (rawStr RawCellString) FormatCell(ctx context.Context, cell *Cell) (str string, raw bool, err error) {
	return string(rawStr), true, nil
}

// SprintCellFormatter implements CellFormatter by calling
// fmt.Sprint with the dereferenced cell value.
// The bool value of the type is returned as raw result.
type SprintCellFormatter bool

func (rawResult SprintCellFormatter) FormatCell(ctx context.Context, cell *Cell) (str string, raw bool, err error) {
	return sprintValue(cell.Value), bool(rawResult), nil
}

// TryFormattersOrSprint returns a CellFormatter that tries the passed
// formatters in order until one doesn't return errors.ErrUnsupported.
// Nil formatters are skipped.
// If all formatters are unsupported, nil values are formatted
// as empty string and other values with fmt.Sprint.
func TryFormattersOrSprint(formatters ...CellFormatter) CellFormatter {
	return CellFormatterFunc(func(ctx context.Context, cell *Cell) (str string, raw bool, err error) {
		if err = ctx.Err(); err != nil {
			return "", false, err
		}
		for _, f := range formatters {
			if f == nil {
				continue
			}
			str, raw, err = f.FormatCell(ctx, cell)
			if !errors.Is(err, errors.ErrUnsupported) {
				return str, raw, err
			}
		}
		return sprintValue(cell.Value), false, nil
	})
}

func sprintValue(v reflect.Value) string {
	v = derefValue(v)
	if ValueIsNil(v) || !v.CanInterface() {
		return ""
	}
	return fmt.Sprint(v.Interface())
}
