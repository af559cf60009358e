package datatable

import (
	"context"
	"errors"
	"maps"
	"reflect"
)

// Ensure that ReflectTypeCellFormatter implements CellFormatter
var _ CellFormatter = new(ReflectTypeCellFormatter)

// ReflectTypeCellFormatter selects a CellFormatter based on
// the reflected type, interface, or kind of a cell value.
//
// Matching order:
//  1. Exact type match (Types map)
//  2. Interface type match (InterfaceTypes map)
//  3. Kind match (Kinds map)
//  4. Steps 1-3 for the dereferenced type of non-nil pointers
//  5. Default formatter
//
// Formatters returning errors.ErrUnsupported continue the matching.
// If nothing matches and no Default is configured,
// errors.ErrUnsupported is returned so the formatter
// can be used within TryFormattersOrSprint.
//
// All With* methods return a modified copy.
//
// Example usage:
//
//	formatter := NewReflectTypeCellFormatter().
//	    WithTypeFormatter(reflect.TypeOf(time.Time{}), timeFormatter).
//	    WithKindFormatter(reflect.Float64, PrintfCellFormatter("%.2f"))
type ReflectTypeCellFormatter struct {
	// Types maps exact reflect.Type to their CellFormatters.
	Types map[reflect.Type]CellFormatter

	// InterfaceTypes maps interface types to their CellFormatters.
	InterfaceTypes map[reflect.Type]CellFormatter

	// Kinds maps reflect.Kind to their CellFormatters.
	Kinds map[reflect.Kind]CellFormatter

	// Default is used when no type, interface, or kind matches.
	Default CellFormatter
}

// NewReflectTypeCellFormatter creates a new empty ReflectTypeCellFormatter.
func NewReflectTypeCellFormatter() *ReflectTypeCellFormatter {
	return new(ReflectTypeCellFormatter)
}

// FormatCell implements CellFormatter by routing to the formatter
// matching the type of the cell value.
func (f *ReflectTypeCellFormatter) FormatCell(ctx context.Context, cell *Cell) (str string, raw bool, err error) {
	if f == nil {
		return "", false, errors.ErrUnsupported
	}
	if err = ctx.Err(); err != nil {
		return "", false, err
	}
	if cell.Value.IsValid() {
		str, raw, err = f.formatType(ctx, cell, cell.Value.Type())
		if !errors.Is(err, errors.ErrUnsupported) {
			return str, raw, err
		}
		// If pointer type had no direct formatter
		// check if dereferenced value type has a formatter
		if cell.Value.Kind() == reflect.Pointer && !cell.Value.IsNil() {
			derefCell := *cell
			derefCell.Value = cell.Value.Elem()
			str, raw, err = f.formatType(ctx, &derefCell, derefCell.Value.Type())
			if !errors.Is(err, errors.ErrUnsupported) {
				return str, raw, err
			}
		}
	}
	if f.Default != nil {
		return f.Default.FormatCell(ctx, cell)
	}
	return "", false, errors.ErrUnsupported
}

func (f *ReflectTypeCellFormatter) formatType(ctx context.Context, cell *Cell, cellType reflect.Type) (str string, raw bool, err error) {
	if typeFmt, ok := f.Types[cellType]; ok {
		str, raw, err := typeFmt.FormatCell(ctx, cell)
		if !errors.Is(err, errors.ErrUnsupported) {
			return str, raw, err
		}
		// Continue after errors.ErrUnsupported
	}
	for interfaceType, interfaceFmt := range f.InterfaceTypes {
		if cellType.Implements(interfaceType) {
			str, raw, err := interfaceFmt.FormatCell(ctx, cell)
			if !errors.Is(err, errors.ErrUnsupported) {
				return str, raw, err
			}
			// Continue after errors.ErrUnsupported
		}
	}
	if kindFmt, ok := f.Kinds[cellType.Kind()]; ok {
		str, raw, err := kindFmt.FormatCell(ctx, cell)
		if !errors.Is(err, errors.ErrUnsupported) {
			return str, raw, err
		}
	}
	return "", false, errors.ErrUnsupported
}

// WithTypeFormatter returns a copy with an exact type formatter added.
func (f *ReflectTypeCellFormatter) WithTypeFormatter(typ reflect.Type, fmt CellFormatter) *ReflectTypeCellFormatter {
	mod := f.cloneOrNew()
	if mod.Types == nil {
		mod.Types = make(map[reflect.Type]CellFormatter)
	}
	mod.Types[typ] = fmt
	return mod
}

// WithInterfaceTypeFormatter returns a copy with a formatter added
// for all cell value types implementing the interface typ.
//
// Example:
//
//	stringerType := reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
//	formatter := base.WithInterfaceTypeFormatter(stringerType, SprintCellFormatter(false))
func (f *ReflectTypeCellFormatter) WithInterfaceTypeFormatter(typ reflect.Type, fmt CellFormatter) *ReflectTypeCellFormatter {
	mod := f.cloneOrNew()
	if mod.InterfaceTypes == nil {
		mod.InterfaceTypes = make(map[reflect.Type]CellFormatter)
	}
	mod.InterfaceTypes[typ] = fmt
	return mod
}

// WithKindFormatter returns a copy with a kind formatter added.
func (f *ReflectTypeCellFormatter) WithKindFormatter(kind reflect.Kind, fmt CellFormatter) *ReflectTypeCellFormatter {
	mod := f.cloneOrNew()
	if mod.Kinds == nil {
		mod.Kinds = make(map[reflect.Kind]CellFormatter)
	}
	mod.Kinds[kind] = fmt
	return mod
}

// WithDefaultFormatter returns a copy with the default formatter set.
func (f *ReflectTypeCellFormatter) WithDefaultFormatter(fmt CellFormatter) *ReflectTypeCellFormatter {
	mod := f.cloneOrNew()
	mod.Default = fmt
	return mod
}

func (f *ReflectTypeCellFormatter) cloneOrNew() *ReflectTypeCellFormatter {
	if f == nil {
		return new(ReflectTypeCellFormatter)
	}
	c := &ReflectTypeCellFormatter{Default: f.Default}
	if len(f.Types) > 0 {
		c.Types = maps.Clone(f.Types)
	}
	if len(f.InterfaceTypes) > 0 {
		c.InterfaceTypes = maps.Clone(f.InterfaceTypes)
	}
	if len(f.Kinds) > 0 {
		c.Kinds = maps.Clone(f.Kinds)
	}
	return c
}
