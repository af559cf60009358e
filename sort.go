package datatable

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"time"
)

var typeOfTime = reflect.TypeOf(time.Time{})

// SortItems returns a copy of items stably sorted
// by the field addressed by sort.Property.
// Items are not sorted for SortNone or an empty property.
//
// Numbers, including number strings like json.Number,
// compare numerically, other strings lexically,
// time.Time chronologically and false before true.
// Missing and nil values sort first in ascending order.
// Other values compare by their fmt.Sprint representation.
func SortItems[T any](items []T, sort SortInfo, naming *FieldNaming) []T {
	sorted := slices.Clone(items)
	if sort.Property == "" || sort.SortDirection == SortNone {
		return sorted
	}
	slices.SortStableFunc(sorted, func(a, b T) int {
		c := CompareValues(
			naming.ItemValue(reflect.ValueOf(a), sort.Property),
			naming.ItemValue(reflect.ValueOf(b), sort.Property),
		)
		if sort.SortDirection == SortDescending {
			return -c
		}
		return c
	})
	return sorted
}

// CompareValues compares two reflected values for sorting
// and returns -1, 0, or +1.
func CompareValues(a, b reflect.Value) int {
	a, b = derefValue(a), derefValue(b)
	aNil, bNil := ValueIsNil(a) || !a.CanInterface(), ValueIsNil(b) || !b.CanInterface()
	switch {
	case aNil && bNil:
		return 0
	case aNil:
		return -1
	case bNil:
		return +1
	}
	if a.Type() == typeOfTime && b.Type() == typeOfTime {
		return a.Interface().(time.Time).Compare(b.Interface().(time.Time))
	}
	if af, ok := numberValue(a); ok {
		if bf, ok := numberValue(b); ok {
			return cmp.Compare(af, bf)
		}
	}
	if a.Kind() == reflect.Bool && b.Kind() == reflect.Bool {
		switch {
		case a.Bool() == b.Bool():
			return 0
		case !a.Bool():
			return -1
		default:
			return +1
		}
	}
	if a.Kind() == reflect.String && b.Kind() == reflect.String {
		return cmp.Compare(a.String(), b.String())
	}
	return cmp.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
}

// floater is implemented by decoded number strings like json.Number.
type floater interface {
	Float64() (float64, error)
}

func numberValue(v reflect.Value) (float64, bool) {
	if n, ok := v.Interface().(floater); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	}
	return 0, false
}
