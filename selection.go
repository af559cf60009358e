package datatable

import "reflect"

// SelectionState is the aggregate selection state
// shown by the select-all control of the table head.
type SelectionState struct {
	AllSelected           bool
	IndeterminateSelected bool
}

// SelectionStateOf returns the aggregate selection state for
// numSelected of numRows selected rows.
// Both flags are false if row selection is disabled.
func SelectionStateOf(mode SelectRows, numRows, numSelected int) SelectionState {
	if !mode.Enabled() {
		return SelectionState{}
	}
	return SelectionState{
		AllSelected:           numRows > 0 && numSelected == numRows,
		IndeterminateSelected: numSelected > 0 && numSelected < numRows,
	}
}

// ItemsEqual is the default equality of items
// used to find an item within a selection.
func ItemsEqual[T any](a, b T) bool {
	return reflect.DeepEqual(a, b)
}

// SelectAll returns the selection proposed by the select-all control:
// a copy of items if checked, else an empty selection.
func SelectAll[T any](items []T, checked bool) []T {
	if !checked {
		return []T{}
	}
	selection := make([]T, len(items))
	copy(selection, items)
	return selection
}

// SelectRow returns the selection proposed by toggling the
// selection control of a single row.
//
// Selecting in radio mode replaces the selection with item,
// selecting in checkbox mode appends item to the selection.
// Deselecting removes every selected value equal to item
// and keeps the order of the remaining items.
// A nil equal func defaults to ItemsEqual.
// The passed selection is never modified.
func SelectRow[T any](mode SelectRows, selection []T, item T, selected bool, equal func(a, b T) bool) []T {
	if equal == nil {
		equal = ItemsEqual[T]
	}
	if selected {
		if mode == SelectRowsRadio {
			return []T{item}
		}
		result := make([]T, len(selection), len(selection)+1)
		copy(result, selection)
		return append(result, item)
	}
	result := make([]T, 0, len(selection))
	for _, s := range selection {
		if !equal(s, item) {
			result = append(result, s)
		}
	}
	return result
}

// ContainsItem returns true if selection contains a value equal to item.
// A nil equal func defaults to ItemsEqual.
func ContainsItem[T any](selection []T, item T, equal func(a, b T) bool) bool {
	if equal == nil {
		equal = ItemsEqual[T]
	}
	for _, s := range selection {
		if equal(s, item) {
			return true
		}
	}
	return false
}
