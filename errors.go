package datatable

import "errors"

var (
	// ErrDuplicateRowActions is returned by Assemble when more than
	// one RowActions descriptor is passed. A table renders at most
	// one row-actions menu per row.
	ErrDuplicateRowActions = errors.New("more than one row actions descriptor")

	// ErrInvalidSelectRows indicates a value that can't be
	// interpreted as SelectRows mode.
	ErrInvalidSelectRows = errors.New("invalid select rows mode")

	// ErrUnknownVariant indicates a variant name unknown to ParseVariant.
	ErrUnknownVariant = errors.New("unknown table variant")
)
