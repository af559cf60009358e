// Package csvtable writes datatable.Table values as CSV.
//
// The header row holds the column labels followed by one row per item
// with the cells of the table columns in display order.
// Selection controls and row action menus are not exported.
package csvtable

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Format describes the encoding and structure of written CSV.
//
// Example:
//
//	format := &Format{
//	    Encoding:  "UTF-8",
//	    Separator: ",",
//	    Newline:   "\r\n",
//	}
type Format struct {
	// Encoding of the CSV data like "UTF-8", "ISO 8859-1" or "Windows 1252"
	Encoding  string `json:"encoding"`
	// Separator is the single field delimiter character
	Separator string `json:"separator"`
	// Newline is one of "\n", "\r\n" or "\n\r"
	Newline   string `json:"newline"`
}

// NewFormat returns a UTF-8 Format with separator and "\r\n" newlines.
func NewFormat(separator string) *Format {
	return &Format{
		Encoding:  "UTF-8",
		Separator: separator,
		Newline:   "\r\n",
	}
}

// Validate returns an error if the format is nil,
// has no encoding or has an invalid separator or newline.
func (f *Format) Validate() error {
	switch {
	case f == nil:
		return errors.New("<nil> csvtable.Format")
	case f.Encoding == "":
		return errors.New("missing csvtable.Format.Encoding")
	case f.Separator == "":
		return errors.New("missing csvtable.Format.Separator")
	case utf8.RuneCountInString(f.Separator) > 1:
		return fmt.Errorf("invalid csvtable.Format.Separator: %q", f.Separator)
	case f.Newline == "":
		return errors.New("missing csvtable.Format.Newline")
	case f.Newline != "\n" && f.Newline != "\n\r" && f.Newline != "\r\n":
		return fmt.Errorf("invalid csvtable.Format.Newline: %q", f.Newline)
	}
	return nil
}

func (f *Format) delimiter() rune {
	r, _ := utf8.DecodeRuneInString(f.Separator)
	return r
}
