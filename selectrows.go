package datatable

import (
	"fmt"
	"strconv"
	"strings"
)

// SelectRows is the row selection mode of a table.
type SelectRows int

const (
	SelectRowsDisabled SelectRows = iota
	SelectRowsCheckbox
	SelectRowsRadio
)

// Enabled returns true for the checkbox and radio modes.
func (s SelectRows) Enabled() bool {
	return s == SelectRowsCheckbox || s == SelectRowsRadio
}

// InputType returns the HTML input type of the
// row selection controls or an empty string if disabled.
func (s SelectRows) InputType() string {
	switch s {
	case SelectRowsCheckbox:
		return "checkbox"
	case SelectRowsRadio:
		return "radio"
	}
	return ""
}

func (s SelectRows) String() string {
	switch s {
	case SelectRowsDisabled:
		return "disabled"
	case SelectRowsCheckbox:
		return "checkbox"
	case SelectRowsRadio:
		return "radio"
	}
	return fmt.Sprintf("SelectRows(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler
func (s SelectRows) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
// using ParseSelectRows.
func (s *SelectRows) UnmarshalText(text []byte) error {
	parsed, err := ParseSelectRows(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSelectRows interprets a configuration value as SelectRows mode.
// The legacy boolean true means checkbox selection, false and nil disable it.
// Strings may name a mode ("checkbox", "radio", "disabled")
// or hold a boolean.
func ParseSelectRows(val any) (SelectRows, error) {
	switch v := val.(type) {
	case nil:
		return SelectRowsDisabled, nil
	case SelectRows:
		return v, nil
	case bool:
		if v {
			return SelectRowsCheckbox, nil
		}
		return SelectRowsDisabled, nil
	case string:
		switch s := strings.ToLower(strings.TrimSpace(v)); s {
		case "", "disabled", "none":
			return SelectRowsDisabled, nil
		case "checkbox":
			return SelectRowsCheckbox, nil
		case "radio":
			return SelectRowsRadio, nil
		default:
			if b, err := strconv.ParseBool(s); err == nil {
				return ParseSelectRows(b)
			}
		}
	}
	return SelectRowsDisabled, fmt.Errorf("%w: %#v", ErrInvalidSelectRows, val)
}
