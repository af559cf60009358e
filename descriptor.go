package datatable

// Descriptor is a declared child of a table:
// either a Column or RowActions.
// It replaces matching nested child nodes by type
// with an explicit tagged variant list.
type Descriptor interface {
	isDescriptor()
}

func (Column) isDescriptor()     {}
func (RowActions) isDescriptor() {}

// RowAction is an option of the row actions menu.
type RowAction struct {
	Label    string `json:"label"              yaml:"label"              toml:"label"`
	Value    string `json:"value"              yaml:"value"              toml:"value"`
	Disabled bool   `json:"disabled,omitempty" yaml:"disabled,omitempty" toml:"disabled,omitempty"`
}

// RowActions declares the menu rendered in the last cell of every row.
type RowActions struct {
	Options []RowAction
	// AssistiveText labels the menu trigger,
	// defaults to DefaultRowActionsLabel
	AssistiveText string
	// DropdownAlign is "left" or "right" (default)
	DropdownAlign string
}

// Label returns the assistive label of the menu trigger.
func (r *RowActions) Label() string {
	if r.AssistiveText != "" {
		return r.AssistiveText
	}
	return DefaultRowActionsLabel
}

// Option returns the option with the passed value.
func (r *RowActions) Option(value string) (RowAction, bool) {
	for _, option := range r.Options {
		if option.Value == value {
			return option, true
		}
	}
	return RowAction{}, false
}

// Layout is the column and row actions configuration of a table
// derived from its descriptors.
type Layout struct {
	Columns    []Column
	RowActions *RowActions
}

// Assemble walks descriptors once and returns the declared columns
// in order and the row actions descriptor.
// Nil descriptors are skipped.
// More than one row actions descriptor results in ErrDuplicateRowActions.
func Assemble(descriptors ...Descriptor) (Layout, error) {
	var layout Layout
	for _, desc := range descriptors {
		switch d := desc.(type) {
		case Column:
			layout.Columns = append(layout.Columns, d)
		case *Column:
			if d != nil {
				layout.Columns = append(layout.Columns, *d)
			}
		case RowActions:
			if layout.RowActions != nil {
				return Layout{}, ErrDuplicateRowActions
			}
			layout.RowActions = &d
		case *RowActions:
			if d == nil {
				continue
			}
			if layout.RowActions != nil {
				return Layout{}, ErrDuplicateRowActions
			}
			c := *d
			layout.RowActions = &c
		}
	}
	return layout, nil
}
