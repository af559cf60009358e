package datatable

// AssistiveText holds the labels read by assistive technology.
// Empty fields are not set.
type AssistiveText struct {
	ActionsHeader          string `json:"actionsHeader,omitempty"          yaml:"actionsHeader,omitempty"          toml:"actionsHeader,omitempty"`
	ColumnSort             string `json:"columnSort,omitempty"             yaml:"columnSort,omitempty"             toml:"columnSort,omitempty"`
	ColumnSortedAscending  string `json:"columnSortedAscending,omitempty"  yaml:"columnSortedAscending,omitempty"  toml:"columnSortedAscending,omitempty"`
	ColumnSortedDescending string `json:"columnSortedDescending,omitempty" yaml:"columnSortedDescending,omitempty" toml:"columnSortedDescending,omitempty"`
	SelectAllRows          string `json:"selectAllRows,omitempty"          yaml:"selectAllRows,omitempty"          toml:"selectAllRows,omitempty"`
	SelectRow              string `json:"selectRow,omitempty"              yaml:"selectRow,omitempty"              toml:"selectRow,omitempty"`
}

// Merge returns a copy of a with every
// non-empty field of override replacing the field of a.
func (a AssistiveText) Merge(override AssistiveText) AssistiveText {
	if override.ActionsHeader != "" {
		a.ActionsHeader = override.ActionsHeader
	}
	if override.ColumnSort != "" {
		a.ColumnSort = override.ColumnSort
	}
	if override.ColumnSortedAscending != "" {
		a.ColumnSortedAscending = override.ColumnSortedAscending
	}
	if override.ColumnSortedDescending != "" {
		a.ColumnSortedDescending = override.ColumnSortedDescending
	}
	if override.SelectAllRows != "" {
		a.SelectAllRows = override.SelectAllRows
	}
	if override.SelectRow != "" {
		a.SelectRow = override.SelectRow
	}
	return a
}

// ResolveAssistiveText merges DefaultAssistiveText with overrides.
// The deprecated per-label overrides of legacy
// take precedence over both when set.
func ResolveAssistiveText(overrides, legacy AssistiveText) AssistiveText {
	return DefaultAssistiveText.Merge(overrides).Merge(legacy)
}
