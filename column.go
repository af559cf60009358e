package datatable

import "fmt"

// SortDirection of a sorted column.
type SortDirection string

const (
	SortNone       SortDirection = ""
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// Valid returns true for SortNone, SortAscending and SortDescending.
func (d SortDirection) Valid() bool {
	switch d {
	case SortNone, SortAscending, SortDescending:
		return true
	}
	return false
}

// AriaSort returns the value of the aria-sort attribute.
func (d SortDirection) AriaSort() string {
	switch d {
	case SortAscending:
		return "ascending"
	case SortDescending:
		return "descending"
	}
	return "none"
}

// ParseSortDirection parses "asc", "ascending", "desc",
// "descending" or an empty string.
func ParseSortDirection(s string) (SortDirection, error) {
	switch s {
	case "":
		return SortNone, nil
	case "asc", "ascending":
		return SortAscending, nil
	case "desc", "descending":
		return SortDescending, nil
	}
	return SortNone, fmt.Errorf("invalid sort direction %q", s)
}

// SortInfo is emitted by Table.Sort when
// the header of a sortable column is activated.
type SortInfo struct {
	Property      string
	SortDirection SortDirection
}

// Column declares a table column.
// Columns are passed to a table as an explicit list
// or as Descriptor values to Assemble.
type Column struct {
	// Property is the key of the item field displayed in the column
	Property string
	// Label of the column header,
	// defaults to SpacePascalCase(Property)
	Label string
	// Title of the header cell,
	// defaults to Label
	Title string
	// Sortable columns emit sort events when their header is activated
	Sortable bool
	// SortDirection is the current sort direction of a sorted column
	SortDirection SortDirection
	// DefaultSortDescending makes the first sort of
	// an unsorted column descending
	DefaultSortDescending bool
	// Width is a CSS width for the header cell
	Width string
	// Truncate wraps cell content for text truncation
	Truncate bool
	// Primary renders the cells of the column as row headers
	Primary bool
	// Cell overrides the default cell formatter of the table
	Cell CellFormatter
}

// IsSorted returns true if the column has a sort direction.
func (c *Column) IsSorted() bool {
	return c.SortDirection != SortNone
}

// NextSortDirection returns the direction proposed
// when the column header is activated.
func (c *Column) NextSortDirection() SortDirection {
	switch c.SortDirection {
	case SortAscending:
		return SortDescending
	case SortDescending:
		return SortAscending
	}
	if c.DefaultSortDescending {
		return SortDescending
	}
	return SortAscending
}

// ColumnProps are the table properties
// merged into every ColumnConfig.
type ColumnProps struct {
	TableID     string
	FixedHeader bool
	FixedLayout bool
}

// ColumnConfig is the resolved configuration of a column
// paired with the CellFormatter rendering its cells.
type ColumnConfig struct {
	Column
	ColumnProps

	// Index of the column within the table
	Index int
	// Formatter is Column.Cell or the default formatter of the table
	Formatter CellFormatter
}

// ResolveColumns merges the table props with each column's declared props
// and pairs it with its cell formatter.
// Columns without Cell use defaultFormatter.
func ResolveColumns(props ColumnProps, columns []Column, defaultFormatter CellFormatter) []ColumnConfig {
	configs := make([]ColumnConfig, len(columns))
	for i, column := range columns {
		if column.Label == "" {
			column.Label = SpacePascalCase(column.Property)
		}
		if column.Title == "" {
			column.Title = column.Label
		}
		formatter := column.Cell
		if formatter == nil {
			formatter = defaultFormatter
		}
		configs[i] = ColumnConfig{
			Column:      column,
			ColumnProps: props,
			Index:       i,
			Formatter:   formatter,
		}
	}
	return configs
}

// ColumnsFromProperties returns a column per property.
// Use it with FieldNaming.Properties to derive
// the columns of struct items.
func ColumnsFromProperties(properties ...string) []Column {
	columns := make([]Column, len(properties))
	for i, property := range properties {
		columns[i] = Column{Property: property}
	}
	return columns
}
