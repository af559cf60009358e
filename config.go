package datatable

var (
	// DefaultFieldNaming addresses item fields by the "col" struct tag,
	// hides "-" tagged fields and uses the field name for untagged fields.
	DefaultFieldNaming = FieldNaming{
		Tag:    "col",
		Ignore: "-",
	}

	// DefaultIDProperty is the property key of the unique item id
	// used when Table.IDProperty is empty.
	DefaultIDProperty = "id"

	// DefaultAssistiveText holds the default labels
	// merged with the overrides of a table.
	DefaultAssistiveText = AssistiveText{
		ActionsHeader:          "Actions",
		ColumnSort:             "Sort by: ",
		ColumnSortedAscending:  "Sorted Ascending",
		ColumnSortedDescending: "Sorted Descending",
		SelectAllRows:          "Select all rows",
		SelectRow:              "Select row",
	}

	// DefaultRowActionsLabel is the assistive label of
	// the row actions menu trigger.
	DefaultRowActionsLabel = "Show More"
)
