package definition

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/domonda/go-datatable"
)

func TestFormatOf(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
		wantErr  bool
	}{
		{filename: "table.yaml", want: FormatYAML},
		{filename: "table.YML", want: FormatYAML},
		{filename: "dir/table.toml", want: FormatTOML},
		{filename: "table.json", want: FormatJSON},
		{filename: "table.xml", wantErr: true},
		{filename: "table", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, err := FormatOf(tt.filename)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	for _, name := range []string{"people.yaml", "people.toml", "people.json"} {
		t.Run(name, func(t *testing.T) {
			def, err := Load(filepath.Join("testdata", name))
			require.NoError(t, err)

			require.Equal(t, "people", def.ID)
			require.Equal(t, "People", def.Caption)
			require.Equal(t, []string{"striped", "fixedHeader"}, def.Variants)
			require.Equal(t, []string{"2"}, def.Selection)
			wantColumns := []Column{
				{Property: "name", Label: "Name", Sortable: true, Sort: "asc", Primary: true},
				{Property: "age", Sortable: true, DefaultSortDescending: true, Format: "%v years"},
				{Property: "note", Formatter: "code"},
			}
			if diff := cmp.Diff(wantColumns, def.Columns); diff != "" {
				t.Errorf("columns mismatch (-want +got):\n%s", diff)
			}
			wantRowActions := &RowActions{
				AssistiveText: "More",
				Options: []datatable.RowAction{
					{Label: "Edit", Value: "edit"},
					{Label: "Delete", Value: "delete", Disabled: true},
				},
			}
			if diff := cmp.Diff(wantRowActions, def.RowActions); diff != "" {
				t.Errorf("row actions mismatch (-want +got):\n%s", diff)
			}

			table, err := def.Table()
			require.NoError(t, err)
			require.Equal(t, datatable.SelectRowsCheckbox, table.SelectRows)
			require.Equal(t, datatable.VariantStriped|datatable.VariantFixedHeader, table.Variant)
			require.Equal(t, "Select all people", table.Text().SelectAllRows)
			require.Len(t, table.Items, 2)
			require.Equal(t, "1", table.ItemID(table.Items[0]))
			require.Len(t, table.Selection, 1)
			require.Equal(t, "Bob", table.Selection[0]["name"])
			require.Equal(t, datatable.SelectionState{IndeterminateSelected: true}, table.SelectionState())

			column, ok := table.Column("name")
			require.True(t, ok)
			require.Equal(t, datatable.SortAscending, column.SortDirection)
			require.NotNil(t, table.RowActions)
			require.Equal(t, "More", table.RowActions.Label())
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)

	_, err = Load(filepath.Join("testdata", "people.txt"))
	require.Error(t, err)

	_, err = Parse([]byte("id: [unclosed"), FormatYAML)
	require.Error(t, err)

	_, err = Parse([]byte(`{}`), Format("xml"))
	require.Error(t, err)
}

func TestParse_JSONNumbers(t *testing.T) {
	def, err := Parse([]byte(`{
		"id": "t",
		"selectRows": "checkbox",
		"columns": [{"property": "id", "sortable": true, "sort": "desc"}],
		"items": [{"id": 9}, {"id": 1000000}, {"id": 10}],
		"selection": ["1000000"]
	}`), FormatJSON)
	require.NoError(t, err)

	table, err := def.Table()
	require.NoError(t, err)
	require.Equal(t, "1000000", table.ItemID(table.Items[1]))
	require.Equal(t, "t-row-1000000", table.RowKey(table.Items[1]))
	require.Len(t, table.Selection, 1)
	item, ok := table.FindItem("1000000")
	require.True(t, ok)
	require.Equal(t, table.Selection[0], item)

	sorted := datatable.SortItems(table.Items, datatable.SortInfo{Property: "id", SortDirection: datatable.SortDescending}, table.FieldNaming)
	ids := make([]string, len(sorted))
	for i, it := range sorted {
		ids[i] = table.ItemID(it)
	}
	require.Equal(t, []string{"1000000", "10", "9"}, ids)

	_, err = Parse([]byte(`{"id": "t"} {"id": "u"}`), FormatJSON)
	require.Error(t, err)
}

func TestColumn_CellFormatter(t *testing.T) {
	ctx := context.Background()
	format := func(t *testing.T, c Column, value any) string {
		t.Helper()
		formatter, err := c.CellFormatter()
		require.NoError(t, err)
		require.NotNil(t, formatter)
		str, _, err := formatter.FormatCell(ctx, &datatable.Cell{Value: reflect.ValueOf(value)})
		require.NoError(t, err)
		return str
	}

	require.Equal(t, "7 items", format(t, Column{Property: "n", Format: "%v items"}, 7))
	require.Equal(t, "<code>x</code>", format(t, Column{Property: "n", Formatter: "code"}, "x"))
	require.Equal(t, "<span class='ok'>yes</span>", format(t, Column{Property: "n", Formatter: "span-class", Class: "ok"}, "yes"))

	formatter, err := (&Column{Property: "n"}).CellFormatter()
	require.NoError(t, err)
	require.Nil(t, formatter)

	_, err = (&Column{Property: "n", Format: "%v", Formatter: "code"}).CellFormatter()
	require.Error(t, err)
	_, err = (&Column{Property: "n", Formatter: "span-class"}).CellFormatter()
	require.Error(t, err)
	_, err = (&Column{Property: "n", Formatter: "unknown"}).CellFormatter()
	require.Error(t, err)
}

func TestDefinition_TableErrors(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
	}{
		{name: "column without property", def: Definition{Columns: []Column{{Label: "X"}}}},
		{name: "invalid sort", def: Definition{Columns: []Column{{Property: "x", Sort: "up"}}}},
		{name: "invalid select rows", def: Definition{SelectRows: "multi"}},
		{name: "unknown variant", def: Definition{Variants: []string{"fancy"}}},
		{name: "unknown selection", def: Definition{
			ID:        "t",
			Items:     []Item{{"id": 1}},
			Selection: []string{"2"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.def.Table()
			require.Error(t, err)
		})
	}
}

func TestDefinition_TableLegacySelectRows(t *testing.T) {
	def, err := Parse([]byte("id: t\nselectRows: true\n"), FormatYAML)
	require.NoError(t, err)
	table, err := def.Table()
	require.NoError(t, err)
	require.Equal(t, datatable.SelectRowsCheckbox, table.SelectRows)
}
