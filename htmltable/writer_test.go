package htmltable

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/domonda/go-datatable"
)

type person struct {
	ID   int    `col:"id"`
	Name string `col:"name"`
	Note any    `col:"note"`
}

var people = []person{
	{ID: 1, Name: "Alice"},
	{ID: 2, Name: "Bob", Note: "<i>new</i>"},
	{ID: 3, Name: "Carol"},
}

func ExampleWriter() {
	type Row struct {
		ID          int             `col:"id"`
		Status      json.RawMessage `col:"status"`
		CompanyName string          `col:"company"`
	}
	rows := []Row{
		{ID: 1, Status: nil, CompanyName: "Company 1"},
		{ID: 2, Status: json.RawMessage(`{"ok":true}`), CompanyName: "Company 2"},
	}
	table, _ := datatable.NewTable("companies", rows,
		datatable.Column{Property: "company", Label: "Company"},
		datatable.Column{Property: "status", Label: "Status"},
	)

	NewWriter[Row]().
		WithTypeFormatter(reflect.TypeOf(json.RawMessage(nil)), JSONCellFormatter("")).
		Write(context.Background(), os.Stdout, table, "Table Title")

	// Output:
	// <table id="companies" class="slds-table slds-table_bordered slds-table_cell-buffer" role="grid">
	//   <caption>Table Title</caption>
	//   <thead>
	//     <tr class="slds-line-height_reset">
	//       <th scope="col" aria-label="Company"><div class="slds-truncate" title="Company">Company</div></th>
	//       <th scope="col" aria-label="Status"><div class="slds-truncate" title="Status">Status</div></th>
	//     </tr>
	//   </thead>
	//   <tbody>
	//     <tr id="companies-row-1" class="slds-hint-parent">
	//       <td role="gridcell" data-label="Company">Company 1</td>
	//       <td role="gridcell" data-label="Status"></td>
	//     </tr>
	//     <tr id="companies-row-2" class="slds-hint-parent">
	//       <td role="gridcell" data-label="Company">Company 2</td>
	//       <td role="gridcell" data-label="Status"><pre>{&#34;ok&#34;:true}</pre></td>
	//     </tr>
	//   </tbody>
	// </table>
}

func newPeopleTable(t *testing.T, descriptors ...datatable.Descriptor) *datatable.Table[person] {
	t.Helper()
	if len(descriptors) == 0 {
		descriptors = []datatable.Descriptor{
			datatable.Column{Property: "name", Label: "Name"},
			datatable.Column{Property: "note", Label: "Note"},
		}
	}
	table, err := datatable.NewTable("people", people, descriptors...)
	require.NoError(t, err)
	return table
}

func render(t *testing.T, w *Writer[person], table *datatable.Table[person]) (string, *html.Node) {
	t.Helper()
	var buf bytes.Buffer
	err := w.Write(context.Background(), &buf, table)
	require.NoError(t, err)
	doc, err := html.Parse(strings.NewReader(buf.String()))
	require.NoError(t, err)
	return buf.String(), doc
}

func findNodes(node *html.Node, want func(*html.Node) bool) []*html.Node {
	if want(node) {
		return []*html.Node{node}
	}
	var results []*html.Node
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		results = append(results, findNodes(child, want)...)
	}
	return results
}

func findElements(node *html.Node, tag string) []*html.Node {
	return findNodes(node, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	})
}

func attr(node *html.Node, key string) (string, bool) {
	for _, a := range node.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func collectText(node *html.Node) string {
	var text strings.Builder
	for _, n := range findNodes(node, func(n *html.Node) bool { return n.Type == html.TextNode }) {
		text.WriteString(n.Data)
	}
	return text.String()
}

func TestWriter_CheckboxSelection(t *testing.T) {
	table := newPeopleTable(t)
	table.SelectRows = datatable.SelectRowsCheckbox
	table.Selection = []person{people[1]}

	_, doc := render(t, NewWriter[person](), table)

	thead := findElements(doc, "thead")
	require.Len(t, thead, 1)
	headInputs := findElements(thead[0], "input")
	require.Len(t, headInputs, 1, "select-all checkbox")
	id, _ := attr(headInputs[0], "id")
	require.Equal(t, "people-select-all", id)
	label, _ := attr(headInputs[0], "aria-label")
	require.Equal(t, "Select all rows", label)
	_, checked := attr(headInputs[0], "checked")
	require.False(t, checked, "not all rows selected")
	_, indeterminate := attr(headInputs[0], "data-indeterminate")
	require.True(t, indeterminate, "some rows selected")

	tbody := findElements(doc, "tbody")
	require.Len(t, tbody, 1)
	rows := findElements(tbody[0], "tr")
	require.Len(t, rows, 3)
	for i, row := range rows {
		selected := i == 1
		class, _ := attr(row, "class")
		require.Equal(t, selected, strings.Contains(class, "slds-is-selected"), "row %d class", i)
		ariaSelected, _ := attr(row, "aria-selected")
		if selected {
			require.Equal(t, "true", ariaSelected)
		} else {
			require.Equal(t, "false", ariaSelected)
		}
		inputs := findElements(row, "input")
		require.Len(t, inputs, 1)
		typ, _ := attr(inputs[0], "type")
		require.Equal(t, "checkbox", typ)
		name, _ := attr(inputs[0], "name")
		require.Equal(t, "people-select", name)
		_, checked := attr(inputs[0], "checked")
		require.Equal(t, selected, checked, "row %d checked", i)
	}
}

func TestWriter_AllSelected(t *testing.T) {
	table := newPeopleTable(t)
	table.SelectRows = datatable.SelectRowsCheckbox
	table.Selection = people

	_, doc := render(t, NewWriter[person](), table)

	headInputs := findElements(findElements(doc, "thead")[0], "input")
	require.Len(t, headInputs, 1)
	_, checked := attr(headInputs[0], "checked")
	require.True(t, checked)
	_, indeterminate := attr(headInputs[0], "data-indeterminate")
	require.False(t, indeterminate)
}

func TestWriter_RadioSelection(t *testing.T) {
	table := newPeopleTable(t)
	table.SelectRows = datatable.SelectRowsRadio
	table.Selection = []person{people[2]}

	_, doc := render(t, NewWriter[person](), table)

	thead := findElements(doc, "thead")[0]
	require.Empty(t, findElements(thead, "input"), "no select-all control for radio selection")
	require.Len(t, findElements(thead, "th"), 3, "selection column header is still rendered")

	inputs := findElements(findElements(doc, "tbody")[0], "input")
	require.Len(t, inputs, 3)
	for i, input := range inputs {
		typ, _ := attr(input, "type")
		require.Equal(t, "radio", typ)
		value, _ := attr(input, "value")
		require.Equal(t, []string{"1", "2", "3"}[i], value)
		_, checked := attr(input, "checked")
		require.Equal(t, i == 2, checked)
	}
}

func TestWriter_NoSelection(t *testing.T) {
	table := newPeopleTable(t)
	table.Selection = people

	_, doc := render(t, NewWriter[person](), table)

	require.Empty(t, findElements(doc, "input"))
	for _, row := range findElements(findElements(doc, "tbody")[0], "tr") {
		_, ok := attr(row, "aria-selected")
		require.False(t, ok)
		class, _ := attr(row, "class")
		require.Equal(t, "slds-hint-parent", class)
	}
}

func TestWriter_SortableColumns(t *testing.T) {
	table := newPeopleTable(t,
		datatable.Column{Property: "name", Label: "Name", Sortable: true, SortDirection: datatable.SortAscending},
		datatable.Column{Property: "id", Label: "ID", Sortable: true, DefaultSortDescending: true},
		datatable.Column{Property: "note", Label: "Note", Width: "10rem"},
	)
	table.AssistiveText.ColumnSort = "Sort column "

	_, doc := render(t, NewWriter[person](), table)

	ths := findElements(findElements(doc, "thead")[0], "th")
	require.Len(t, ths, 3)

	class, _ := attr(ths[0], "class")
	require.Equal(t, "slds-is-sortable slds-is-sorted slds-is-sorted_asc", class)
	ariaSort, _ := attr(ths[0], "aria-sort")
	require.Equal(t, "ascending", ariaSort)
	links := findElements(ths[0], "a")
	require.Len(t, links, 1)
	property, _ := attr(links[0], "data-sort-property")
	require.Equal(t, "name", property)
	next, _ := attr(links[0], "data-sort-direction")
	require.Equal(t, "desc", next)
	require.Equal(t, "Sort column NameSorted Ascending", collectText(links[0]))

	class, _ = attr(ths[1], "class")
	require.Equal(t, "slds-is-sortable", class)
	ariaSort, _ = attr(ths[1], "aria-sort")
	require.Equal(t, "none", ariaSort)
	next, _ = attr(findElements(ths[1], "a")[0], "data-sort-direction")
	require.Equal(t, "desc", next, "default sort descending")

	_, ok := attr(ths[2], "aria-sort")
	require.False(t, ok, "not sortable")
	require.Empty(t, findElements(ths[2], "a"))
	style, _ := attr(ths[2], "style")
	require.Equal(t, "width:10rem", style)
}

func TestWriter_RowActions(t *testing.T) {
	table := newPeopleTable(t,
		datatable.Column{Property: "name", Label: "Name", Primary: true},
		datatable.RowActions{
			Options: []datatable.RowAction{
				{Label: "Edit", Value: "edit"},
				{Label: "Delete", Value: "delete", Disabled: true},
			},
		},
	)

	_, doc := render(t, NewWriter[person](), table)

	ths := findElements(findElements(doc, "thead")[0], "th")
	require.Len(t, ths, 2)
	require.Equal(t, "Actions", collectText(ths[1]))

	rows := findElements(findElements(doc, "tbody")[0], "tr")
	require.Len(t, rows, 3)
	for _, row := range rows {
		rowHeaders := findElements(row, "th")
		require.Len(t, rowHeaders, 1, "primary column renders row header")
		scope, _ := attr(rowHeaders[0], "scope")
		require.Equal(t, "row", scope)

		buttons := findElements(row, "button")
		require.Len(t, buttons, 1)
		title, _ := attr(buttons[0], "title")
		require.Equal(t, "Show More", title)

		items := findElements(row, "a")
		require.Len(t, items, 2)
		action, _ := attr(items[0], "data-row-action")
		require.Equal(t, "edit", action)
		_, disabled := attr(items[0], "aria-disabled")
		require.False(t, disabled)
		action, _ = attr(items[1], "data-row-action")
		require.Equal(t, "delete", action)
		_, disabled = attr(items[1], "aria-disabled")
		require.True(t, disabled)
	}
	menu := findNodes(rows[0], func(n *html.Node) bool {
		class, _ := attr(n, "class")
		return strings.HasPrefix(class, "slds-dropdown ")
	})
	require.Len(t, menu, 1)
	class, _ := attr(menu[0], "class")
	require.Equal(t, "slds-dropdown slds-dropdown_right", class)
}

func TestWriter_FixedHeader(t *testing.T) {
	table := newPeopleTable(t)
	table.Variant = datatable.VariantFixedHeader

	positions := []datatable.CellPosition{{Left: 10.5, Width: 100}, {Left: 110.5, Width: 80}}
	out, doc := render(t, NewWriter[person]().WithFixedCellPositions(positions), table)

	require.True(t, strings.HasPrefix(out, `<div class="slds-table_header-fixed_container">`))
	require.True(t, strings.HasSuffix(out, "</div>\n</div>"))

	tables := findElements(doc, "table")
	require.Len(t, tables, 1)
	class, _ := attr(tables[0], "class")
	require.Contains(t, class, "slds-table_header-fixed")

	fixed := findNodes(findElements(doc, "thead")[0], func(n *html.Node) bool {
		class, _ := attr(n, "class")
		return class == "slds-cell-fixed"
	})
	require.Len(t, fixed, 2)
	style, _ := attr(fixed[0], "style")
	require.Equal(t, "left:10.5px;width:100px", style)
	style, _ = attr(fixed[1], "style")
	require.Equal(t, "left:110.5px;width:80px", style)
}

func TestWriter_CellValues(t *testing.T) {
	t.Run("escaped", func(t *testing.T) {
		out, _ := render(t, NewWriter[person](), newPeopleTable(t))
		require.Contains(t, out, `&lt;i&gt;new&lt;/i&gt;`)
	})

	t.Run("nil value", func(t *testing.T) {
		out, _ := render(t, NewWriter[person]().WithNilValue(template.HTML("<em>N/A</em>")), newPeopleTable(t))
		require.Equal(t, 2, strings.Count(out, `<td role="gridcell" data-label="Note"><em>N/A</em></td>`))
	})

	t.Run("raw column sanitized", func(t *testing.T) {
		table := newPeopleTable(t)
		table.Items = []person{{ID: 1, Note: `<b>bold</b><script>alert(1)</script>`}}
		out, _ := render(t, NewWriter[person]().WithRawColumn("note"), table)
		require.Contains(t, out, `<b>bold</b>`)
		require.NotContains(t, out, `<script>`)
	})

	t.Run("raw column without sanitizer", func(t *testing.T) {
		table := newPeopleTable(t)
		table.Items = []person{{ID: 1, Note: `<span onclick="x()">x</span>`}}
		out, _ := render(t, NewWriter[person]().WithRawColumn("note").WithSanitizer(nil), table)
		require.Contains(t, out, `<span onclick="x()">x</span>`)
	})

	t.Run("raw formatter value", func(t *testing.T) {
		table := newPeopleTable(t)
		table.Items = []person{{ID: 1, Note: Raw(`<u>raw</u>`)}}
		out, _ := render(t, NewWriter[person](), table)
		require.Contains(t, out, `<u>raw</u>`)
	})

	t.Run("column cell formatter", func(t *testing.T) {
		table := newPeopleTable(t,
			datatable.Column{Property: "id", Label: "ID", Cell: datatable.PrintfCellFormatter("#%03d")},
		)
		out, _ := render(t, NewWriter[person]().WithColumnFormatter("id", HTMLCodeCellFormatter), table)
		require.Contains(t, out, `>#001</td>`)
		require.NotContains(t, out, `<code>`)
	})

	t.Run("writer column formatter", func(t *testing.T) {
		table := newPeopleTable(t, datatable.Column{Property: "id", Label: "ID"})
		out, _ := render(t, NewWriter[person]().WithColumnFormatter("id", HTMLCodeCellFormatter), table)
		require.Contains(t, out, `<code>1</code>`)
	})

	t.Run("kind formatter", func(t *testing.T) {
		table := newPeopleTable(t, datatable.Column{Property: "id", Label: "ID"})
		out, _ := render(t, NewWriter[person]().WithKindFormatter(reflect.Int, datatable.PrintfCellFormatter("%d.")), table)
		require.Contains(t, out, `>3.</td>`)
	})

	t.Run("truncate title", func(t *testing.T) {
		table := newPeopleTable(t, datatable.Column{Property: "name", Label: "Name", Truncate: true})
		out, _ := render(t, NewWriter[person](), table)
		require.Contains(t, out, `<div class="slds-truncate" title="Alice">Alice</div>`)
	})
}

func TestWriter_TableClassAndCaption(t *testing.T) {
	table := newPeopleTable(t)
	table.Variant = datatable.VariantStriped | datatable.VariantUnborderedRows

	var buf bytes.Buffer
	err := NewWriter[person]().WithTableClass("people").Write(context.Background(), &buf, table, "All", "People")
	require.NoError(t, err)
	require.Contains(t, buf.String(), `class="slds-table slds-table_cell-buffer slds-table_striped people"`)
	require.Contains(t, buf.String(), `<caption>All People</caption>`)
}

func TestWriter_Encoding(t *testing.T) {
	table := newPeopleTable(t, datatable.Column{Property: "name", Label: "Name"})
	table.Items = []person{{ID: 1, Name: "Müller"}}

	var buf bytes.Buffer
	err := NewWriter[person]().WithEncoding("ISO 8859-1").Write(context.Background(), &buf, table)
	require.NoError(t, err)
	require.True(t, bytes.Contains(buf.Bytes(), []byte{'M', 0xFC, 'l', 'l', 'e', 'r'}))

	err = NewWriter[person]().WithEncoding("no-such-encoding").Write(context.Background(), &buf, table)
	require.Error(t, err)
}

func TestWriter_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	err := NewWriter[person]().Write(ctx, &buf, newPeopleTable(t))
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, buf.Len())
}

func TestWriter_Immutable(t *testing.T) {
	w := NewWriter[person]()
	mod := w.WithTableClass("x").WithNilValue("-").WithEncoding("UTF-8").WithColumnFormatter("id", HTMLPreCellFormatter)
	require.Empty(t, w.TableClass())
	require.Empty(t, w.NilValue())
	require.Empty(t, w.Encoding())
	require.Empty(t, w.columnFormatters)
	require.Equal(t, "x", mod.TableClass())
	require.Equal(t, template.HTML("-"), mod.NilValue())
	require.Equal(t, "UTF-8", mod.Encoding())
	require.Len(t, mod.columnFormatters, 1)
}
