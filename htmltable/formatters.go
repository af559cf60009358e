package htmltable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"reflect"

	"github.com/domonda/go-datatable"
)

var (
	HTMLPreCellFormatter datatable.CellFormatterFunc = func(ctx context.Context, cell *datatable.Cell) (str string, raw bool, err error) {
		value := template.HTMLEscapeString(cellText(cell))
		return "<pre>" + value + "</pre>", true, nil
	}

	HTMLCodeCellFormatter datatable.CellFormatterFunc = func(ctx context.Context, cell *datatable.Cell) (str string, raw bool, err error) {
		value := template.HTMLEscapeString(cellText(cell))
		return "<code>" + value + "</code>", true, nil
	}

	// ValueAsHTMLAnchorCellFormatter formats the cell value using fmt.Sprint,
	// escapes it for HTML and returns an HTML anchor element with the
	// value as id and inner text.
	ValueAsHTMLAnchorCellFormatter datatable.CellFormatterFunc = func(ctx context.Context, cell *datatable.Cell) (str string, raw bool, err error) {
		value := template.HTMLEscapeString(cellText(cell))
		return fmt.Sprintf("<a id='%[1]s'>%[1]s</a>", value), true, nil
	}

	_ datatable.CellFormatter = JSONCellFormatter("")
	_ datatable.CellFormatter = HTMLSpanClassCellFormatter("")
)

// JSONCellFormatter formats the cell value as indented JSON
// within a pre element, using the underlying string as indent.
// An empty indent formats compact JSON.
// Strings and byte slices are interpreted as JSON text,
// other values are marshalled.
// Missing values and empty JSON text result in an empty string.
type JSONCellFormatter string

func (indent JSONCellFormatter) FormatCell(ctx context.Context, cell *datatable.Cell) (str string, raw bool, err error) {
	if !cell.Value.IsValid() || !cell.Value.CanInterface() {
		return "", false, nil
	}
	var src []byte
	switch v := cell.Value.Interface().(type) {
	case json.RawMessage:
		src = v
	case []byte:
		src = v
	case string:
		src = []byte(v)
	default:
		if cell.Value.Kind() == reflect.String {
			src = []byte(cell.Value.String())
			break
		}
		src, err = json.Marshal(v)
		if err != nil {
			return "", false, err
		}
	}
	if len(src) == 0 {
		return "", false, nil
	}
	buf := bytes.NewBufferString("<pre>")
	if indent == "" {
		err = json.Compact(buf, src)
	} else {
		err = json.Indent(buf, src, "", string(indent))
	}
	if err != nil {
		return "", false, err
	}
	buf.WriteString("</pre>")
	return buf.String(), true, nil
}

// HTMLSpanClassCellFormatter formats the cell value within an HTML span element
// with the class of the underlying string value.
type HTMLSpanClassCellFormatter string

func (class HTMLSpanClassCellFormatter) FormatCell(ctx context.Context, cell *datatable.Cell) (str string, raw bool, err error) {
	text := template.HTMLEscapeString(cellText(cell))
	return fmt.Sprintf("<span class='%s'>%s</span>", template.HTMLEscapeString(string(class)), text), true, nil
}

func cellText(cell *datatable.Cell) string {
	str, _, _ := datatable.SprintCellFormatter(false).FormatCell(context.Background(), cell)
	return str
}
