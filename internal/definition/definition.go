// Package definition loads data table definitions
// from YAML, TOML or JSON files.
package definition

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/domonda/go-datatable"
	"github.com/domonda/go-datatable/htmltable"
)

// Item is the row type of tables loaded from definitions.
type Item = map[string]any

// Format of a definition file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatOf returns the format of a file by its extension.
func FormatOf(filename string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported definition file extension %q", ext)
	}
}

// Definition declares a data table with its items.
type Definition struct {
	ID      string `json:"id"                yaml:"id"                toml:"id"`
	Caption string `json:"caption,omitempty" yaml:"caption,omitempty" toml:"caption,omitempty"`
	// SelectRows is a mode name like "checkbox" or "radio"
	// or a boolean where true means checkbox
	SelectRows    any                     `json:"selectRows,omitempty"    yaml:"selectRows,omitempty"    toml:"selectRows,omitempty"`
	Variants      []string                `json:"variants,omitempty"      yaml:"variants,omitempty"      toml:"variants,omitempty"`
	IDProperty    string                  `json:"idProperty,omitempty"    yaml:"idProperty,omitempty"    toml:"idProperty,omitempty"`
	AssistiveText datatable.AssistiveText `json:"assistiveText,omitempty" yaml:"assistiveText,omitempty" toml:"assistiveText,omitempty"`
	Columns       []Column                `json:"columns"                 yaml:"columns"                 toml:"columns"`
	RowActions    *RowActions             `json:"rowActions,omitempty"    yaml:"rowActions,omitempty"    toml:"rowActions,omitempty"`
	Items         []Item                  `json:"items"                   yaml:"items"                   toml:"items"`
	// Selection holds the ids of the selected items
	Selection []string `json:"selection,omitempty" yaml:"selection,omitempty" toml:"selection,omitempty"`
}

// Column declares a table column.
type Column struct {
	Property              string `json:"property"                        yaml:"property"                        toml:"property"`
	Label                 string `json:"label,omitempty"                 yaml:"label,omitempty"                 toml:"label,omitempty"`
	Title                 string `json:"title,omitempty"                 yaml:"title,omitempty"                 toml:"title,omitempty"`
	Sortable              bool   `json:"sortable,omitempty"              yaml:"sortable,omitempty"              toml:"sortable,omitempty"`
	Sort                  string `json:"sort,omitempty"                  yaml:"sort,omitempty"                  toml:"sort,omitempty"`
	DefaultSortDescending bool   `json:"defaultSortDescending,omitempty" yaml:"defaultSortDescending,omitempty" toml:"defaultSortDescending,omitempty"`
	Width                 string `json:"width,omitempty"                 yaml:"width,omitempty"                 toml:"width,omitempty"`
	Truncate              bool   `json:"truncate,omitempty"              yaml:"truncate,omitempty"              toml:"truncate,omitempty"`
	Primary               bool   `json:"primary,omitempty"               yaml:"primary,omitempty"               toml:"primary,omitempty"`
	// Format is a fmt.Sprintf format for the cell values
	Format string `json:"format,omitempty" yaml:"format,omitempty" toml:"format,omitempty"`
	// Formatter names an HTML cell formatter,
	// see Formatters for the available names
	Formatter string `json:"formatter,omitempty" yaml:"formatter,omitempty" toml:"formatter,omitempty"`
	// Class is the CSS class of the "span-class" formatter
	Class string `json:"class,omitempty" yaml:"class,omitempty" toml:"class,omitempty"`
}

// RowActions declares the row actions menu.
type RowActions struct {
	Options       []datatable.RowAction `json:"options"                 yaml:"options"                 toml:"options"`
	AssistiveText string                `json:"assistiveText,omitempty" yaml:"assistiveText,omitempty" toml:"assistiveText,omitempty"`
	DropdownAlign string                `json:"dropdownAlign,omitempty" yaml:"dropdownAlign,omitempty" toml:"dropdownAlign,omitempty"`
}

// Formatters are the cell formatters that can
// be referenced by Column.Formatter.
var Formatters = map[string]datatable.CellFormatter{
	"pre":    htmltable.HTMLPreCellFormatter,
	"code":   htmltable.HTMLCodeCellFormatter,
	"json":   htmltable.JSONCellFormatter("  "),
	"anchor": htmltable.ValueAsHTMLAnchorCellFormatter,
	"html":   datatable.SprintCellFormatter(true),
}

// Load reads a definition file in the format of its extension.
func Load(filename string) (*Definition, error) {
	format, err := FormatOf(filename)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filename) //#nosec G304
	if err != nil {
		return nil, err
	}
	def, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	return def, nil
}

// Parse decodes a definition in the passed format.
func Parse(data []byte, format Format) (*Definition, error) {
	def := new(Definition)
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, def)
	case FormatTOML:
		err = toml.Unmarshal(data, def)
	case FormatJSON:
		err = parseJSON(data, def)
	default:
		return nil, fmt.Errorf("unsupported definition format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return def, nil
}

// parseJSON decodes numbers as json.Number so that
// integer item ids keep their decimal representation.
func parseJSON(data []byte, def *Definition) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	err := dec.Decode(def)
	if err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON definition")
	}
	return nil
}

// CellFormatter returns the formatter declared by the column
// or nil if the column uses the default formatting.
func (c *Column) CellFormatter() (datatable.CellFormatter, error) {
	switch {
	case c.Format != "" && c.Formatter != "":
		return nil, fmt.Errorf("column %q declares format and formatter", c.Property)
	case c.Format != "":
		return datatable.PrintfCellFormatter(c.Format), nil
	case c.Formatter == "":
		return nil, nil
	case c.Formatter == "span-class":
		if c.Class == "" {
			return nil, fmt.Errorf("column %q formatter span-class needs a class", c.Property)
		}
		return htmltable.HTMLSpanClassCellFormatter(c.Class), nil
	}
	formatter, ok := Formatters[c.Formatter]
	if !ok {
		return nil, fmt.Errorf("column %q has unknown formatter %q", c.Property, c.Formatter)
	}
	return formatter, nil
}

// Column returns the datatable.Column declared by c.
func (c *Column) Column() (datatable.Column, error) {
	if c.Property == "" {
		return datatable.Column{}, fmt.Errorf("column without property")
	}
	sort, err := datatable.ParseSortDirection(c.Sort)
	if err != nil {
		return datatable.Column{}, fmt.Errorf("column %q: %w", c.Property, err)
	}
	formatter, err := c.CellFormatter()
	if err != nil {
		return datatable.Column{}, err
	}
	return datatable.Column{
		Property:              c.Property,
		Label:                 c.Label,
		Title:                 c.Title,
		Sortable:              c.Sortable,
		SortDirection:         sort,
		DefaultSortDescending: c.DefaultSortDescending,
		Width:                 c.Width,
		Truncate:              c.Truncate,
		Primary:               c.Primary,
		Cell:                  formatter,
	}, nil
}

// Table returns the table declared by the definition.
// Every id of Selection must identify an item.
func (d *Definition) Table() (*datatable.Table[Item], error) {
	descriptors := make([]datatable.Descriptor, 0, len(d.Columns)+1)
	for i := range d.Columns {
		column, err := d.Columns[i].Column()
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, column)
	}
	if d.RowActions != nil {
		descriptors = append(descriptors, datatable.RowActions{
			Options:       d.RowActions.Options,
			AssistiveText: d.RowActions.AssistiveText,
			DropdownAlign: d.RowActions.DropdownAlign,
		})
	}
	table, err := datatable.NewTable(d.ID, d.Items, descriptors...)
	if err != nil {
		return nil, err
	}

	table.SelectRows, err = datatable.ParseSelectRows(d.SelectRows)
	if err != nil {
		return nil, err
	}
	table.Variant, err = datatable.ParseVariant(d.Variants...)
	if err != nil {
		return nil, err
	}
	table.IDProperty = d.IDProperty
	table.AssistiveText = d.AssistiveText

	for _, id := range d.Selection {
		item, ok := table.FindItem(id)
		if !ok {
			return nil, fmt.Errorf("selected item %q not found", id)
		}
		table.Selection = append(table.Selection, item)
	}
	return table, nil
}
