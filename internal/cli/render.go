package cli

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/domonda/go-datatable"
	"github.com/domonda/go-datatable/csvtable"
	"github.com/domonda/go-datatable/htmltable"
	"github.com/domonda/go-datatable/internal/definition"
)

type renderOptions struct {
	definitionFile string
	clear          bool
	selectAll      bool
	selectIDs      []string
	deselectIDs    []string
	sort           []string
	actions        []string
	cellWidths     []float64
	out            string
	format         string
	separator      string
	encoding       string
	tableClass     string
	nilValue       string
}

func newRenderCmd() *cobra.Command {
	var opts renderOptions
	cmd := &cobra.Command{
		Use:   "render DEFINITION",
		Short: "Render a table definition file as HTML or CSV",
		Long: "Render a YAML, TOML or JSON table definition file as HTML or CSV.\n" +
			"Selection, sort and row action events are applied in the order\n" +
			"clear, select-all, select, deselect, sort, action before rendering.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.definitionFile = args[0]
			return runRender(cmd.Context(), slog.Default(), opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().SortFlags = false
	cmd.Flags().BoolVar(&opts.clear, "clear", false, "clear the selection")
	cmd.Flags().BoolVar(&opts.selectAll, "select-all", false, "select all rows")
	cmd.Flags().StringSliceVar(&opts.selectIDs, "select", nil, "select the rows of these item ids (comma-separated)")
	cmd.Flags().StringSliceVar(&opts.deselectIDs, "deselect", nil, "deselect the rows of these item ids (comma-separated)")
	cmd.Flags().StringArrayVar(&opts.sort, "sort", nil, "activate the header of the sortable column with this property, repeatable")
	cmd.Flags().StringArrayVar(&opts.actions, "action", nil, `choose the row action "ID=VALUE", repeatable`)
	cmd.Flags().Float64SliceVar(&opts.cellWidths, "cell-widths", nil, "pixel widths of the columns to pre-position fixed header cells")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "write the output atomically to this file instead of stdout")
	cmd.Flags().StringVar(&opts.format, "format", "html", `output format "html" or "csv"`)
	cmd.Flags().StringVar(&opts.separator, "separator", ";", "field separator of CSV output")
	cmd.Flags().StringVar(&opts.encoding, "encoding", "", `charset encoding of the output like "ISO 8859-1"`)
	cmd.Flags().StringVar(&opts.tableClass, "table-class", "", "additional CSS class of the HTML table element")
	cmd.Flags().StringVar(&opts.nilValue, "nil-value", "", "text or HTML rendered for missing values")
	return cmd
}

func runRender(ctx context.Context, log *slog.Logger, opts renderOptions, stdout io.Writer) error {
	if opts.format != "html" && opts.format != "csv" {
		return fmt.Errorf("invalid output format %q", opts.format)
	}
	def, err := definition.Load(opts.definitionFile)
	if err != nil {
		return err
	}
	table, err := def.Table()
	if err != nil {
		return err
	}
	log = log.With("table", table.ID)

	// The command owns the table state and
	// applies the changes proposed by the table.
	table.Handlers = datatable.Handlers[definition.Item]{
		OnRowChange: func(ev datatable.Event, change datatable.SelectionChange[definition.Item]) {
			log.Info("selection changed", "event", ev.Type, "target", ev.Target, "selected", len(change.Selection))
			table.Selection = change.Selection
		},
		OnSort: func(ev datatable.Event, sort datatable.SortInfo) {
			log.Info("sort", "event", ev.Type, "property", sort.Property, "direction", sort.SortDirection)
			for i := range table.Columns {
				if table.Columns[i].Property == sort.Property {
					table.Columns[i].SortDirection = sort.SortDirection
				} else {
					table.Columns[i].SortDirection = datatable.SortNone
				}
			}
		},
		OnRowAction: func(ev datatable.Event, item definition.Item, action datatable.RowAction) {
			log.Info("row action", "event", ev.Type, "target", ev.Target, "action", action.Value)
		},
	}

	err = applyEvents(table, opts)
	if err != nil {
		return err
	}

	for _, column := range table.Columns {
		if column.IsSorted() {
			sort := datatable.SortInfo{Property: column.Property, SortDirection: column.SortDirection}
			table.Items = datatable.SortItems(table.Items, sort, table.FieldNaming)
			log.Debug("sorted items", "property", sort.Property, "direction", sort.SortDirection)
			break
		}
	}

	var buf bytes.Buffer
	if opts.format == "csv" {
		err = writeCSV(ctx, &buf, table, opts)
	} else {
		err = writeHTML(ctx, log, &buf, table, def.Caption, opts)
	}
	if err != nil {
		return err
	}
	if opts.out == "" {
		_, err = stdout.Write(buf.Bytes())
		return err
	}
	err = atomic.WriteFile(opts.out, &buf)
	if err != nil {
		return err
	}
	log.Info("wrote table", "file", opts.out, "rows", len(table.Items))
	return nil
}

func writeCSV(ctx context.Context, dest io.Writer, table *datatable.Table[definition.Item], opts renderOptions) error {
	format := csvtable.NewFormat(opts.separator)
	if opts.encoding != "" {
		format.Encoding = opts.encoding
	}
	writer, err := csvtable.NewWriter[definition.Item]().
		WithNilValue(opts.nilValue).
		WithFormat(format)
	if err != nil {
		return err
	}
	return writer.Write(ctx, dest, table)
}

func writeHTML(ctx context.Context, log *slog.Logger, dest io.Writer, table *datatable.Table[definition.Item], caption string, opts renderOptions) error {
	writer := htmltable.NewWriter[definition.Item]().
		WithTableClass(opts.tableClass).
		WithNilValue(template.HTML(opts.nilValue)). //#nosec G203
		WithEncoding(opts.encoding)

	if len(opts.cellWidths) > 0 {
		viewport := &columnViewport{widths: opts.cellWidths}
		if table.SelectRows.Enabled() {
			viewport.offset = selectColumnWidth
		}
		fixed := table.NewFixedHeader(viewport)
		fixed.OnResize = func(positions []datatable.CellPosition, _ datatable.Viewport) {
			writer = writer.WithFixedCellPositions(positions)
		}
		fixed.Mount()
		fixed.Unmount()
		if !fixed.Active {
			log.Warn("cell widths ignored without fixedHeader variant")
		}
	}

	return writer.Write(ctx, dest, table, caption)
}

func applyEvents(table *datatable.Table[definition.Item], opts renderOptions) error {
	if (opts.clear || opts.selectAll || len(opts.selectIDs) > 0 || len(opts.deselectIDs) > 0) && !table.SelectRows.Enabled() {
		return fmt.Errorf("table %q has no row selection", table.ID)
	}
	if opts.clear {
		table.ToggleAll(datatable.Event{Type: datatable.EventSelectAll}, false)
	}
	if opts.selectAll {
		if table.SelectRows != datatable.SelectRowsCheckbox {
			return fmt.Errorf("table %q has no select-all control", table.ID)
		}
		table.ToggleAll(datatable.Event{Type: datatable.EventSelectAll}, true)
	}
	for _, id := range opts.selectIDs {
		if err := toggleRow(table, id, true); err != nil {
			return err
		}
	}
	for _, id := range opts.deselectIDs {
		if err := toggleRow(table, id, false); err != nil {
			return err
		}
	}
	for _, property := range opts.sort {
		_, ok := table.Sort(datatable.Event{Type: datatable.EventSort, Target: property}, property)
		if !ok {
			return fmt.Errorf("table %q has no sortable column %q", table.ID, property)
		}
	}
	for _, action := range opts.actions {
		id, value, ok := strings.Cut(action, "=")
		if !ok {
			return fmt.Errorf("invalid row action %q, expected ID=VALUE", action)
		}
		item, ok := table.FindItem(id)
		if !ok {
			return fmt.Errorf("table %q has no item %q", table.ID, id)
		}
		_, ok = table.Action(datatable.Event{Type: datatable.EventRowAction, Target: table.RowKey(item)}, item, value)
		if !ok {
			return fmt.Errorf("table %q has no enabled row action %q", table.ID, value)
		}
	}
	return nil
}

func toggleRow(table *datatable.Table[definition.Item], id string, selected bool) error {
	item, ok := table.FindItem(id)
	if !ok {
		return fmt.Errorf("table %q has no item %q", table.ID, id)
	}
	table.ToggleRow(datatable.Event{Type: datatable.EventSelectRow, Target: table.RowKey(item)}, item, selected)
	return nil
}
