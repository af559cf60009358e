package htmltable

import (
	"html/template"

	"github.com/domonda/go-datatable"
)

var (
	HeaderTemplate = template.Must(template.New("header").Parse("" +
		"{{if .FixedHeader}}<div class=\"slds-table_header-fixed_container\">\n" +
		"<div class=\"slds-table_header-fixed_scroller\" data-fixed-header-scroller>\n{{end}}" +
		"<table{{if .TableID}} id=\"{{.TableID}}\"{{end}} class=\"{{.TableClass}}\" role=\"grid\">\n" +
		"{{if .Caption}}  <caption>{{.Caption}}</caption>\n{{end}}" +
		"  <thead>\n" +
		"    <tr class=\"slds-line-height_reset\">\n" +
		"{{if .SelectRows}}      <th class=\"slds-text-align_right\" scope=\"col\" style=\"width:3.25rem\">" +
		"{{with .SelectAll}}<div class=\"slds-th__action slds-th__action_form\">" +
		"<input type=\"checkbox\" id=\"{{.ID}}\" aria-label=\"{{.Label}}\"" +
		"{{if .Checked}} checked{{end}}{{if .Indeterminate}} data-indeterminate{{end}}></div>{{end}}" +
		"</th>\n{{end}}" +
		"{{range .HeadCells}}      <th" +
		"{{if .Sortable}} class=\"slds-is-sortable{{if .SortDirection}} slds-is-sorted slds-is-sorted_{{.SortDirection}}{{end}}\"{{end}}" +
		" scope=\"col\" aria-label=\"{{.Label}}\"" +
		"{{if .Sortable}} aria-sort=\"{{.AriaSort}}\"{{end}}" +
		"{{with .Width}} style=\"width:{{.}}\"{{end}}>" +
		"{{if $.FixedHeader}}<div class=\"slds-cell-fixed\"{{with .Fixed}} style=\"left:{{.Left}}px;width:{{.Width}}px\"{{end}}>{{end}}" +
		"{{if .Sortable}}<a href=\"#\" class=\"slds-th__action slds-text-link_reset\" role=\"button\" data-sort-property=\"{{.Property}}\" data-sort-direction=\"{{.NextSortDirection}}\">" +
		"<span class=\"slds-assistive-text\">{{.SortLabel}}</span>" +
		"<span class=\"slds-truncate\" title=\"{{.Title}}\">{{.Label}}</span>" +
		"{{with .SortedText}}<span class=\"slds-assistive-text\" aria-live=\"assertive\">{{.}}</span>{{end}}</a>" +
		"{{else}}<div class=\"slds-truncate\" title=\"{{.Title}}\">{{.Label}}</div>{{end}}" +
		"{{if $.FixedHeader}}</div>{{end}}</th>\n{{end}}" +
		"{{with .ActionsHeader}}      <th class=\"slds-cell-shrink\" scope=\"col\" style=\"width:3.25rem\">" +
		"<div class=\"slds-th__action\"><span class=\"slds-assistive-text\">{{.}}</span></div></th>\n{{end}}" +
		"    </tr>\n" +
		"  </thead>\n" +
		"  <tbody>\n",
	))

	RowTemplate = template.Must(template.New("row").Parse("" +
		"    <tr id=\"{{.Key}}\" class=\"slds-hint-parent{{if .Selected}} slds-is-selected{{end}}\"" +
		"{{if .SelectRows}} aria-selected=\"{{if .Selected}}true{{else}}false{{end}}\"{{end}}>\n" +
		"{{if .SelectRows}}      <td role=\"gridcell\" class=\"slds-text-align_right\" style=\"width:3.25rem\">" +
		"<input type=\"{{.SelectRows}}\" id=\"{{.Key}}-select\" name=\"{{.SelectName}}\" value=\"{{.ItemID}}\" aria-label=\"{{.SelectLabel}}\"" +
		"{{if .Selected}} checked{{end}}></td>\n{{end}}" +
		"{{range .Cells}}{{if .Primary}}      <th scope=\"row\" data-label=\"{{.Label}}\">" +
		"{{else}}      <td role=\"gridcell\" data-label=\"{{.Label}}\">{{end}}" +
		"{{if .Truncate}}<div class=\"slds-truncate\"{{with .Title}} title=\"{{.}}\"{{end}}>{{.HTML}}</div>{{else}}{{.HTML}}{{end}}" +
		"{{if .Primary}}</th>\n{{else}}</td>\n{{end}}{{end}}" +
		"{{with .RowActions}}      <td role=\"gridcell\" style=\"width:3.25rem\">" +
		"<div class=\"slds-dropdown-trigger slds-dropdown-trigger_click\">" +
		"<button type=\"button\" class=\"slds-button slds-button_icon-border-filled slds-button_icon-x-small\" aria-haspopup=\"true\" title=\"{{.Label}}\">" +
		"<span class=\"slds-assistive-text\">{{.Label}}</span></button>" +
		"<div class=\"slds-dropdown slds-dropdown_{{.Align}}\"><ul class=\"slds-dropdown__list\" role=\"menu\">" +
		"{{range .Options}}<li class=\"slds-dropdown__item\" role=\"presentation\">" +
		"<a href=\"#\" role=\"menuitem\" data-row-action=\"{{.Value}}\"{{if .Disabled}} aria-disabled=\"true\"{{end}}>" +
		"<span class=\"slds-truncate\" title=\"{{.Label}}\">{{.Label}}</span></a></li>{{end}}" +
		"</ul></div></div></td>\n{{end}}" +
		"    </tr>\n",
	))

	FooterTemplate = template.Must(template.New("footer").Parse("" +
		"  </tbody>\n" +
		"</table>" +
		"{{if .FixedHeader}}\n</div>\n</div>{{end}}",
	))
)

type TemplateContext struct {
	TableID     string
	TableClass  string
	Caption     string
	FixedHeader bool
	// SelectRows is the input type of the selection controls,
	// empty if row selection is disabled
	SelectRows    string
	SelectAll     *SelectAllContext
	HeadCells     []HeadCellContext
	ActionsHeader string
}

// SelectAllContext is the select-all checkbox of the table head.
type SelectAllContext struct {
	ID            string
	Label         string
	Checked       bool
	Indeterminate bool
}

type HeadCellContext struct {
	Property          string
	Label             string
	Title             string
	Width             string
	Sortable          bool
	SortDirection     datatable.SortDirection
	NextSortDirection datatable.SortDirection
	AriaSort          string
	SortLabel         string
	SortedText        string
	Fixed             *FixedCellContext
}

// FixedCellContext holds the formatted pixel position
// of a fixed header cell.
type FixedCellContext struct {
	Left  string
	Width string
}

type RowTemplateContext struct {
	TemplateContext

	RowIndex    int
	Key         string
	ItemID      string
	Selected    bool
	SelectName  string
	SelectLabel string
	Cells       []CellContext
	RowActions  *RowActionsContext
}

type CellContext struct {
	Label    string
	Title    string
	Primary  bool
	Truncate bool
	HTML     template.HTML
}

type RowActionsContext struct {
	Label   string
	Align   string
	Options []datatable.RowAction
}
