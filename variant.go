package datatable

import (
	"fmt"
	"strings"
)

// Variant is a bit set of presentational table variants.
// Apart from VariantFixedHeader, which wraps the table
// in a scroll container, they only change CSS classes.
//
// VariantStacked and VariantStackedHorizontal are mutually exclusive,
// combining them is the caller's responsibility.
type Variant int

const (
	VariantColumnBordered Variant = 1 << iota
	VariantStriped
	VariantUnborderedRows
	VariantStacked
	VariantStackedHorizontal
	VariantNoRowHover
	VariantUnbufferedCell
	VariantFixedHeader
	VariantFixedLayout
)

var variantNames = []struct {
	variant Variant
	name    string
}{
	{VariantColumnBordered, "columnBordered"},
	{VariantStriped, "striped"},
	{VariantUnborderedRows, "unborderedRows"},
	{VariantStacked, "stacked"},
	{VariantStackedHorizontal, "stackedHorizontal"},
	{VariantNoRowHover, "noRowHover"},
	{VariantUnbufferedCell, "unbufferedCell"},
	{VariantFixedHeader, "fixedHeader"},
	{VariantFixedLayout, "fixedLayout"},
}

func (v Variant) Has(variant Variant) bool {
	return v&variant != 0
}

func (v Variant) String() string {
	var b strings.Builder
	for _, n := range variantNames {
		if !v.Has(n.variant) {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("|")
		}
		b.WriteString(n.name)
	}
	if b.Len() == 0 {
		return "no Variant"
	}
	return b.String()
}

// ParseVariant combines the variants with the passed names.
// Names are matched case insensitive and may contain '|' separated lists.
func ParseVariant(names ...string) (Variant, error) {
	var v Variant
	for _, name := range names {
		for _, part := range strings.Split(name, "|") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			found := false
			for _, n := range variantNames {
				if strings.EqualFold(part, n.name) {
					v |= n.variant
					found = true
					break
				}
			}
			if !found {
				return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, part)
			}
		}
	}
	return v, nil
}

// TableClasses returns the CSS classes of the table element.
func (v Variant) TableClasses() []string {
	classes := []string{"slds-table"}
	if v.Has(VariantFixedHeader) {
		classes = append(classes, "slds-table_header-fixed")
	}
	if v.Has(VariantFixedLayout) {
		classes = append(classes, "slds-table_fixed-layout")
	}
	if !v.Has(VariantUnborderedRows) {
		classes = append(classes, "slds-table_bordered")
	}
	if !v.Has(VariantUnbufferedCell) {
		classes = append(classes, "slds-table_cell-buffer")
	}
	if v.Has(VariantStacked) {
		classes = append(classes, "slds-max-medium-table_stacked")
	}
	if v.Has(VariantStackedHorizontal) {
		classes = append(classes, "slds-max-medium-table_stacked-horizontal")
	}
	if v.Has(VariantStriped) {
		classes = append(classes, "slds-table_striped")
	}
	if v.Has(VariantColumnBordered) {
		classes = append(classes, "slds-table_col-bordered")
	}
	if v.Has(VariantNoRowHover) {
		classes = append(classes, "slds-no-row-hover")
	}
	return classes
}
