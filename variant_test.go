package datatable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVariant_String(t *testing.T) {
	require.Equal(t, "no Variant", Variant(0).String())
	require.Equal(t, "striped", VariantStriped.String())
	require.Equal(t, "columnBordered|striped|fixedHeader", (VariantFixedHeader | VariantStriped | VariantColumnBordered).String())
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		name    string
		names   []string
		want    Variant
		wantErr bool
	}{
		{name: "none", names: nil, want: 0},
		{name: "empty", names: []string{"", " | "}, want: 0},
		{name: "single", names: []string{"fixedHeader"}, want: VariantFixedHeader},
		{name: "case insensitive", names: []string{"FIXEDLAYOUT"}, want: VariantFixedLayout},
		{name: "list", names: []string{"striped|noRowHover", "unbufferedCell"}, want: VariantStriped | VariantNoRowHover | VariantUnbufferedCell},
		{name: "String result", names: []string{(VariantStacked | VariantUnborderedRows).String()}, want: VariantStacked | VariantUnborderedRows},
		{name: "unknown", names: []string{"striped", "fancy"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVariant(tt.names...)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownVariant)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestVariant_TableClasses(t *testing.T) {
	tests := []struct {
		name    string
		variant Variant
		want    []string
	}{
		{
			name:    "default",
			variant: 0,
			want:    []string{"slds-table", "slds-table_bordered", "slds-table_cell-buffer"},
		},
		{
			name:    "fixed",
			variant: VariantFixedHeader | VariantFixedLayout,
			want:    []string{"slds-table", "slds-table_header-fixed", "slds-table_fixed-layout", "slds-table_bordered", "slds-table_cell-buffer"},
		},
		{
			name:    "presentational",
			variant: VariantUnborderedRows | VariantUnbufferedCell | VariantStriped | VariantColumnBordered | VariantNoRowHover,
			want:    []string{"slds-table", "slds-table_striped", "slds-table_col-bordered", "slds-no-row-hover"},
		},
		{
			name:    "stacked",
			variant: VariantStacked,
			want:    []string{"slds-table", "slds-table_bordered", "slds-table_cell-buffer", "slds-max-medium-table_stacked"},
		},
		{
			name:    "stacked horizontal",
			variant: VariantStackedHorizontal,
			want:    []string{"slds-table", "slds-table_bordered", "slds-table_cell-buffer", "slds-max-medium-table_stacked-horizontal"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.variant.TableClasses())
		})
	}
}
