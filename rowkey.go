package datatable

import "github.com/google/uuid"

// RowKey returns the identity key of a table row.
// It is "{tableID}-row-{itemID}" if both are not empty.
// Otherwise a new random UUID is returned,
// so rows of items without id have no stable identity
// across renderings.
func RowKey(tableID, itemID string) string {
	if tableID == "" || itemID == "" {
		return uuid.NewString()
	}
	return tableID + "-row-" + itemID
}
