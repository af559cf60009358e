package datatable

import (
	"fmt"
	"reflect"
	"strings"
)

// FieldNaming defines how item fields are
// addressed by the property keys of columns.
//
// nil is a valid value for *FieldNaming
// and is equal to the zero value
// which addresses all exported struct fields
// by their field name.
type FieldNaming struct {
	// Tag is the struct field tag to be used as property key.
	// If Tag is empty, then every struct field will be treated as untagged.
	Tag string
	// Ignore is the property key that hides a struct field
	Ignore string
	// Untagged will be called with the struct field name to
	// return a property key in case the struct field has no tag named Tag.
	// If Untagged is nil, then the struct field name will be used.
	Untagged func(fieldName string) (property string)
}

// String implements the fmt.Stringer interface for FieldNaming.
func (n *FieldNaming) String() string {
	if n == nil {
		return `FieldNaming{Tag: "", Ignore: ""}`
	}
	return fmt.Sprintf("FieldNaming{Tag: %#v, Ignore: %#v}", n.Tag, n.Ignore)
}

// StructFieldProperty returns the property key for a struct field.
func (n *FieldNaming) StructFieldProperty(structField reflect.StructField) string {
	if n == nil {
		return structField.Name
	}
	if n.Tag != "" {
		if tag, ok := structField.Tag.Lookup(n.Tag); ok {
			if i := strings.IndexByte(tag, ','); i != -1 {
				tag = tag[:i]
			}
			if tag != "" {
				return tag
			}
		}
	}
	if n.Untagged == nil {
		return structField.Name
	}
	return n.Untagged(structField.Name)
}

// IsIgnored returns true if the property key hides a field.
func (n *FieldNaming) IsIgnored(property string) bool {
	return n != nil && n.Ignore != "" && property == n.Ignore
}

// Properties returns the property keys of the exported,
// not ignored fields of a struct item in field order.
// Non struct items have no statically known properties.
func (n *FieldNaming) Properties(item any) []string {
	t := reflect.TypeOf(item)
	if t == nil || derefType(t).Kind() != reflect.Struct {
		return nil
	}
	fields := StructFieldTypes(derefType(t))
	properties := make([]string, 0, len(fields))
	for _, field := range fields {
		property := n.StructFieldProperty(field)
		if n.IsIgnored(property) {
			continue
		}
		properties = append(properties, property)
	}
	return properties
}

// ItemValue returns the value of the field addressed by property.
// Structs are matched by StructFieldProperty and then by field name,
// maps with string keys by key.
// An invalid reflect.Value is returned for
// nil items and properties that address nothing.
func (n *FieldNaming) ItemValue(item reflect.Value, property string) reflect.Value {
	item = derefValue(item)
	if !item.IsValid() || property == "" || n.IsIgnored(property) {
		return reflect.Value{}
	}
	switch item.Kind() {
	case reflect.Struct:
		fields := StructFieldTypes(item.Type())
		values := StructFieldValues(item)
		for i, field := range fields {
			if n.StructFieldProperty(field) == property {
				return values[i]
			}
		}
		for i, field := range fields {
			if field.Name == property {
				return values[i]
			}
		}
	case reflect.Map:
		if item.Type().Key().Kind() != reflect.String {
			return reflect.Value{}
		}
		val := item.MapIndex(reflect.ValueOf(property).Convert(item.Type().Key()))
		if val.IsValid() && val.Kind() == reflect.Interface {
			if val.IsNil() {
				return reflect.Value{}
			}
			val = val.Elem()
		}
		return val
	}
	return reflect.Value{}
}

// ItemID returns the id of an item read from the idProperty field
// formatted with fmt.Sprint, or an empty string if the item has no id.
// Untagged struct fields also match idProperty case insensitively,
// so an ID field is found with the default "id" property.
func (n *FieldNaming) ItemID(item any, idProperty string) string {
	itemVal := reflect.ValueOf(item)
	val := n.ItemValue(itemVal, idProperty)
	if !val.IsValid() {
		val = n.untaggedFieldFold(itemVal, idProperty)
	}
	val = derefValue(val)
	if ValueIsNil(val) || !val.CanInterface() {
		return ""
	}
	return fmt.Sprint(val.Interface())
}

func (n *FieldNaming) untaggedFieldFold(item reflect.Value, property string) reflect.Value {
	item = derefValue(item)
	if !item.IsValid() || item.Kind() != reflect.Struct || property == "" || n.IsIgnored(property) {
		return reflect.Value{}
	}
	fields := StructFieldTypes(item.Type())
	values := StructFieldValues(item)
	for i, field := range fields {
		if n.StructFieldProperty(field) == field.Name && strings.EqualFold(field.Name, property) {
			return values[i]
		}
	}
	return reflect.Value{}
}
