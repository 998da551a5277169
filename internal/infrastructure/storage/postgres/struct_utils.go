package postgres

import (
	"reflect"
	"sync"
)

// ExtractDBColumns returns the column names from the "db" tags of T, in field
// order. Embedded structs are walked recursively.
//
//	columns := ExtractDBColumns[BatchRow]()
//	// ["name", "batch_id", "item"]
func ExtractDBColumns[T any]() []string {
	var zero T
	meta := typeMetadataFor(reflect.TypeOf(zero))
	cols := make([]string, len(meta.fields))
	for i, f := range meta.fields {
		cols[i] = f.column
	}
	return cols
}

// fieldInfo locates one tagged field, possibly inside embedded structs.
type fieldInfo struct {
	index  []int
	column string
}

type typeMetadata struct {
	fields []fieldInfo
}

// typeCache holds *typeMetadata per reflect.Type.
var typeCache sync.Map

func typeMetadataFor(t reflect.Type) *typeMetadata {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if cached, ok := typeCache.Load(t); ok {
		return cached.(*typeMetadata)
	}

	meta := &typeMetadata{}
	if t.Kind() == reflect.Struct {
		meta.fields = collectFields(t, nil)
	}
	typeCache.Store(t, meta)
	return meta
}

func collectFields(t reflect.Type, prefix []int) []fieldInfo {
	var fields []fieldInfo
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		index := append(append([]int(nil), prefix...), i)

		if f.Anonymous {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				fields = append(fields, collectFields(ft, index)...)
			}
			continue
		}

		tag := f.Tag.Get("db")
		if tag == "" || tag == "-" || !f.IsExported() {
			continue
		}
		fields = append(fields, fieldInfo{index: index, column: tag})
	}
	return fields
}

// StructToMap converts a struct to a column → value map using "db" tags.
// Returns nil for non-struct values.
func StructToMap(v any) map[string]any {
	rv, meta, ok := structValue(v)
	if !ok {
		return nil
	}
	res := make(map[string]any, len(meta.fields))
	for _, f := range meta.fields {
		res[f.column] = rv.FieldByIndex(f.index).Interface()
	}
	return res
}

// StructValues returns the tagged field values of v in ExtractDBColumns order.
func StructValues(v any) []any {
	rv, meta, ok := structValue(v)
	if !ok {
		return nil
	}
	res := make([]any, len(meta.fields))
	for i, f := range meta.fields {
		res[i] = rv.FieldByIndex(f.index).Interface()
	}
	return res
}

func structValue(v any) (reflect.Value, *typeMetadata, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, nil, false
	}
	return rv, typeMetadataFor(rv.Type()), true
}
