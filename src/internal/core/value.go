// FILE: enlight/src/internal/core/value.go
package core

import (
	"reflect"
	"sort"
	"strconv"
)

// Kind discriminates the variants of a metadata Value.
type Kind uint8

const (
	KindScalar Kind = iota
	KindMap
	KindError
)

// MaxDepthMarker replaces metadata nested deeper than MaxFlattenDepth.
const MaxDepthMarker = "[max depth]"

// Value is one node of log call metadata: a scalar, an ordered mapping, or an error.
type Value struct {
	kind   Kind
	scalar any
	fields Fields
	err    error
}

// Field is a keyed metadata value.
type Field struct {
	Key   string
	Value Value
}

// Fields is an ordered metadata mapping. Order is insertion order.
type Fields []Field

// Scalar wraps a leaf value.
func Scalar(v any) Value {
	return Value{kind: KindScalar, scalar: v}
}

// Map wraps an ordered mapping.
func Map(fields ...Field) Value {
	return Value{kind: KindMap, fields: fields}
}

// Error wraps an error value.
func Error(err error) Value {
	return Value{kind: KindError, err: err}
}

// F builds a field, converting v with Any.
func F(key string, v any) Field {
	return Field{Key: key, Value: Any(v)}
}

func (v Value) Kind() Kind     { return v.kind }
func (v Value) Scalar() any    { return v.scalar }
func (v Value) Fields() Fields { return v.fields }
func (v Value) Err() error     { return v.err }
func (v Value) IsZero() bool   { return v.kind == KindScalar && v.scalar == nil }
func (v Value) IsMap() bool    { return v.kind == KindMap }
func (v Value) IsError() bool  { return v.kind == KindError && v.err != nil }

// Get returns the first field named key.
func (f Fields) Get(key string) (Value, bool) {
	for _, field := range f {
		if field.Key == key {
			return field.Value, true
		}
	}
	return Value{}, false
}

// Lookup walks a path of keys through nested mappings.
func (v Value) Lookup(path ...string) (Value, bool) {
	cur := v
	for _, key := range path {
		if cur.kind != KindMap {
			return Value{}, false
		}
		next, ok := cur.fields.Get(key)
		if !ok {
			return Value{}, false
		}
		cur = next
	}
	return cur, true
}

// Any converts a Go value into a metadata Value.
// Maps with string keys become mappings in sorted key order, slices become
// mappings keyed by index, errors stay errors and everything else is a scalar.
func Any(v any) Value {
	return anyDepth(v, 0)
}

func anyDepth(v any, depth int) Value {
	if depth > MaxFlattenDepth {
		return Scalar(MaxDepthMarker)
	}

	switch val := v.(type) {
	case Value:
		return val
	case Fields:
		return Map(val...)
	case Field:
		return Map(val)
	case error:
		return Error(val)
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make(Fields, 0, len(val))
		for _, k := range keys {
			fields = append(fields, Field{Key: k, Value: anyDepth(val[k], depth+1)})
		}
		return Map(fields...)
	case map[string]string:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make(Fields, 0, len(val))
		for _, k := range keys {
			fields = append(fields, Field{Key: k, Value: Scalar(val[k])})
		}
		return Map(fields...)
	case []any:
		fields := make(Fields, 0, len(val))
		for i, item := range val {
			fields = append(fields, Field{Key: strconv.Itoa(i), Value: anyDepth(item, depth+1)})
		}
		return Map(fields...)
	case []string:
		fields := make(Fields, 0, len(val))
		for i, item := range val {
			fields = append(fields, Field{Key: strconv.Itoa(i), Value: Scalar(item)})
		}
		return Map(fields...)
	default:
		return reflectValue(v, depth)
	}
}

// reflectValue maps typed maps with string keys and slices or arrays onto ordered
// fields. Byte slices and every other kind stay scalars.
func reflectValue(v any, depth int) Value {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Scalar(v)
		}
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		fields := make(Fields, 0, len(keys))
		for _, k := range keys {
			fields = append(fields, Field{Key: k.String(), Value: anyDepth(rv.MapIndex(k).Interface(), depth+1)})
		}
		return Map(fields...)
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return Scalar(v)
		}
		fields := make(Fields, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			fields = append(fields, Field{Key: strconv.Itoa(i), Value: anyDepth(rv.Index(i).Interface(), depth+1)})
		}
		return Map(fields...)
	default:
		return Scalar(v)
	}
}
