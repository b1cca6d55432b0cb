// FILE: enlight/src/internal/tags/flatten.go
package tags

import (
	"fmt"

	"enlight/src/internal/core"
)

// Flatten converts nested metadata into dot-joined key/value tags in traversal order.
func Flatten(meta core.Fields, prefix string) []core.Tag {
	return AppendFlatten(nil, meta, prefix)
}

// AppendFlatten appends the flattened tags of meta to dst.
func AppendFlatten(dst []core.Tag, meta core.Fields, prefix string) []core.Tag {
	return flatten(dst, meta, prefix, 0)
}

func flatten(dst []core.Tag, meta core.Fields, prefix string, depth int) []core.Tag {
	for _, field := range meta {
		key := field.Key
		if prefix != "" {
			key = prefix + "." + key
		}

		if field.Value.IsMap() {
			if depth >= core.MaxFlattenDepth {
				dst = append(dst, core.NewTag(key, core.MaxDepthMarker))
				continue
			}
			dst = flatten(dst, field.Value.Fields(), key, depth+1)
			continue
		}

		dst = append(dst, core.NewTag(key, Format(field.Value)))
	}
	return dst
}

// Format renders a leaf value as tag text.
func Format(v core.Value) string {
	switch v.Kind() {
	case core.KindError:
		if v.Err() == nil {
			return "null"
		}
		return v.Err().Error()
	case core.KindMap:
		return fmt.Sprint(v.Fields())
	}

	switch s := v.Scalar().(type) {
	case nil:
		return "null"
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}
