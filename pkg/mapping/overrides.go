package mapping

import (
	"fmt"
	"sort"
)

// ExtensionKey is the vendor extension carrying gateway hints.
const ExtensionKey = "x-ambassador"

// Field names an overridable key inside an x-ambassador block.
type Field string

const (
	FieldService   Field = "service"
	FieldNamespace Field = "namespace"
	FieldPrefix    Field = "prefix"
	FieldIgnore    Field = "ignore"
)

// reservedExtraKeys are written on every rendered Mapping spec and are never
// passed through from Extra.
var reservedExtraKeys = map[string]struct{}{
	"prefix":       {},
	"prefix_regex": {},
	"method":       {},
	"service":      {},
}

// IsReservedExtraKey reports whether key collides with a fixed Mapping spec
// key.
func IsReservedExtraKey(key string) bool {
	_, ok := reservedExtraKeys[key]
	return ok
}

// VendorOverrides is the content of an x-ambassador block. The same shape is
// read from the document root and from each operation; Has distinguishes a
// key that is absent from one declared with an empty value.
type VendorOverrides struct {
	Service   string
	Namespace string
	Prefix    string
	Ignore    bool

	// Extra keeps the remaining keys of the block so renderers can pass them
	// through to the gateway resource.
	Extra map[string]any

	declared map[Field]bool
}

// Has reports whether the block declared the field.
func (v VendorOverrides) Has(field Field) bool {
	return v.declared[field]
}

// With returns a copy with field set to value and marked as declared.
func (v VendorOverrides) With(field Field, value string) VendorOverrides {
	declared := make(map[Field]bool, len(v.declared)+1)
	for k, ok := range v.declared {
		declared[k] = ok
	}
	declared[field] = true
	v.declared = declared

	switch field {
	case FieldService:
		v.Service = value
	case FieldNamespace:
		v.Namespace = value
	case FieldPrefix:
		v.Prefix = value
	case FieldIgnore:
		v.Ignore = value == "true"
	}
	return v
}

// OverridesFromExtensions reads the x-ambassador block out of an extension
// map. The boolean is false when the block is missing or is not a mapping.
func OverridesFromExtensions(extensions map[string]any) (VendorOverrides, bool) {
	if len(extensions) == 0 {
		return VendorOverrides{}, false
	}
	raw, ok := extensions[ExtensionKey]
	if !ok {
		return VendorOverrides{}, false
	}
	block, ok := raw.(map[string]any)
	if !ok {
		return VendorOverrides{}, false
	}
	return ParseOverrides(block), true
}

// ParseOverrides converts a decoded x-ambassador mapping. Scalar values are
// stringified; null values count as absent. Only a boolean true sets Ignore.
// Reserved keys are dropped from Extra.
func ParseOverrides(block map[string]any) VendorOverrides {
	var out VendorOverrides
	for key, value := range block {
		switch Field(key) {
		case FieldService, FieldNamespace, FieldPrefix:
			if text, ok := scalarString(value); ok {
				out = out.With(Field(key), text)
			}
		case FieldIgnore:
			if value == nil {
				continue
			}
			out = out.With(FieldIgnore, "false")
			if flag, ok := value.(bool); ok {
				out.Ignore = flag
			}
		default:
			if IsReservedExtraKey(key) {
				continue
			}
			if out.Extra == nil {
				out.Extra = make(map[string]any)
			}
			out.Extra[key] = value
		}
	}
	return out
}

// ExtraKeys lists the pass-through keys in sorted order.
func (v VendorOverrides) ExtraKeys() []string {
	keys := make([]string, 0, len(v.Extra))
	for key := range v.Extra {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func scalarString(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case bool, int, int64, float64, float32:
		return fmt.Sprint(v), true
	default:
		return "", false
	}
}
