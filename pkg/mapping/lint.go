package mapping

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-gatewaygen/pkg/openapi"
)

// Violation describes a malformed x-ambassador block.
type Violation struct {
	Location string
	Message  string
}

func (v Violation) String() string {
	return v.Location + ": " + v.Message
}

// Lint checks the root and per-operation x-ambassador blocks for values the
// transformer would silently discard: non-mapping blocks, non-string
// service/namespace/prefix, non-boolean ignore flags and reserved keys.
// Null values count as absent and are not reported.
func Lint(spec openapi.Spec) []Violation {
	var out []Violation
	out = append(out, lintBlock("root", spec.Extensions)...)
	for _, op := range spec.Operations {
		out = append(out, lintBlock(fmt.Sprintf("%s %s (%s)", op.Method, op.Path, op.ID), op.Extensions)...)
	}
	return out
}

func lintBlock(location string, extensions map[string]any) []Violation {
	raw, ok := extensions[ExtensionKey]
	if !ok {
		return nil
	}
	block, ok := raw.(map[string]any)
	if !ok {
		return []Violation{{Location: location, Message: fmt.Sprintf("%s must be a mapping, got %T", ExtensionKey, raw)}}
	}

	keys := make([]string, 0, len(block))
	for key := range block {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var out []Violation
	for _, key := range keys {
		value := block[key]
		if value == nil {
			continue
		}
		switch Field(key) {
		case FieldService, FieldNamespace, FieldPrefix:
			if _, ok := value.(string); !ok {
				out = append(out, Violation{Location: location, Message: fmt.Sprintf("%s.%s must be a string, got %T", ExtensionKey, key, value)})
			}
		case FieldIgnore:
			if _, ok := value.(bool); !ok {
				out = append(out, Violation{Location: location, Message: fmt.Sprintf("%s.%s must be a boolean, got %T", ExtensionKey, key, value)})
			}
		default:
			if IsReservedExtraKey(key) {
				out = append(out, Violation{Location: location, Message: fmt.Sprintf("%s.%s is reserved and ignored", ExtensionKey, key)})
			}
		}
	}
	return out
}
