package parser

// AmbassadorExtension is the vendor extension key carrying gateway hints on
// the document root and on individual operations.
const AmbassadorExtension = "x-ambassador"

// extractExtensions keeps only the gateway extension block. Values are cloned
// so later stages never alias kin-openapi state.
func extractExtensions(raw map[string]any) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	value, ok := raw[AmbassadorExtension]
	if !ok {
		return nil
	}
	return map[string]any{AmbassadorExtension: cloneValue(value)}
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		cloned := make(map[string]any, len(v))
		for key, item := range v {
			cloned[key] = cloneValue(item)
		}
		return cloned
	case []any:
		cloned := make([]any, len(v))
		for i, item := range v {
			cloned[i] = cloneValue(item)
		}
		return cloned
	default:
		return v
	}
}
