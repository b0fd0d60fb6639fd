package mapping

import "strings"

const (
	// DefaultNamespace is used when neither the caller nor the document names
	// a namespace.
	DefaultNamespace = "ambassador"

	// WildcardToken replaces every `{param}` placeholder in operation paths.
	// Mappings are rendered with prefix_regex enabled so the token matches any
	// segment value.
	WildcardToken = ".*"
)

// GatewayConfig is the caller-supplied configuration for one generation run.
// Empty strings mean "not set"; document defaults and DefaultNamespace fill
// the gaps.
type GatewayConfig struct {
	TargetService      string
	TargetNamespace    string
	ServicePrefix      string
	OverrideExtensions bool
	IgnoreOperationIDs map[string]struct{}
}

// Ignores reports whether the caller asked to skip the operation. Matching is
// on the identifier exactly as declared in the document.
func (c GatewayConfig) Ignores(operationID string) bool {
	if len(c.IgnoreOperationIDs) == 0 {
		return false
	}
	_, ok := c.IgnoreOperationIDs[operationID]
	return ok
}

// NewIgnoreSet builds the set used by GatewayConfig.IgnoreOperationIDs,
// trimming whitespace and dropping empty identifiers.
func NewIgnoreSet(ids ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		set[id] = struct{}{}
	}
	return set
}

// DocumentDefaults holds the document-wide hints, derived once per run.
type DocumentDefaults struct {
	BasePath string
	VendorOverrides
}

// RouteEntry is the normalized routing record handed to renderers. When
// Resolved is false no service could be determined and only OperationID,
// Method, Path and Tags are populated.
type RouteEntry struct {
	OperationID string         `json:"operationId" yaml:"operationId"`
	Method      string         `json:"method" yaml:"method"`
	Path        string         `json:"path" yaml:"path"`
	Tags        []string       `json:"tags,omitempty" yaml:"tags,omitempty"`
	Summary     string         `json:"summary,omitempty" yaml:"summary,omitempty"`
	Service     string         `json:"service,omitempty" yaml:"service,omitempty"`
	ServiceName string         `json:"serviceName,omitempty" yaml:"serviceName,omitempty"`
	Namespace   string         `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Prefix      string         `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Extra       map[string]any `json:"extra,omitempty" yaml:"extra,omitempty"`
	Resolved    bool           `json:"resolved" yaml:"resolved"`
}

// FullPath joins the service prefix and the rewritten path.
func (e RouteEntry) FullPath() string {
	return e.Prefix + e.Path
}
